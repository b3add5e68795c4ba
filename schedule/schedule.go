package schedule

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/dd"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/forward"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/graphbuild"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/longestpath"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/partial"
)

// Version is overridden at build time via -ldflags to the release tag;
// it is reported verbatim in every Result so a solve's output can be
// traced back to the binary that produced it.
var Version = "dev"

// Strategy selects which search package Solve delegates to. The caller
// always chooses: core itself never picks one strategy over the other.
type Strategy string

const (
	ForwardHeuristicStrategy Strategy = "forward"
	DecisionDiagramStrategy  Strategy = "dd"
)

// Options configures one Solve call. A nil Logger is treated as
// zerolog.Nop(): Solve emits structured Debug/Info events at
// positive-cycle detection and strategy termination whenever one is
// supplied, the way the original's scattered LOG(...) call sites did.
type Options struct {
	Strategy Strategy
	Weights  forward.Weights
	DDPolicy dd.Policy
	Budget   time.Duration
	Logger   *zerolog.Logger
}

// DefaultOptions returns the forward heuristic with its balanced default
// weights and no decision-diagram budget.
func DefaultOptions() Options {
	return Options{
		Strategy: ForwardHeuristicStrategy,
		Weights:  forward.DefaultWeights(),
		DDPolicy: dd.DepthPolicy,
	}
}

// Result is the standardized exit report of one Solve call.
type Result struct {
	Solved           bool
	Timeout          bool
	Productivity     float64
	Flexibility      float64
	TimeOutValue     time.Duration
	Version          string
	TerminationReason string
	Schedule         map[model.JobID]map[model.OperationID]model.Delay
	MachineSequences map[model.MachineID][]model.Operation
}

// Solve builds instance's constraint graph, runs the configured search
// strategy, and confirms the resulting sequencing edges still produce a
// feasible schedule before reporting it. Budget exhaustion during a
// DecisionDiagramStrategy search is not an error: it surfaces as
// Result.Timeout with the best partial schedule found so far.
func Solve(in *model.Instance, opts Options) (Result, error) {
	switch opts.Strategy {
	case ForwardHeuristicStrategy:
		dg, err := graphbuild.Build(in)
		if err != nil {
			return Result{}, &InputError{Err: err}
		}
		return solveForward(dg, in, opts)
	case DecisionDiagramStrategy:
		dg, err := graphbuild.BuildDD(in)
		if err != nil {
			return Result{}, &InputError{Err: err}
		}
		return solveDD(dg, in, opts)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, opts.Strategy)
	}
}

func logger(opts Options) zerolog.Logger {
	if opts.Logger != nil {
		return *opts.Logger
	}
	return zerolog.Nop()
}

func solveForward(dg *delaygraph.DelayGraph, in *model.Instance, opts Options) (Result, error) {
	log := logger(opts)
	weights := opts.Weights
	if weights == (forward.Weights{}) {
		weights = forward.DefaultWeights()
	}

	sol, err := forward.Solve(dg, in, weights)
	if err != nil {
		if cycle := longestpath.FindPositiveCycle(dg); len(cycle) > 0 {
			log.Info().Int("cycleEdges", len(cycle)).Msg("schedule: positive cycle detected")
			return Result{}, &InfeasibilityError{Cycle: cycle}
		}
		return Result{}, fmt.Errorf("schedule: forward heuristic failed: %w", err)
	}

	log.Debug().Str("strategy", string(ForwardHeuristicStrategy)).Msg("schedule: search finished")
	return confirmAndReport(dg, in, sol, false, "optimal")
}

func solveDD(dg *delaygraph.DelayGraph, in *model.Instance, opts Options) (Result, error) {
	log := logger(opts)
	policy := opts.DDPolicy
	if policy == "" {
		policy = dd.DepthPolicy
	}

	budget := dd.SearchBudget{Logger: opts.Logger}
	if opts.Budget > 0 {
		budget.Deadline = time.Now().Add(opts.Budget)
	}

	seed := seedFromForwardHeuristic(in, opts, log)

	solution, reason, err := dd.Solve(dg, in, policy, seed, budget)
	if err != nil {
		return Result{}, fmt.Errorf("schedule: decision-diagram search failed: %w", err)
	}
	if reason == dd.NoSolution {
		if cycle := longestpath.FindPositiveCycle(dg); len(cycle) > 0 {
			log.Info().Int("cycleEdges", len(cycle)).Msg("schedule: positive cycle detected")
			return Result{}, &InfeasibilityError{Cycle: cycle}
		}
		return Result{}, &InfeasibilityError{}
	}
	if solution.Best == nil {
		// Budget exhausted before any complete schedule was found; this is
		// not an error, it is an unsolved but otherwise valid result.
		return Result{
			Timeout:           true,
			Version:           Version,
			TerminationReason: string(reason),
		}, nil
	}

	sol := solutionFromVertex(dg, solution.Best)
	return confirmAndReport(dg, in, sol, reason == dd.TimeOut, string(reason))
}

// seedFromForwardHeuristic runs the forward heuristic on its own rich
// constraint graph (vertex IDs align with the bare DD graph built by
// BuildDD, since both builders add sources, terminus, and operation
// vertices in the same deterministic order) and returns its result as a
// seed for dd.Solve, so the decision-diagram search starts with a tight
// upper bound instead of discovering one from scratch. A forward-heuristic
// failure is not fatal here: the DD search simply proceeds unseeded.
func seedFromForwardHeuristic(in *model.Instance, opts Options, log zerolog.Logger) *partial.Solution {
	seedGraph, err := graphbuild.Build(in)
	if err != nil {
		return nil
	}

	weights := opts.Weights
	if weights == (forward.Weights{}) {
		weights = forward.DefaultWeights()
	}

	sol, err := forward.Solve(seedGraph, in, weights)
	if err != nil {
		log.Debug().Err(err).Msg("schedule: forward heuristic seed failed, searching dd unseeded")
		return nil
	}
	return &sol
}

// solutionFromVertex converts a dd.Vertex's accumulated per-machine
// edges into the partial.Solution shape confirmAndReport expects, so
// both strategies share one reporting path.
func solutionFromVertex(dg *delaygraph.DelayGraph, v *dd.Vertex) partial.Solution {
	gen := partial.NewIDGenerator()
	sol := partial.New(gen.Next())
	for machine, edges := range v.MachineEdges {
		sol.ChosenEdgesPerMachine()[machine] = edges
	}
	return sol.WithASAPST(v.ASAPST)
}

func confirmAndReport(dg *delaygraph.DelayGraph, in *model.Instance, sol partial.Solution, timeout bool, reason string) (Result, error) {
	times := longestpath.InitializeASAP(dg, nil, true)
	if cycle := longestpath.AddEdgesIncrementalConst(dg, sol.AllChosenEdges(), times); cycle {
		return Result{}, &InfeasibilityError{Cycle: longestpath.FindPositiveCycle(dg)}
	}

	scheduleOut := make(map[model.JobID]map[model.OperationID]model.Delay)
	for _, job := range in.JobOrder {
		for _, op := range in.Jobs[job] {
			v, ok := dg.GetVertexID(op)
			if !ok {
				continue
			}
			if scheduleOut[job] == nil {
				scheduleOut[job] = make(map[model.OperationID]model.Delay)
			}
			scheduleOut[job][op.Op] = times[v]
		}
	}

	sequences := make(map[model.MachineID][]model.Operation)
	for machine, edges := range sol.ChosenEdgesPerMachine() {
		seq := make([]model.Operation, 0, len(edges))
		for _, e := range edges {
			if !dg.IsVisible(e.Dst) {
				continue
			}
			v, err := dg.GetVertex(e.Dst)
			if err != nil {
				continue
			}
			seq = append(seq, v.Op)
		}
		sequences[machine] = seq
	}

	return Result{
		Solved:            !timeout,
		Timeout:           timeout,
		Productivity:      productivity(in, sol.RealMakespan(in, dg.Graph)),
		Flexibility:        flexibility(sol),
		Version:           Version,
		TerminationReason: reason,
		Schedule:          scheduleOut,
		MachineSequences:  sequences,
	}, nil
}

func productivity(in *model.Instance, makespan model.Delay) float64 {
	if makespan <= 0 {
		return 0
	}
	var totalProcessing model.Delay
	for _, job := range in.JobOrder {
		for _, op := range in.Jobs[job] {
			totalProcessing += in.ProcessingTime(op)
		}
	}
	return float64(totalProcessing) / float64(makespan)
}

func flexibility(sol partial.Solution) float64 {
	if sol.EarliestStartFutureOperation() <= 0 {
		return 0
	}
	return 1.0 / (1.0 + float64(sol.EarliestStartFutureOperation()))
}
