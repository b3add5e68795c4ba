package dd

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/partial"
)

// Policy selects which Queue implementation Solve explores with.
type Policy string

const (
	DepthPolicy          Policy = "depth"
	BreadthPolicy        Policy = "breadth"
	BestPolicy           Policy = "best"
	StaticPolicy         Policy = "static"
	AdaptiveStaticPolicy Policy = "adaptive-static"
)

func newQueue(policy Policy, dg *delaygraph.DelayGraph) Queue {
	switch policy {
	case BreadthPolicy:
		return NewBreadthQueue()
	case BestPolicy:
		return NewBestQueue(dg)
	case StaticPolicy:
		return NewStaticQueue(dg)
	case AdaptiveStaticPolicy:
		return NewAdaptiveStaticQueue(dg)
	default:
		return NewDepthQueue()
	}
}

// TerminationReason is a closed enum describing why Solve stopped. No
// other value is ever produced.
type TerminationReason string

const (
	Optimal    TerminationReason = "optimal"
	NoSolution TerminationReason = "no-solution"
	TimeOut    TerminationReason = "time-out"
)

// TimedPoint records an anytime improvement to the best-known bound,
// stamped with how long the search had been running when it was found.
type TimedPoint struct {
	At    time.Duration
	Bound model.Delay
}

// Solution is Solve's result: the best upper bound found (a complete
// schedule's makespan), whether it was proven optimal (the search
// exhausted the queue rather than timing out), and the anytime trace of
// improving bounds.
type Solution struct {
	Best             *Vertex
	BestUpperBound   model.Delay
	Optimal          bool
	AnytimeSolutions []TimedPoint
}

// SearchBudget bounds how long Solve may run before returning a
// TimeOut. A zero Deadline means unbounded. A nil Logger is treated as
// zerolog.Nop(), so callers that don't care about search telemetry
// never need to construct one.
type SearchBudget struct {
	Deadline time.Time
	Logger   *zerolog.Logger
}

// Solve explores instance's schedule-abstraction graph starting from a
// fresh root vertex, using policy's exploration order, returning the best
// complete schedule found, why the search stopped, and an error only for
// structural failures. When seed is non-nil (typically the forward
// heuristic's result) its makespan primes the initial upper bound, so
// Expand's pruning has something to cut against from its very first call
// instead of discovering a bound from scratch.
func Solve(dg *delaygraph.DelayGraph, in *model.Instance, policy Policy, seed *partial.Solution, budget SearchBudget) (Solution, TerminationReason, error) {
	queue := newQueue(policy, dg)
	index := NewActiveIndex()

	root := NewRootVertexForInstance(dg, in)
	index.Offer(dg, in, root)
	queue.Push(root)

	var nextID uint64 = 1
	started := time.Now()
	log := zerolog.Nop()
	if budget.Logger != nil {
		log = *budget.Logger
	}

	var best *Vertex
	upperBound := model.ALAPPosInf
	var trace []TimedPoint

	if seed != nil {
		if seedVertex := SeedFromSolution(dg, in, *seed); seedVertex.IsTerminal(in) {
			best = seedVertex
			upperBound = terminalMakespan(seedVertex, in)
			trace = append(trace, TimedPoint{At: 0, Bound: upperBound})
			log.Debug().Int64("makespan", int64(upperBound)).Msg("dd: primed upper bound from seed")
			if ba, ok := queue.(BoundAware); ok {
				ba.UpdateBestUpperBound(upperBound)
			}
		}
	}

	for queue.Len() > 0 {
		if !budget.Deadline.IsZero() && time.Now().After(budget.Deadline) {
			log.Info().Int("queueLen", queue.Len()).Msg("dd: search timed out")
			return finalize(best, upperBound, trace, false), TimeOut, nil
		}

		v, ok := queue.Pop()
		if !ok {
			break
		}
		if !index.IsLive(v) {
			continue
		}
		index.Remove(v)

		if v.IsTerminal(in) {
			makespan := terminalMakespan(v, in)
			if best == nil || makespan < upperBound {
				best = v
				upperBound = makespan
				trace = append(trace, TimedPoint{At: time.Since(started), Bound: makespan})
				log.Debug().Int64("makespan", int64(makespan)).Msg("dd: improved upper bound")
				if ba, ok := queue.(BoundAware); ok {
					ba.UpdateBestUpperBound(upperBound)
				}
			}
			continue
		}

		children := Expand(dg, in, v, upperBound, nextID)
		nextID += uint64(len(children))
		log.Debug().Int("parent", int(v.ID)).Int("children", len(children)).Msg("dd: expanded vertex")
		for _, child := range children {
			if !index.Offer(dg, in, child) {
				continue
			}
			queue.Push(child)
		}
	}

	if best == nil {
		log.Info().Msg("dd: queue exhausted without a terminal state")
		return finalize(nil, upperBound, trace, false), NoSolution, nil
	}
	return finalize(best, upperBound, trace, true), Optimal, nil
}

func finalize(best *Vertex, upperBound model.Delay, trace []TimedPoint, optimal bool) Solution {
	return Solution{
		Best:             best,
		BestUpperBound:   upperBound,
		Optimal:          optimal,
		AnytimeSolutions: trace,
	}
}

func terminalMakespan(v *Vertex, in *model.Instance) model.Delay {
	var max model.Delay = model.ASAPNegInf
	for _, job := range in.JobOrder {
		if finish, ok := v.JobCompletion[job]; ok && finish > max {
			max = finish
		}
	}
	return max
}
