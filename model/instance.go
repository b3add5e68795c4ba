package model

import "fmt"

// TwoKeyTable is a sparse (Operation, Operation) -> Delay table with a
// fallback default, used for sequence-dependent setup times and due
// dates. It mirrors the "default plus sparse override" shape the teacher
// repo uses for edge weights applied across a whole graph rather than
// storing a dense matrix for what is usually a sparse relation.
type TwoKeyTable struct {
	Default Delay
	entries map[[2]Operation]Delay
}

// NewTwoKeyTable returns a table that yields def for any pair without an
// explicit override.
func NewTwoKeyTable(def Delay) *TwoKeyTable {
	return &TwoKeyTable{Default: def, entries: make(map[[2]Operation]Delay)}
}

// Set records an explicit value for the ordered pair (from, to).
func (t *TwoKeyTable) Set(from, to Operation, value Delay) {
	if t.entries == nil {
		t.entries = make(map[[2]Operation]Delay)
	}
	t.entries[[2]Operation{from, to}] = value
}

// Get returns the explicit override for (from, to), falling back to
// Default when none was recorded.
func (t *TwoKeyTable) Get(from, to Operation) Delay {
	if t == nil {
		return 0
	}
	if v, ok := t.entries[[2]Operation{from, to}]; ok {
		return v
	}
	return t.Default
}

// Lookup is like Get but also reports whether an explicit override was
// present, so callers can distinguish "no constraint" from "constrained
// to Default".
func (t *TwoKeyTable) Lookup(from, to Operation) (Delay, bool) {
	if t == nil {
		return 0, false
	}
	v, ok := t.entries[[2]Operation{from, to}]
	return v, ok
}

// OneKeyTable is the single-key analogue of TwoKeyTable, used for
// per-operation processing times and independent due dates.
type OneKeyTable struct {
	Default Delay
	entries map[Operation]Delay
}

// NewOneKeyTable returns a table that yields def for any operation without
// an explicit override.
func NewOneKeyTable(def Delay) *OneKeyTable {
	return &OneKeyTable{Default: def, entries: make(map[Operation]Delay)}
}

// Set records an explicit value for op.
func (t *OneKeyTable) Set(op Operation, value Delay) {
	if t.entries == nil {
		t.entries = make(map[Operation]Delay)
	}
	t.entries[op] = value
}

// Get returns the explicit override for op, falling back to Default.
func (t *OneKeyTable) Get(op Operation) Delay {
	if t == nil {
		return 0
	}
	if v, ok := t.entries[op]; ok {
		return v
	}
	return t.Default
}

// Lookup is like Get but also reports whether an explicit override was
// present.
func (t *OneKeyTable) Lookup(op Operation) (Delay, bool) {
	if t == nil {
		return 0, false
	}
	v, ok := t.entries[op]
	return v, ok
}

// Entries returns a defensive copy of every explicit override.
func (t *OneKeyTable) Entries() map[Operation]Delay {
	out := make(map[Operation]Delay, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}

// Instance describes one re-entrant flow-shop/job-shop scheduling problem:
// the jobs and their operations, machine assignments, processing/setup/due
// tables, shop discipline, and re-entrancy metadata.
//
// JobOrder captures insertion order of Jobs' keys explicitly, the same way
// the teacher's core.Graph.VerticesMap returns a defensive, deterministically
// ordered copy rather than leaning on Go's randomized map iteration.
type Instance struct {
	Name string

	Jobs     map[JobID][]Operation
	JobOrder []JobID

	MachineOf map[Operation]MachineID

	ProcessingTimes       *OneKeyTable
	SetupTimes            *TwoKeyTable
	SetupTimesIndependent *OneKeyTable

	DueDates            *TwoKeyTable
	DueDatesIndependent *OneKeyTable
	AbsoluteDueDates    map[JobID]Delay

	ShopType        ShopType
	JobsOutputOrder []JobID

	ReEntrantMachines map[MachineID]bool
	MachineFlow       map[MachineID][]OperationID
	PlexityOf         map[JobID]map[MachineID]Plexity

	// ReleaseTimes floors a job's entry into the shop: if set, the
	// constraint graph's source edge feeding that job's first scheduled
	// operation carries this weight instead of 0. Populated by the
	// modular package when propagating a boundary completion time from
	// an upstream module into a downstream one; zero-valued (absent) for
	// an ordinary single-module instance.
	ReleaseTimes map[JobID]Delay
}

// NewInstance returns an Instance with every table initialised to an empty,
// zero-default table, ready for population by a loader such as xmlinstance.
func NewInstance(name string, shop ShopType) *Instance {
	return &Instance{
		Name:                  name,
		Jobs:                  make(map[JobID][]Operation),
		MachineOf:             make(map[Operation]MachineID),
		ProcessingTimes:       NewOneKeyTable(0),
		SetupTimes:            NewTwoKeyTable(0),
		SetupTimesIndependent: NewOneKeyTable(0),
		DueDates:              NewTwoKeyTable(ALAPPosInf),
		DueDatesIndependent:   NewOneKeyTable(ALAPPosInf),
		AbsoluteDueDates:      make(map[JobID]Delay),
		ShopType:              shop,
		ReEntrantMachines:     make(map[MachineID]bool),
		MachineFlow:           make(map[MachineID][]OperationID),
		PlexityOf:             make(map[JobID]map[MachineID]Plexity),
		ReleaseTimes:          make(map[JobID]Delay),
	}
}

// AddJob appends a job with its operations in flow order, recording the
// insertion position in JobOrder.
func (in *Instance) AddJob(job JobID, ops []Operation) {
	if _, exists := in.Jobs[job]; !exists {
		in.JobOrder = append(in.JobOrder, job)
	}
	in.Jobs[job] = ops
}

// PlexityAt returns the plexity of job on machine, defaulting to Simplex
// when unspecified.
func (in *Instance) PlexityAt(job JobID, machine MachineID) Plexity {
	if m, ok := in.PlexityOf[job]; ok {
		if p, ok := m[machine]; ok {
			return p
		}
	}
	return Simplex
}

// ProcessingTime returns the processing time of op, applying the table
// default when op has no explicit override.
func (in *Instance) ProcessingTime(op Operation) Delay {
	return in.ProcessingTimes.Get(op)
}

// Validate checks the structural invariants every other package relies
// on: every job operation has a MachineOf entry, every DueDates pair
// names two distinct operations present in Jobs, and a FixedOrder shop's
// JobsOutputOrder is a permutation of Jobs' keys. Entries of the
// processing-time, setup-time and independent due-date tables are not
// checked.
func (in *Instance) Validate() error {
	for _, job := range in.JobOrder {
		for _, op := range in.Jobs[job] {
			if _, ok := in.MachineOf[op]; !ok {
				return fmt.Errorf("%w: job=%d op=%d", ErrMissingMachine, op.Job, op.Op)
			}
		}
	}
	for pair := range in.DueDates.entries {
		if pair[0].Equal(pair[1]) {
			return fmt.Errorf("%w: job=%d op=%d", ErrSelfDueDate, pair[0].Job, pair[0].Op)
		}
		if err := in.checkKnown(pair[0]); err != nil {
			return err
		}
		if err := in.checkKnown(pair[1]); err != nil {
			return err
		}
	}
	if in.ShopType == FixedOrder {
		if err := in.checkPermutation(); err != nil {
			return err
		}
	}
	return nil
}

func (in *Instance) checkKnown(op Operation) error {
	ops, ok := in.Jobs[op.Job]
	if !ok {
		return fmt.Errorf("%w: job=%d", ErrUnknownJob, op.Job)
	}
	for _, candidate := range ops {
		if candidate.Op == op.Op {
			return nil
		}
	}
	return fmt.Errorf("%w: job=%d op=%d", ErrUnknownOperation, op.Job, op.Op)
}

func (in *Instance) checkPermutation() error {
	if len(in.JobsOutputOrder) != len(in.JobOrder) {
		return fmt.Errorf("%w: have %d jobs, order lists %d", ErrBadFixedOrder, len(in.JobOrder), len(in.JobsOutputOrder))
	}
	seen := make(map[JobID]bool, len(in.JobsOutputOrder))
	for _, job := range in.JobsOutputOrder {
		if _, ok := in.Jobs[job]; !ok {
			return fmt.Errorf("%w: job %d absent from Jobs", ErrBadFixedOrder, job)
		}
		if seen[job] {
			return fmt.Errorf("%w: job %d listed twice", ErrBadFixedOrder, job)
		}
		seen[job] = true
	}
	return nil
}
