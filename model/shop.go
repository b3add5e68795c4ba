package model

// ShopType distinguishes the three job-routing disciplines graphbuild
// supports. All three may combine with re-entrancy and sequence-dependent
// setup times; the discipline only changes how inter-job sequencing edges
// are derived.
type ShopType uint8

const (
	// FixedOrder requires jobs to be produced in the exact order given by
	// Instance.JobsOutputOrder on every machine.
	FixedOrder ShopType = iota
	// FlowShop lets the solver choose job order freely but requires every
	// job to visit machines in the same relative sequence.
	FlowShop
	// JobShop allows each job its own machine routing.
	JobShop
)

func (s ShopType) String() string {
	switch s {
	case FixedOrder:
		return "fixed-order"
	case FlowShop:
		return "flow-shop"
	case JobShop:
		return "job-shop"
	default:
		return "unknown"
	}
}

// Plexity describes how many operations of the same job may be in
// progress on a re-entrant machine concurrently.
type Plexity uint8

const (
	// Simplex permits only one visit of a job to be active on the machine.
	Simplex Plexity = iota
	// Duplex permits two concurrent visits (e.g. front/back of a panel).
	Duplex
)

func (p Plexity) String() string {
	if p == Duplex {
		return "duplex"
	}
	return "simplex"
}
