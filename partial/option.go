package partial

import "github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"

// Option describes one way to insert a single operation somewhere in a
// machine's sequence, or, with IsMaint set, one way to insert a
// maintenance action. It is produced by forward's buildCandidate and by
// maintenance.InsertFixedActions, and consumed by
// Solution.Add/Solution.Remove.
type Option struct {
	ID     uint64
	Weight float64

	// PrevE and NextE are the edges that replace the single edge
	// PrevV->NextV once CurV is spliced in between them.
	PrevE, NextE delaygraph.Edge

	PrevV, CurV, NextV delaygraph.VertexID

	// Position is the index into the machine's chosen-edges slice at
	// which PrevV->NextV currently sits.
	Position int

	IsMaint bool
}
