// Package partial implements PartialSolution, the accumulating
// per-machine sequencing decision both search strategies (forward and
// dd) build up one Option at a time. A PartialSolution is an immutable
// value: Add and Remove return a new PartialSolution rather than
// mutating the receiver, the same copy-on-write discipline the teacher's
// delaygraph.Graph.Clone/CloneEmpty pair uses for graph snapshots.
//
// # Position markers
//
// Each machine's chosen sequencing edges are kept in a single ordered
// slice with three marker indices into it:
//
//	firstFeasible - earliest index a new option may be inserted at.
//	lastInserted  - index just past the most recently committed option.
//	firstMaint    - earliest index a maintenance option may occupy.
//
// Add advances lastInserted unconditionally but only advances
// firstFeasible when the inserted option is not maintenance: a
// maintenance insertion does not consume a "slot" the ranking needs to
// skip past later.
//
// # Dominance
//
// Dominates implements a three-criterion Pareto relation (minimize
// makespan of the last scheduled job, minimize earliest start of the
// next operation, maximize the number of operations in the re-entrant
// loop) used by ParetoFront; forward and dd do not call it (dd has its
// own IsDominated test).
package partial
