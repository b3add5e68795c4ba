// Package dd implements the decision-diagram search strategy: an
// exhaustive, dominance-pruned exploration of the space of partial
// schedules, as opposed to package forward's single-path greedy
// insertion. Each Vertex is one schedule-abstraction-graph state; Expand
// produces every feasible child by scheduling one more ready operation
// per machine-independent job branch, and IsDominated prunes a child
// that a live sibling already strictly improves on.
//
// Solve drives the search using one of four Queue disciplines
// (depth-first, breadth-first, best-bound, or static priority) until the
// queue empties (Optimal/NoSolution) or the configured budget is spent
// (TimeOut), tracking the best upper bound found so far as an anytime
// result.
package dd
