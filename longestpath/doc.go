// Package longestpath computes longest paths through a delaygraph.Graph
// using a multi-source Bellman-Ford-Moore relaxation, the same algorithm
// the rest of this module's solvers rely on to turn a partial choice of
// sequencing edges into concrete operation start times.
//
// Because edge weights may be negative (a due date is a negative
// back-edge), a "negative cycle" in the classical shortest-path sense
// shows up here as a positive cycle on the longest-path relaxation: a
// cycle whose edges keep getting relaxed forever, meaning the
// corresponding schedule is infeasible.
//
// # API shape
//
//	Compute            - full-graph relaxation, Θ(V) rounds worst case.
//	ComputeWindowed    - relaxation restricted to a vertex window, with a
//	                     job-id-based fatality check for edges that would
//	                     retime an already-committed vertex.
//	AddEdgeIncremental - O(E log V) check of whether adding one edge would
//	                     create a positive cycle, without a full recompute.
//	FindPositiveCycle  - extracts one positive cycle from an infeasible
//	                     graph, for diagnostics and error reporting.
//
// # Complexity
//
//	Compute            O(V*E)
//	ComputeWindowed    O(W*E) where W is the window size
//	AddEdgeIncremental O(E log V) amortized
//	FindPositiveCycle  O(V*E)
package longestpath
