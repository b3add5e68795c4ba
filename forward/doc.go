// Package forward implements the forward scheduling heuristic: a greedy,
// ranked insertion search that schedules one operation at a time, always
// committing the best-ranked feasible insertion point rather than
// backtracking. It trades optimality for speed relative to package dd's
// exhaustive decision-diagram search, and is the strategy schedule.Solve
// selects when the caller asks for ForwardHeuristicStrategy.
//
// # Algorithm
//
// For each ready operation, ScheduleOneOperation:
//
//  1. Enumerates every position in the operation's machine sequence where
//     the operation could be spliced in, bounded by the smallest
//     outgoing due-date deadline already present in the graph.
//  2. Probes each candidate with longestpath.AddEdgesIncrementalConst
//     over the whole graph (every committed edge plus the candidate's
//     splice and projection edges) to discard infeasible insertions. No
//     windowed ASAP relaxation is run.
//  3. Ranks the surviving candidates on a weighted, min-max-normalized
//     combination of push (how far the operation's own ASAP label moved),
//     pushNext (the same delta for the vertex downstream of the
//     insertion), and the number of operations in flight inside the
//     re-entrant loop.
//  4. Commits the minimum-rank candidate via partial.Solution.Add.
//
// Solve drives ScheduleOneOperation job by job, operation by operation,
// in each job's flow order.
package forward
