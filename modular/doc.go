// Package modular orchestrates several single-module schedule.Solve runs
// into one production line, porting the fixed-point iteration shape of
// broadcast_line_solver.cpp at interface level: each module solves
// independently, a Link's transfer time carries its upstream job's
// completion into the downstream module's Instance.ReleaseTimes, and the
// loop repeats until every module's boundary stops changing.
//
// This is a deliberately thin port. The original propagates full
// min/max timing intervals per job pair (fms/problem/boundary.hpp) and
// distinguishes input- and output-side bounds; this package only carries
// a single lower-bound release time per link, enough to make the
// fixed-point loop converge on a feasible cross-module schedule without
// reproducing the original's interval arithmetic.
package modular
