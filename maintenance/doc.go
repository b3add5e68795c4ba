// Package maintenance splices externally-determined maintenance actions
// into an already-computed partial.Solution, as a post-processing pass
// over forward or dd's output.
//
// It ports the graph/sequence mechanics of the original's
// maintenanceheuristic.h insertMaintenance: a maintenance vertex is
// created in front of the operation it precedes, the edge it interrupts
// is split into prev->maint and maint->next, and the result is spliced
// into the machine's chosen-edges sequence the same way an ordinary
// operation insertion is. The original's threshold-triggering policy
// (sheet-size accumulation, idle-time windows, automatic re-evaluation
// until no more maintenance is needed) is deliberately not ported: this
// package only accepts a caller-supplied action list and inserts the
// actions in order, returning an error at the first one that does not
// fit, leaving the decision of when maintenance is due to the caller.
package maintenance
