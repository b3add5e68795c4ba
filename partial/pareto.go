package partial

// ParetoFront keeps a set of mutually non-dominated Solutions, pruning a
// newly offered Solution against the front and removing any front member
// the new one dominates. Grounded on the original implementation's
// paretocull pass, expressed here as a small reusable collection rather
// than a one-shot cull function, so a caller can keep a running front
// across many insertions.
type ParetoFront struct {
	members []Solution
}

// NewParetoFront returns an empty front.
func NewParetoFront() *ParetoFront { return &ParetoFront{} }

// Offer inserts candidate into the front if nothing currently in it
// dominates candidate, and removes every existing member candidate
// dominates. It returns true if candidate was kept.
func (f *ParetoFront) Offer(candidate Solution) bool {
	kept := make([]Solution, 0, len(f.members))
	for _, m := range f.members {
		if m.Dominates(candidate) {
			// candidate is dominated; front is unchanged.
			return false
		}
		if !candidate.Dominates(m) {
			kept = append(kept, m)
		}
	}
	kept = append(kept, candidate)
	f.members = kept
	return true
}

// Members returns the current front. Callers must not mutate the
// returned slice.
func (f *ParetoFront) Members() []Solution { return f.members }

// Len reports the number of solutions currently in the front.
func (f *ParetoFront) Len() int { return len(f.members) }
