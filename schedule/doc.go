// Package schedule orchestrates one solve of a model.Instance: building
// the constraint graph, running the caller's chosen search strategy
// (package forward or package dd), and confirming the resulting
// sequencing edges still produce a feasible schedule before reporting
// it. It is the single entry point cmd/scheduler and package modular
// call into; neither of those packages reaches into forward or dd
// directly.
package schedule
