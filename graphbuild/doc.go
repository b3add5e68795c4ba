// Package graphbuild turns a model.Instance into the delaygraph.DelayGraph
// that longestpath, forward, and dd operate on: one vertex per operation
// plus synthetic source/terminus vertices, precedence edges within each
// job encoding processing and setup time, and due-date constraints
// encoded as negative back-edges to a pinned source vertex.
//
// For a FixedOrder shop, the job output order is already fully
// determined, so Build also commits the inter-job sequencing edges on
// every machine directly; for FlowShop and JobShop instances those
// sequencing choices are left to the search strategy (forward or dd),
// so Build only emits the edges a valid schedule must contain regardless
// of job order.
package graphbuild
