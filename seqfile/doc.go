// Package seqfile reads and writes committed machine sequences as JSON,
// grounded on the loosely-typed, path-addressed document handling
// dshills-langgraph-go and steveyegge-beads both reach for
// (github.com/tidwall/gjson, github.com/tidwall/sjson) rather than a
// fixed struct tree. The wire format has two incompatible shapes at the
// same key path — a plain ordered list of (job, op) pairs, or an
// iteration-indexed history of such lists — which a struct-based decoder
// would have to special-case per field; gjson.Get/sjson.Set let Load
// branch on the shape it actually finds.
package seqfile
