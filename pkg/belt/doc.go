// Package belt answers questions about in-memory values of unknown shape and
// duplicates them.
//
// Every value maps to exactly one Kind:
//
//	belt.Classify([]any{1, 2, 3})   // KindArray
//	belt.Classify(time.Now())       // KindDate
//	belt.Classify(map[string]any{}) // KindPlainRecord
//	belt.Classify(nil)              // KindNull
//	belt.Classify(belt.Undefined)   // KindUndefined
//
// The predicates (IsEmpty, IsNumber, IsSimpleObject, ...) and the structural
// Cloner are built on that classification. Clone duplicates slices, arrays,
// unnamed string-keyed maps and dates recursively and returns everything else
// by reference.
//
// Nothing in this package panics or returns an error on odd input. Values it
// cannot place are logged through the classify/clone logging categories and
// degrade to a sentinel (KindUndefined, the input itself, nil, -1 or false).
// ClassifyStrict and LookupPattern are the error-returning counterparts.
//
// All functions are safe for concurrent use. The only process-wide setting is
// the by-reference key list of the default Cloner, swapped atomically by
// SetByReferenceKeys.
package belt
