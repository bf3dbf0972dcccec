// Package window streams very large, position-sorted genomic inputs one
// chromosome at a time, without ever materializing a chromosome's worth
// of records in memory.
//
// The abstraction has two cooperating layers of lazy iteration. The outer
// Iterator walks the input in a single forward pass and detects chromosome
// boundaries; each step binds a View over the records of one chromosome.
// The inner View pulls those records on demand. Breaking out of a View
// early is safe: advancing the outer iterator drains whatever remains of
// the chromosome before moving on.
//
//	stream := window.NewRecordStream(source)
//	for view, err := range stream.Views() {
//	    if err != nil {
//	        return err
//	    }
//	    for rec := range view.All() {
//	        // one chromosome's records, lazily
//	    }
//	    if err := view.Err(); err != nil {
//	        return err
//	    }
//	    fmt.Println(view.Chromosome(), view.FirstPosition(), view.LastPosition())
//	}
//
// Window bounds are [1, L] where L is the chromosome length declared by a
// sequence dictionary (see WithSequenceDict), or the last position
// observed in the input when no dictionary is set.
//
// The input must be chromosome-contiguous with strictly increasing
// positions per chromosome. Violations are fatal and detected eagerly:
// see DuplicateChromosomeError, UnorderedPositionError,
// UnknownChromosomeError and ChromosomeLengthExceededError. There is no
// partial-success mode; the only recovery is re-iterating corrected input.
//
// A Stream is not a concurrent data structure: at most one live Iterator
// and one live View per stream. Independent streams over independent
// sources may run in separate goroutines, and may share one sequence
// dictionary, which is never mutated after construction.
package window
