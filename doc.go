// Package genesis is a toolkit for streaming very large, position-sorted
// genomic datasets one chromosome at a time, without materializing a
// chromosome's worth of records in memory.
//
// The core lives in package window: an outer iterator that detects
// chromosome boundaries in a single forward pass over the input, and a
// lazy per-chromosome view that pulls records on demand. Around it the
// toolkit provides the data model (variant), sequence dictionaries with
// .fai and SAM dict parsing (seqdict), a PoPoolation2 sync format reader
// (popsync), a binary spill format (recordio), in-memory and disk-backed
// sorting buffers (memsource, extsort), and a k-way merge of sorted
// sources (merge).
//
// This root package ties the common path together:
//
//	for view, err := range genesis.ChromosomeWindows(source) {
//	    if err != nil {
//	        return err
//	    }
//	    for rec := range view.All() {
//	        // one chromosome's records, lazily
//	    }
//	    if err := view.Err(); err != nil {
//	        return err
//	    }
//	}
package genesis
