// Package memsource provides an in-memory sorted record buffer. Records
// may be added in any order; iteration replays them sorted by chromosome
// and position, which makes the buffer a valid input source for window
// streaming whenever the working set fits in memory. For larger inputs
// see package extsort.
package memsource

import (
	"iter"

	"github.com/google/btree"

	"github.com/kkpan11/genesis/variant"
)

// Buffer collects records and replays them in sorted order.
// It is not safe for concurrent use.
type Buffer struct {
	tree *btree.BTreeG[variant.Record]
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{
		tree: btree.NewG[variant.Record](2, func(a, b variant.Record) bool {
			return a.Less(b)
		}),
	}
}

// Add inserts a record. A record at an already buffered chromosome and
// position replaces the previous one.
func (b *Buffer) Add(rec variant.Record) {
	b.tree.ReplaceOrInsert(rec)
}

// Len returns the number of buffered records.
func (b *Buffer) Len() int {
	return b.tree.Len()
}

// All iterates the buffered records sorted by chromosome, then position.
func (b *Buffer) All() iter.Seq[variant.Record] {
	return func(yield func(variant.Record) bool) {
		b.tree.Ascend(func(rec variant.Record) bool {
			return yield(rec)
		})
	}
}
