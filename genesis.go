package genesis

import (
	"iter"

	"github.com/kkpan11/genesis/variant"
	"github.com/kkpan11/genesis/window"
)

// ChromosomeWindows streams sorted records one chromosome at a time,
// yielding a lazy view per chromosome in input order. It is the one-call
// form of window.NewRecordStream; use that directly for custom record
// types or to drive the iterator by hand.
func ChromosomeWindows(records iter.Seq[variant.Record], opts ...window.Option) iter.Seq2[*window.View[variant.Record], error] {
	return window.NewRecordStream(records, opts...).Views()
}
