package window

import (
	"errors"
	"iter"

	"github.com/kkpan11/genesis/seqdict"
	"github.com/kkpan11/genesis/variant"
)

// Accessors extract the chromosome, the position, and the exposed entry
// value from a raw input element. All three must be set.
type Accessors[T, D any] struct {
	// Chromosome returns the chromosome name of an element.
	Chromosome func(T) string
	// Position returns the 1-based position of an element.
	Position func(T) uint64
	// Entry adapts an element to the value exposed by the window views.
	Entry func(T) D
}

// options defines all configuration options for a chromosome stream.
type options struct {
	dict *seqdict.Dict
}

// Option is a function that configures the stream options.
type Option func(*options)

// WithSequenceDict sets a sequence dictionary to be used for the
// chromosome lengths.
//
// By default, window bounds are derived from the positions observed in
// the data. With a dictionary set, the declared lengths are used instead,
// and iteration fails on chromosomes the dictionary does not contain or
// whose declared length the data exceeds. Passing nil reverts to the
// default. The dictionary is never mutated and may be shared between
// streams.
func WithSequenceDict(d *seqdict.Dict) Option {
	return func(o *options) {
		o.dict = d
	}
}

// Stream traverses a chromosome-and-position-sorted input source one
// chromosome at a time, yielding a lazy View per chromosome. It holds no
// record data itself; entries are pulled from the source on demand.
//
// T is the element type of the source, D the entry type the views expose.
type Stream[T, D any] struct {
	src  iter.Seq[T]
	acc  Accessors[T, D]
	dict *seqdict.Dict
}

// New creates a stream over src using the given accessors.
// All three accessors are required.
func New[T, D any](src iter.Seq[T], acc Accessors[T, D], opts ...Option) (*Stream[T, D], error) {
	if src == nil {
		return nil, errors.New("window: source is required")
	}
	if acc.Chromosome == nil {
		return nil, errors.New("window: chromosome accessor is required")
	}
	if acc.Position == nil {
		return nil, errors.New("window: position accessor is required")
	}
	if acc.Entry == nil {
		return nil, errors.New("window: entry accessor is required")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Stream[T, D]{src: src, acc: acc, dict: o.dict}, nil
}

// NewRecordStream creates a stream over variant records, wiring the
// accessors from the Record interface.
func NewRecordStream(src iter.Seq[variant.Record], opts ...Option) *Stream[variant.Record, variant.Record] {
	s, err := New(src, Accessors[variant.Record, variant.Record]{
		Chromosome: variant.Record.GetChromosome,
		Position:   variant.Record.GetPosition,
		Entry:      func(r variant.Record) variant.Record { return r },
	}, opts...)
	if err != nil {
		// Accessors are wired above; New cannot fail on them.
		panic(err)
	}
	return s
}

// SequenceDict returns the dictionary the stream was configured with,
// or nil.
func (s *Stream[T, D]) SequenceDict() *seqdict.Dict {
	return s.dict
}

// Views iterates the per-chromosome views in input order. On an invariant
// violation it yields a nil view with the error and stops. The source is
// consumed in a single forward pass; at most one ranging of Views (or one
// Iter) may be live per stream.
func (s *Stream[T, D]) Views() iter.Seq2[*View[D], error] {
	return func(yield func(*View[D], error) bool) {
		it := s.Iter()
		defer it.Close()
		for it.Next() {
			if !yield(it.View(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield(nil, err)
		}
	}
}
