package window

import (
	"iter"

	"github.com/kkpan11/genesis/seqdict"
)

// cursor is the single shared read position over the input source. It
// wraps iter.Pull with a one-element lookahead: cur is the element the
// stream is currently standing on, ok reports whether it is valid.
type cursor[T any] struct {
	next func() (T, bool)
	stop func()
	cur  T
	ok   bool
}

func newCursor[T any](seq iter.Seq[T]) *cursor[T] {
	c := &cursor[T]{}
	c.next, c.stop = iter.Pull(seq)
	c.advance()
	return c
}

func (c *cursor[T]) advance() {
	c.cur, c.ok = c.next()
}

// Iterator is the outer, per-chromosome iterator of a Stream. Each
// successful Next binds a fresh View over the records of the next
// chromosome in the input. Incrementing past a chromosome drains whatever
// the previous View's consumer left unpulled, so breaking out of a view
// early is safe.
//
// All errors are fatal: once Err returns non-nil, the iterator stays
// exhausted and the only recovery is re-iterating corrected input.
type Iterator[T, D any] struct {
	acc  Accessors[T, D]
	dict *seqdict.Dict

	cur  *cursor[T]
	seen map[string]struct{}
	view *View[D]
	err  error
	done bool
}

// Iter starts iteration, consuming the stream's source in one forward
// pass. Call Close when done with the iterator to release it early;
// exhausting it releases it as well.
func (s *Stream[T, D]) Iter() *Iterator[T, D] {
	return &Iterator[T, D]{
		acc:  s.acc,
		dict: s.dict,
		cur:  newCursor(s.src),
		seen: make(map[string]struct{}),
	}
}

// Next advances to the next chromosome of the input and binds a fresh
// View for it. It returns false when the input is exhausted or an
// invariant of the input is violated; Err distinguishes the two.
func (it *Iterator[T, D]) Next() bool {
	if it.done {
		return false
	}

	if it.view != nil {
		// A failed view poisons the whole iteration.
		if err := it.view.Err(); err != nil {
			it.fail(err)
			return false
		}
		// Drain whatever remains of the previous chromosome, then cut the
		// abandoned view off from the shared cursor.
		prev := it.view.Chromosome()
		for it.cur.ok && it.acc.Chromosome(it.cur.cur) == prev {
			it.cur.advance()
		}
		it.view.detach()
		it.view = nil
	}

	if !it.cur.ok {
		it.Close()
		return false
	}

	chr := it.acc.Chromosome(it.cur.cur)
	if _, dup := it.seen[chr]; dup {
		it.fail(&DuplicateChromosomeError{Chromosome: chr})
		return false
	}
	it.seen[chr] = struct{}{}

	win := Window{chromosome: chr, first: 1, last: 1}
	if it.dict != nil {
		entry, ok := it.dict.Get(chr)
		if !ok {
			it.fail(&UnknownChromosomeError{Chromosome: chr})
			return false
		}
		win.last = entry.Length
	}

	view := &View[D]{win: win}
	view.src = &pullState[T, D]{
		cur:   it.cur,
		acc:   it.acc,
		chr:   chr,
		dict:  it.dict,
		win:   &view.win,
		first: true,
	}
	it.view = view
	return true
}

// View returns the currently bound per-chromosome view. It is valid until
// the next call to Next or Close.
func (it *Iterator[T, D]) View() *View[D] {
	return it.view
}

// Err returns the first invariant violation encountered, if any.
func (it *Iterator[T, D]) Err() error {
	return it.err
}

// Close releases the iterator and the pull goroutine over the source.
// It is safe to call multiple times.
func (it *Iterator[T, D]) Close() {
	if it.view != nil {
		it.view.detach()
		it.view = nil
	}
	it.done = true
	it.cur.stop()
}

func (it *Iterator[T, D]) fail(err error) {
	it.err = err
	it.Close()
}
