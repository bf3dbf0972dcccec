package window

import (
	"iter"

	"github.com/kkpan11/genesis/seqdict"
)

// Window is the declared [FirstPosition, LastPosition] interval of one
// chromosome. FirstPosition is always 1. With a sequence dictionary,
// LastPosition is the declared chromosome length; without one, it is the
// last position observed in the input, known only once the chromosome has
// been pulled to its end.
type Window struct {
	chromosome string
	first      uint64
	last       uint64
}

func (w Window) Chromosome() string {
	return w.chromosome
}

func (w Window) FirstPosition() uint64 {
	return w.first
}

func (w Window) LastPosition() uint64 {
	return w.last
}

// puller is the inner pull contract a View consumes: the next entry, or
// ok == false at the end of the chromosome's run, or a fatal error.
type puller[D any] interface {
	next() (D, bool, error)
	detach()
}

// View streams the entries of a single chromosome on demand, without
// materializing them. It is single-consumer and not restartable: entries
// are valid only until the next pull or the next advance of the outer
// iterator.
type View[D any] struct {
	win Window
	src puller[D]
	err error
}

// Chromosome returns the chromosome this view covers.
func (v *View[D]) Chromosome() string {
	return v.win.chromosome
}

// FirstPosition returns the first position of the window, which is 1.
func (v *View[D]) FirstPosition() uint64 {
	return v.win.first
}

// LastPosition returns the last position of the window. Without a
// sequence dictionary it is only final once the view is exhausted.
func (v *View[D]) LastPosition() uint64 {
	return v.win.last
}

// Window returns a copy of the view's current window bounds.
func (v *View[D]) Window() Window {
	return v.win
}

// Next pulls the next entry of the chromosome. It returns false at the
// end of the chromosome's run, or on an invariant violation, which Err
// then reports.
func (v *View[D]) Next() (D, bool) {
	d, ok, err := v.src.next()
	if err != nil {
		v.err = err
	}
	return d, ok
}

// All iterates the remaining entries of the chromosome. Check Err after
// the loop: an input that violates the position ordering terminates the
// sequence early with the error recorded.
func (v *View[D]) All() iter.Seq[D] {
	return func(yield func(D) bool) {
		for {
			d, ok := v.Next()
			if !ok || !yield(d) {
				return
			}
		}
	}
}

// Err returns the invariant violation that terminated the view, if any.
func (v *View[D]) Err() error {
	return v.err
}

// detach is called by the outer iterator when it abandons the view.
func (v *View[D]) detach() {
	v.src.detach()
}

// pullState is the inner iteration state bound to one View. It aliases
// the outer iterator's cursor: pulls move the one shared read position.
// The Window is owned by the View and mutably borrowed here so that the
// no-dictionary case can refine the last position in place.
type pullState[T, D any] struct {
	cur   *cursor[T]
	acc   Accessors[T, D]
	chr   string
	dict  *seqdict.Dict
	win   *Window
	first bool
	done  bool
}

func (p *pullState[T, D]) next() (D, bool, error) {
	var zero D
	if p.done {
		return zero, false, nil
	}

	// The first pull returns the record that triggered the chromosome
	// transition, without advancing.
	if p.first {
		p.first = false
		return p.acc.Entry(p.cur.cur), true, nil
	}

	oldPos := p.acc.Position(p.cur.cur)
	p.cur.advance()

	// End of the chromosome's run.
	if !p.cur.ok || p.acc.Chromosome(p.cur.cur) != p.chr {
		p.done = true
		if p.dict != nil {
			// Positions strictly increase, so checking the final one
			// covers the whole run.
			if entry, _ := p.dict.Get(p.chr); oldPos > entry.Length {
				return zero, false, &ChromosomeLengthExceededError{
					Chromosome: p.chr,
					Length:     entry.Length,
					Position:   oldPos,
				}
			}
		} else {
			p.win.last = oldPos
		}
		return zero, false, nil
	}

	newPos := p.acc.Position(p.cur.cur)
	if newPos <= oldPos {
		p.done = true
		return zero, false, &UnorderedPositionError{
			Chromosome: p.chr,
			Previous:   oldPos,
			Position:   newPos,
		}
	}
	return p.acc.Entry(p.cur.cur), true, nil
}

// detach cuts the pull state off from the shared cursor once the outer
// iterator has moved on, so a held View cannot read into the next
// chromosome's run.
func (p *pullState[T, D]) detach() {
	p.done = true
}
