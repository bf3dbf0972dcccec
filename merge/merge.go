// Package merge combines multiple chromosome-and-position-sorted record
// sources into one sorted sequence, so that per-sample inputs can be
// window-streamed together. Sources are merged lazily through a
// tournament tree, which needs O(log n) comparisons per record.
//
// All sources must already be sorted under the order the merge is given.
// The merged sequence then satisfies the window streaming input contract,
// except that records at the same chromosome and position in different
// sources are emitted back to back and will be rejected there; inputs are
// expected to cover disjoint positions or be deduplicated upstream.
package merge

import (
	"cmp"
	"iter"

	"github.com/kkpan11/genesis/seqdict"
	"github.com/kkpan11/genesis/variant"
)

// Source is a replayable sorted sequence of records.
type Source interface {
	All() iter.Seq[variant.Record]
}

// Order reports whether a sorts before b.
type Order func(a, b variant.Record) bool

// Positional orders records by lexicographic chromosome name, then
// position. This matches the order of memsource and extsort buffers.
func Positional() Order {
	return func(a, b variant.Record) bool {
		return variant.Compare(a, b) < 0
	}
}

// DictOrder orders records by the chromosome's rank in a sequence
// dictionary, then position. Chromosomes absent from the dictionary sort
// after all known ones, lexicographically among themselves.
func DictOrder(d *seqdict.Dict) Order {
	return func(a, b variant.Record) bool {
		ra, aok := d.Rank(a.GetChromosome())
		rb, bok := d.Rank(b.GetChromosome())
		switch {
		case aok && bok:
			if ra != rb {
				return ra < rb
			}
		case aok:
			return true
		case bok:
			return false
		default:
			if c := cmp.Compare(a.GetChromosome(), b.GetChromosome()); c != 0 {
				return c < 0
			}
		}
		return a.GetPosition() < b.GetPosition()
	}
}

// SeqSource adapts a plain sequence into a Source.
type SeqSource iter.Seq[variant.Record]

func (s SeqSource) All() iter.Seq[variant.Record] {
	return iter.Seq[variant.Record](s)
}

// Records merges the sources under the given order into one lazy
// sequence.
func Records(order Order, sources ...Source) iter.Seq[variant.Record] {
	return func(yield func(variant.Record) bool) {
		t := newTree(order, sources)
		defer t.release()
		t.run(yield)
	}
}

// A tournament tree is a binary tree laid out such that nodes N and N+1
// have parent N/2. The M leaves live in positions M..2M-1 and hold one
// pull cursor each; each internal node holds the loser of the contest of
// its children, and node 0 the overall winner. Exhausted leaves are set
// to variant.Max so they lose every contest.
type tree struct {
	order Order
	nodes []node
	stops []func()
}

type node struct {
	index int            // Losing leaf for internal nodes; winner for node 0.
	value variant.Record // Value copied from that leaf.
	next  func() (variant.Record, bool)
}

func newTree(order Order, sources []Source) *tree {
	t := &tree{
		order: order,
		nodes: make([]node, len(sources)*2),
		stops: make([]func(), 0, len(sources)),
	}
	for i, s := range sources {
		next, stop := iter.Pull(s.All())
		t.stops = append(t.stops, stop)
		leaf := &t.nodes[i+len(sources)]
		leaf.index = i + len(sources)
		leaf.next = next
		t.moveNext(i + len(sources))
	}
	return t
}

func (t *tree) run(yield func(variant.Record) bool) {
	if len(t.nodes) == 0 {
		return
	}
	winner := t.playGame(1)
	t.nodes[0].index = winner
	t.nodes[0].value = t.nodes[winner].value

	for t.nodes[t.nodes[0].index].index != -1 && yield(t.nodes[0].value) {
		t.moveNext(t.nodes[0].index)
		t.replayGames(t.nodes[0].index)
	}
}

func (t *tree) release() {
	for _, stop := range t.stops {
		stop()
	}
}

func (t *tree) moveNext(index int) {
	n := &t.nodes[index]
	if v, ok := n.next(); ok {
		n.value = v
		return
	}
	n.value = variant.Max
	n.index = -1
}

// Find the winner under position pos; every internal node on the way
// stores the loser.
func (t *tree) playGame(pos int) int {
	nodes := t.nodes
	if pos >= len(nodes)/2 {
		return pos
	}
	left := t.playGame(pos * 2)
	right := t.playGame(pos*2 + 1)
	var loser, winner int
	if t.order(nodes[left].value, nodes[right].value) {
		loser, winner = right, left
	} else {
		loser, winner = left, right
	}
	nodes[pos].index = loser
	nodes[pos].value = nodes[loser].value
	return winner
}

// Starting at leaf pos, which just advanced, re-run the contests up to
// the root.
func (t *tree) replayGames(pos int) {
	nodes := t.nodes
	winningValue := nodes[pos].value
	for n := pos / 2; n != 0; n /= 2 {
		node := &nodes[n]
		if t.order(node.value, winningValue) {
			node.index, pos = pos, node.index
			node.value, winningValue = winningValue, node.value
		}
	}
	nodes[0].index = pos
	nodes[0].value = winningValue
}
