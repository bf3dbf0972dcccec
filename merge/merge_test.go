package merge_test

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkpan11/genesis/memsource"
	"github.com/kkpan11/genesis/merge"
	"github.com/kkpan11/genesis/seqdict"
	"github.com/kkpan11/genesis/variant"
	"github.com/kkpan11/genesis/window"
)

func sorted(recs ...variant.RecordImpl) merge.Source {
	buf := memsource.New()
	for _, rec := range recs {
		buf.Add(rec)
	}
	return buf
}

func positions(t *testing.T, seq iter.Seq[variant.Record]) []variant.RecordImpl {
	t.Helper()
	var got []variant.RecordImpl
	for rec := range seq {
		got = append(got, rec.(variant.RecordImpl))
	}
	return got
}

func TestRecords_Positional(t *testing.T) {
	a := sorted(
		variant.RecordImpl{Chromosome: "chr1", Position: 1},
		variant.RecordImpl{Chromosome: "chr1", Position: 7},
		variant.RecordImpl{Chromosome: "chr2", Position: 3},
	)
	b := sorted(
		variant.RecordImpl{Chromosome: "chr1", Position: 4},
		variant.RecordImpl{Chromosome: "chr2", Position: 8},
	)
	c := sorted(
		variant.RecordImpl{Chromosome: "chr2", Position: 5},
	)

	got := positions(t, merge.Records(merge.Positional(), a, b, c))

	want := []variant.RecordImpl{
		{Chromosome: "chr1", Position: 1},
		{Chromosome: "chr1", Position: 4},
		{Chromosome: "chr1", Position: 7},
		{Chromosome: "chr2", Position: 3},
		{Chromosome: "chr2", Position: 5},
		{Chromosome: "chr2", Position: 8},
	}
	assert.Equal(t, want, got)
}

func TestRecords_EmptySources(t *testing.T) {
	a := sorted(variant.RecordImpl{Chromosome: "chr1", Position: 1})
	b := sorted()

	got := positions(t, merge.Records(merge.Positional(), a, b))
	assert.Len(t, got, 1)

	got = positions(t, merge.Records(merge.Positional()))
	assert.Empty(t, got)
}

func TestRecords_EarlyBreak(t *testing.T) {
	a := sorted(
		variant.RecordImpl{Chromosome: "chr1", Position: 1},
		variant.RecordImpl{Chromosome: "chr1", Position: 2},
		variant.RecordImpl{Chromosome: "chr1", Position: 3},
	)

	count := 0
	for range merge.Records(merge.Positional(), a) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestRecords_DictOrder(t *testing.T) {
	// Dictionary order differs from lexicographic: chr10 before chr2.
	dict, err := seqdict.New(
		seqdict.Entry{Name: "chr10", Length: 1000},
		seqdict.Entry{Name: "chr2", Length: 500},
	)
	require.NoError(t, err)

	a := merge.SeqSource(slices.Values([]variant.Record{
		variant.RecordImpl{Chromosome: "chr10", Position: 2},
		variant.RecordImpl{Chromosome: "chr2", Position: 1},
	}))
	b := merge.SeqSource(slices.Values([]variant.Record{
		variant.RecordImpl{Chromosome: "chr10", Position: 5},
		variant.RecordImpl{Chromosome: "chr2", Position: 9},
	}))

	got := positions(t, merge.Records(merge.DictOrder(dict), a, b))

	want := []variant.RecordImpl{
		{Chromosome: "chr10", Position: 2},
		{Chromosome: "chr10", Position: 5},
		{Chromosome: "chr2", Position: 1},
		{Chromosome: "chr2", Position: 9},
	}
	assert.Equal(t, want, got)
}

func TestRecords_FeedsWindowStream(t *testing.T) {
	a := sorted(
		variant.RecordImpl{Chromosome: "chr1", Position: 1},
		variant.RecordImpl{Chromosome: "chr2", Position: 6},
	)
	b := sorted(
		variant.RecordImpl{Chromosome: "chr1", Position: 3},
		variant.RecordImpl{Chromosome: "chr2", Position: 2},
	)

	stream := window.NewRecordStream(merge.Records(merge.Positional(), a, b))

	counts := map[string]int{}
	for view, err := range stream.Views() {
		require.NoError(t, err)
		for range view.All() {
			counts[view.Chromosome()]++
		}
		require.NoError(t, view.Err())
	}
	assert.Equal(t, map[string]int{"chr1": 2, "chr2": 2}, counts)
}
