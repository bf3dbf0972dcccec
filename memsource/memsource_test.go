package memsource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkpan11/genesis/memsource"
	"github.com/kkpan11/genesis/variant"
	"github.com/kkpan11/genesis/window"
)

func TestBuffer_SortsRecords(t *testing.T) {
	buf := memsource.New()
	buf.Add(variant.RecordImpl{Chromosome: "chr2", Position: 4})
	buf.Add(variant.RecordImpl{Chromosome: "chr1", Position: 9})
	buf.Add(variant.RecordImpl{Chromosome: "chr1", Position: 5})
	buf.Add(variant.RecordImpl{Chromosome: "chr2", Position: 2})

	assert.Equal(t, 4, buf.Len())

	var got []variant.RecordImpl
	for rec := range buf.All() {
		got = append(got, rec.(variant.RecordImpl))
	}
	assert.Equal(t, []variant.RecordImpl{
		{Chromosome: "chr1", Position: 5},
		{Chromosome: "chr1", Position: 9},
		{Chromosome: "chr2", Position: 2},
		{Chromosome: "chr2", Position: 4},
	}, got)
}

func TestBuffer_ReplacesDuplicates(t *testing.T) {
	buf := memsource.New()
	buf.Add(variant.RecordImpl{Chromosome: "chr1", Position: 5, Data: []byte("old")})
	buf.Add(variant.RecordImpl{Chromosome: "chr1", Position: 5, Data: []byte("new")})

	assert.Equal(t, 1, buf.Len())
	for rec := range buf.All() {
		assert.Equal(t, []byte("new"), rec.(variant.RecordImpl).Data)
	}
}

func TestBuffer_FeedsWindowStream(t *testing.T) {
	buf := memsource.New()
	buf.Add(variant.RecordImpl{Chromosome: "chr2", Position: 2})
	buf.Add(variant.RecordImpl{Chromosome: "chr1", Position: 9})
	buf.Add(variant.RecordImpl{Chromosome: "chr1", Position: 5})

	stream := window.NewRecordStream(buf.All())

	counts := map[string]int{}
	for view, err := range stream.Views() {
		require.NoError(t, err)
		for range view.All() {
			counts[view.Chromosome()]++
		}
		require.NoError(t, view.Err())
	}
	assert.Equal(t, map[string]int{"chr1": 2, "chr2": 1}, counts)
}
