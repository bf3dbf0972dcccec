package variant

import (
	"cmp"
	"math"
)

var (
	// Create a string with the maximum Unicode code point (U+10FFFF).
	maxPossibleString = "\U0010FFFF"
	// Max sorts after every valid record. Useful as the sentinel value
	// for merge trees and other sorted containers.
	Max Record = RecordImpl{
		Chromosome: maxPossibleString,
		Position:   math.MaxUint64,
	}
)

// Record is one position on one chromosome, as produced by an input
// source. The payload beyond chromosome and position is opaque to the
// windowing framework.
type Record interface {
	GetChromosome() string
	GetPosition() uint64
	Less(t Record) bool
}

// RecordImpl is the plain value implementation of Record.
type RecordImpl struct {
	Chromosome string
	Position   uint64
	Data       []byte
}

func (r RecordImpl) GetChromosome() string {
	return r.Chromosome
}

func (r RecordImpl) GetPosition() uint64 {
	return r.Position
}

func (r RecordImpl) GetData() []byte {
	return r.Data
}

func (r RecordImpl) Less(t Record) bool {
	return Compare(r, t) < 0
}

// Compare orders records by chromosome name, then by position.
// Chromosomes compare lexicographically; callers that need a
// dictionary-defined chromosome order should sort runs themselves.
func Compare(a, b Record) int {
	if c := cmp.Compare(a.GetChromosome(), b.GetChromosome()); c != 0 {
		return c
	}
	return cmp.Compare(a.GetPosition(), b.GetPosition())
}
