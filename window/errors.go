package window

import (
	"fmt"
)

// DuplicateChromosomeError occurs when a chromosome starts a second run
// after its contiguous run has ended.
type DuplicateChromosomeError struct{ Chromosome string }

// Error returns a textual representation of this DuplicateChromosomeError.
func (e *DuplicateChromosomeError) Error() string {
	return fmt.Sprintf("window: chromosome %s occurs multiple times in the input", e.Chromosome)
}

// UnorderedPositionError occurs when a position within a chromosome run is
// not strictly greater than the position before it.
type UnorderedPositionError struct {
	Chromosome string
	Previous   uint64
	Position   uint64
}

// Error returns a textual representation of this UnorderedPositionError.
func (e *UnorderedPositionError) Error() string {
	return fmt.Sprintf(
		"window: invalid order on chromosome %s with position %d followed by position %d",
		e.Chromosome, e.Previous, e.Position,
	)
}

// UnknownChromosomeError occurs when the input contains a chromosome that
// is absent from the supplied sequence dictionary.
type UnknownChromosomeError struct{ Chromosome string }

// Error returns a textual representation of this UnknownChromosomeError.
func (e *UnknownChromosomeError) Error() string {
	return fmt.Sprintf(
		"window: cannot iterate chromosome %s, as the sequence dictionary does not contain it",
		e.Chromosome,
	)
}

// ChromosomeLengthExceededError occurs when the input contains positions
// beyond the length the sequence dictionary declares for a chromosome.
type ChromosomeLengthExceededError struct {
	Chromosome string
	Length     uint64
	Position   uint64
}

// Error returns a textual representation of this ChromosomeLengthExceededError.
func (e *ChromosomeLengthExceededError) Error() string {
	return fmt.Sprintf(
		"window: chromosome %s has length %d in the sequence dictionary, "+
			"but the input data contains positions up to %d",
		e.Chromosome, e.Length, e.Position,
	)
}
