// Package seqdict provides a sequence dictionary: an ordered lookup table
// from chromosome name to declared chromosome length, as found in FASTA
// index (.fai) files and SAM/dict headers.
//
// A dictionary is immutable after construction and therefore safe to share
// between any number of concurrent readers.
package seqdict

import (
	"fmt"
	"iter"
)

// Entry declares the length of one named sequence.
type Entry struct {
	Name   string
	Length uint64
}

// Dict is an ordered collection of sequence entries with name lookup.
type Dict struct {
	entries []Entry
	index   map[string]int
}

// New builds a dictionary from entries, preserving their order.
// Duplicate names are rejected.
func New(entries ...Entry) (*Dict, error) {
	d := &Dict{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("seqdict: empty sequence name")
		}
		if _, exists := d.index[e.Name]; exists {
			return nil, fmt.Errorf("seqdict: duplicate sequence name %s", e.Name)
		}
		d.index[e.Name] = len(d.entries)
		d.entries = append(d.entries, e)
	}
	return d, nil
}

// Len returns the number of sequences in the dictionary.
func (d *Dict) Len() int {
	return len(d.entries)
}

// Get looks up a sequence by name.
func (d *Dict) Get(name string) (Entry, bool) {
	i, ok := d.index[name]
	if !ok {
		return Entry{}, false
	}
	return d.entries[i], true
}

// Rank returns the position of the named sequence in dictionary order.
func (d *Dict) Rank(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// All iterates the entries in dictionary order.
func (d *Dict) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range d.entries {
			if !yield(e) {
				return
			}
		}
	}
}
