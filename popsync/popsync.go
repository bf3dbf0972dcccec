// Package popsync reads PoPoolation2 "synchronized" files, a simple
// per-position tally of base counts across populations. Each line holds
// one position on a chromosome:
//
//	2R  2302  T  0:7:0:0:0:0  0:7:0:0:0:0
//	2R  2303  T  0:8:0:0:0:0  0:8:0:0:0:0
//
// with columns chromosome, position, reference base, and one `A:T:C:G:N:D`
// count column per population sample. The extension `.:.:.:.:.:.` marks
// missing data and is accepted by default, see AllowMissing.
//
// The reader exposes the file as a lazy sequence of variant records, which
// makes it a ready-made input source for window streaming:
//
//	r, err := popsync.Open("counts.sync.gz")
//	if err != nil { ... }
//	defer r.Close()
//	stream := window.NewRecordStream(r.All())
package popsync

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/kkpan11/genesis/variant"
)

// Counts tallies the bases of one population sample at one position.
type Counts struct {
	A, T, C, G uint64
	// N counts unresolved bases, Del deleted ones.
	N, Del uint64
	// Missing marks the `.:.:.:.:.:.` notation for masked sites.
	Missing bool
}

// Coverage returns the total base count of the sample.
func (c Counts) Coverage() uint64 {
	return c.A + c.T + c.C + c.G + c.N + c.Del
}

// Variant is one parsed sync line.
type Variant struct {
	Chromosome string
	Position   uint64
	RefBase    byte
	Samples    []Counts
}

func (v Variant) GetChromosome() string {
	return v.Chromosome
}

func (v Variant) GetPosition() uint64 {
	return v.Position
}

func (v Variant) Less(t variant.Record) bool {
	return variant.Compare(v, t) < 0
}

// options defines all configuration options for a Reader.
type options struct {
	allowMissing bool
}

// Option is a function that configures the reader options.
type Option func(*options)

// AllowMissing sets whether the `.:.:.:.:.:.` missing-data notation is
// accepted. It is accepted by default; missing samples parse as
// zero-coverage counts with Missing set.
func AllowMissing(allow bool) Option {
	return func(o *options) {
		o.allowMissing = allow
	}
}

// Reader parses sync lines into variants, lazily.
type Reader struct {
	scanner *bufio.Scanner
	opts    options
	closers []io.Closer
	line    int
	err     error
}

// NewReader reads sync data from r.
func NewReader(r io.Reader, opts ...Option) *Reader {
	o := options{allowMissing: true}
	for _, opt := range opts {
		opt(&o)
	}
	return &Reader{
		scanner: bufio.NewScanner(r),
		opts:    o,
	}
}

// Open reads sync data from a file. Files with a .gz suffix are
// decompressed transparently.
func Open(path string, opts ...Option) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("popsync: failed to open %s: %w", path, err)
	}

	var src io.Reader = file
	closers := []io.Closer{file}
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("popsync: failed to open %s: %w", path, err)
		}
		src = gz
		closers = append(closers, gz)
	}

	r := NewReader(src, opts...)
	r.closers = closers
	return r, nil
}

// All iterates the variants of the input in file order. A malformed line
// terminates the sequence; check Err after the loop.
func (r *Reader) All() iter.Seq[variant.Record] {
	return func(yield func(variant.Record) bool) {
		for r.err == nil && r.scanner.Scan() {
			r.line++
			text := strings.TrimRight(r.scanner.Text(), "\r")
			if text == "" {
				continue
			}
			v, err := r.parseLine(text)
			if err != nil {
				r.err = err
				return
			}
			if !yield(v) {
				return
			}
		}
		if r.err == nil {
			r.err = r.scanner.Err()
		}
	}
}

// ReadAll parses the whole input into a slice.
func (r *Reader) ReadAll() ([]Variant, error) {
	var variants []Variant
	for rec := range r.All() {
		variants = append(variants, rec.(Variant))
	}
	return variants, r.Err()
}

// Err returns the first parse or read error encountered by All.
func (r *Reader) Err() error {
	return r.err
}

// Close closes the underlying file and decompressor, if the reader owns
// any.
func (r *Reader) Close() error {
	var result error
	// Decompressor first, then the file under it.
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	r.closers = nil
	return result
}

func (r *Reader) parseLine(text string) (Variant, error) {
	fields := strings.Fields(text)
	if len(fields) < 4 {
		return Variant{}, fmt.Errorf("popsync: line %d: expected at least 4 columns, got %d", r.line, len(fields))
	}

	position, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Variant{}, fmt.Errorf("popsync: line %d: invalid position %q: %w", r.line, fields[1], err)
	}
	if len(fields[2]) != 1 {
		return Variant{}, fmt.Errorf("popsync: line %d: invalid reference base %q", r.line, fields[2])
	}

	v := Variant{
		Chromosome: fields[0],
		Position:   position,
		RefBase:    fields[2][0],
		Samples:    make([]Counts, 0, len(fields)-3),
	}
	for _, field := range fields[3:] {
		counts, err := r.parseSample(field)
		if err != nil {
			return Variant{}, fmt.Errorf("popsync: line %d: %w", r.line, err)
		}
		v.Samples = append(v.Samples, counts)
	}
	return v, nil
}

func (r *Reader) parseSample(field string) (Counts, error) {
	parts := strings.Split(field, ":")
	if len(parts) != 6 {
		return Counts{}, fmt.Errorf("invalid sample %q: expected 6 colon-separated counts", field)
	}

	if parts[0] == "." {
		if !r.opts.allowMissing {
			return Counts{}, fmt.Errorf("invalid sample %q: missing data is not allowed", field)
		}
		for _, p := range parts[1:] {
			if p != "." {
				return Counts{}, fmt.Errorf("invalid sample %q: mixed missing and counted data", field)
			}
		}
		return Counts{Missing: true}, nil
	}

	var values [6]uint64
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Counts{}, fmt.Errorf("invalid sample %q: %w", field, err)
		}
		values[i] = n
	}
	return Counts{
		A: values[0], T: values[1], C: values[2],
		G: values[3], N: values[4], Del: values[5],
	}, nil
}
