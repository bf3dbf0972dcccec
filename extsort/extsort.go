// Package extsort provides an external sorting buffer for variant
// records, backed by a pebble key-value store. Records may be ingested in
// any order and in volumes far beyond memory; iteration replays them
// sorted by chromosome and position, ready for window streaming.
package extsort

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"iter"
	"os"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/hashicorp/go-multierror"

	"github.com/kkpan11/genesis/variant"
)

// ErrClosed is returned when adding to or iterating a closed buffer.
var ErrClosed = errors.New("extsort: buffer already closed")

// Options configures a Buffer.
type Options struct {
	// Path is the directory for the backing store. When empty, a
	// temporary directory is created and removed again on Close.
	Path string

	// FS overrides the filesystem the store runs on, e.g. vfs.NewMem()
	// for a memory-backed buffer.
	FS vfs.FS
}

// Buffer sorts records through a disk-backed store.
// It is not safe for concurrent use.
type Buffer struct {
	db     *pebble.DB
	path   string
	remove bool
	count  int
	err    error
	closed bool
}

// New creates a buffer. Close it to release the backing store.
func New(opts Options) (*Buffer, error) {
	path := opts.Path
	remove := false
	if path == "" {
		if opts.FS != nil {
			path = "extsort"
		} else {
			dir, err := os.MkdirTemp("", "extsort-*")
			if err != nil {
				return nil, fmt.Errorf("extsort: failed to create temp dir: %w", err)
			}
			path = dir
			remove = true
		}
	}

	pebbleOpts := &pebble.Options{}
	if opts.FS != nil {
		pebbleOpts.FS = opts.FS
	}

	db, err := pebble.Open(path, pebbleOpts)
	if err != nil {
		if remove {
			os.RemoveAll(path)
		}
		return nil, fmt.Errorf("extsort: failed to open store: %w", err)
	}

	return &Buffer{db: db, path: path, remove: remove}, nil
}

// Add ingests a record. A record at an already ingested chromosome and
// position replaces the previous one.
func (b *Buffer) Add(rec variant.RecordImpl) error {
	if b.closed {
		return ErrClosed
	}
	key, err := encodeKey(rec.Chromosome, rec.Position)
	if err != nil {
		return err
	}
	if err := b.db.Set(key, rec.Data, pebble.NoSync); err != nil {
		return fmt.Errorf("extsort: failed to ingest record: %w", err)
	}
	b.count++
	return nil
}

// Len returns the number of Add calls, replacements included.
func (b *Buffer) Len() int {
	return b.count
}

// All iterates the ingested records sorted by chromosome, then position.
// A store error terminates the sequence; check Err after the loop.
func (b *Buffer) All() iter.Seq[variant.Record] {
	return func(yield func(variant.Record) bool) {
		if b.closed {
			b.err = ErrClosed
			return
		}
		it, err := b.db.NewIter(nil)
		if err != nil {
			b.err = fmt.Errorf("extsort: failed to iterate store: %w", err)
			return
		}
		defer func() {
			if cerr := it.Close(); cerr != nil && b.err == nil {
				b.err = fmt.Errorf("extsort: failed to close iterator: %w", cerr)
			}
		}()

		for it.First(); it.Valid(); it.Next() {
			chromosome, position, err := decodeKey(it.Key())
			if err != nil {
				b.err = err
				return
			}
			rec := variant.RecordImpl{
				Chromosome: chromosome,
				Position:   position,
				Data:       bytes.Clone(it.Value()),
			}
			if !yield(rec) {
				return
			}
		}
		if err := it.Error(); err != nil {
			b.err = fmt.Errorf("extsort: store iteration failed: %w", err)
		}
	}
}

// Err returns the first store error encountered by All.
func (b *Buffer) Err() error {
	return b.err
}

// Close releases the backing store and removes it if it was temporary.
// It is safe to call multiple times.
func (b *Buffer) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	var result error
	if err := b.db.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if b.remove {
		if err := os.RemoveAll(b.path); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result
}

// Keys are the chromosome name, a NUL separator, and the big-endian
// position, so that the store's key order is the window input order.
func encodeKey(chromosome string, position uint64) ([]byte, error) {
	if bytes.ContainsRune([]byte(chromosome), 0) {
		return nil, fmt.Errorf("extsort: chromosome %q contains a NUL byte", chromosome)
	}
	key := make([]byte, 0, len(chromosome)+1+8)
	key = append(key, chromosome...)
	key = append(key, 0)
	key = binary.BigEndian.AppendUint64(key, position)
	return key, nil
}

func decodeKey(key []byte) (string, uint64, error) {
	sep := bytes.IndexByte(key, 0)
	if sep < 0 || len(key) != sep+1+8 {
		return "", 0, fmt.Errorf("extsort: corrupt store key %q", key)
	}
	return string(key[:sep]), binary.BigEndian.Uint64(key[sep+1:]), nil
}
