package recordio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/pierrec/lz4/v4"

	"github.com/kkpan11/genesis/variant"
)

var (
	Uint64Size = int64(binary.Size(uint64(0)))
	// MagicBytes Magic bytes to identify valid variant record files (GVR).
	MagicBytes           = []byte{0x47, 0x56, 0x52}
	ErrInvalidMagicBytes = errors.New("invalid magic bytes - not a valid recordio file")
	ErrUnknownFlags      = errors.New("unknown flags - file written by a newer format version")
)

// Header flag bits.
const (
	flagLZ4 byte = 1 << 0

	knownFlags = flagLZ4
)

// Options configures a Writer.
type Options struct {
	// Compress LZ4-compresses the record stream after the header.
	Compress bool
}

// BinaryWriter handles writing binary data with error handling.
type BinaryWriter struct {
	w io.Writer
}

func NewBinaryWriter(w io.Writer) BinaryWriter {
	return BinaryWriter{w: w}
}

func (bw BinaryWriter) WriteString(s string) (int64, error) {
	// Write string length (uint64)
	if err := binary.Write(bw.w, binary.LittleEndian, uint64(len(s))); err != nil {
		return 0, fmt.Errorf("error writing string length: %w", err)
	}

	// Write string content
	n, err := io.WriteString(bw.w, s)
	if err != nil {
		return Uint64Size, fmt.Errorf("error writing string content: %w", err)
	}

	// Return total bytes written (length field + string content)
	return Uint64Size + int64(n), nil
}

func (bw BinaryWriter) WriteUint64(i uint64) (int64, error) {
	if err := binary.Write(bw.w, binary.LittleEndian, i); err != nil {
		return 0, err
	}
	return Uint64Size, nil
}

func (bw BinaryWriter) WriteBytes(b []byte) (int64, error) {
	// Write bytes length (uint64)
	if err := binary.Write(bw.w, binary.LittleEndian, uint64(len(b))); err != nil {
		return 0, fmt.Errorf("error writing bytes length: %w", err)
	}

	// Write bytes content
	n, err := bw.w.Write(b)
	if err != nil {
		return Uint64Size, fmt.Errorf("error writing bytes content: %w", err)
	}

	// Return total bytes written (length field + bytes content)
	return Uint64Size + int64(n), nil
}

// BinaryReader handles reading binary data with error handling.
type BinaryReader struct {
	r io.Reader
}

func NewBinaryReader(r io.Reader) BinaryReader {
	return BinaryReader{r: r}
}

func (br BinaryReader) ReadString() (string, error) {
	var length uint64
	if err := binary.Read(br.r, binary.LittleEndian, &length); err != nil {
		return "", err
	}

	b := make([]byte, length)
	if _, err := io.ReadFull(br.r, b); err != nil {
		return "", fmt.Errorf("error reading string content: %w", err)
	}
	return string(b), nil
}

func (br BinaryReader) ReadUint64() (uint64, error) {
	var value uint64
	err := binary.Read(br.r, binary.LittleEndian, &value)
	return value, err
}

func (br BinaryReader) ReadBytes() ([]byte, error) {
	var length uint64
	if err := binary.Read(br.r, binary.LittleEndian, &length); err != nil {
		return nil, fmt.Errorf("error reading bytes length: %w", err)
	}
	if length == 0 {
		return nil, nil
	}

	b := make([]byte, length)
	if _, err := io.ReadFull(br.r, b); err != nil {
		return nil, fmt.Errorf("error reading bytes content: %w", err)
	}
	return b, nil
}

// Writer writes a stream of variant records behind a file header.
type Writer struct {
	bw BinaryWriter
	lz *lz4.Writer
}

// NewWriter writes the file header to w and returns a Writer for the
// records that follow.
func NewWriter(w io.Writer, opts *Options) (*Writer, error) {
	if opts == nil {
		opts = &Options{}
	}

	var flags byte
	if opts.Compress {
		flags |= flagLZ4
	}

	if _, err := w.Write(MagicBytes); err != nil {
		return nil, fmt.Errorf("failed to write magic bytes: %w", err)
	}
	if _, err := w.Write([]byte{flags}); err != nil {
		return nil, fmt.Errorf("failed to write flags: %w", err)
	}

	writer := &Writer{}
	out := w
	if opts.Compress {
		writer.lz = lz4.NewWriter(w)
		out = writer.lz
	}
	writer.bw = NewBinaryWriter(out)
	return writer, nil
}

// Write appends a single record.
func (w *Writer) Write(rec variant.RecordImpl) error {
	if _, err := w.bw.WriteString(rec.Chromosome); err != nil {
		return fmt.Errorf("error writing chromosome: %w", err)
	}
	if _, err := w.bw.WriteUint64(rec.Position); err != nil {
		return fmt.Errorf("error writing position: %w", err)
	}
	if _, err := w.bw.WriteBytes(rec.Data); err != nil {
		return fmt.Errorf("error writing data: %w", err)
	}
	return nil
}

// Close flushes the compressor, if any. It does not close the underlying
// writer.
func (w *Writer) Close() error {
	if w.lz != nil {
		return w.lz.Close()
	}
	return nil
}

// Reader reads a stream of variant records written by Writer.
type Reader struct {
	br  BinaryReader
	err error
}

// NewReader reads and validates the file header of r.
func NewReader(r io.Reader) (*Reader, error) {
	header := make([]byte, len(MagicBytes)+1)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if string(header[:len(MagicBytes)]) != string(MagicBytes) {
		return nil, ErrInvalidMagicBytes
	}

	flags := header[len(MagicBytes)]
	if flags&^knownFlags != 0 {
		return nil, ErrUnknownFlags
	}

	src := r
	if flags&flagLZ4 != 0 {
		src = lz4.NewReader(r)
	}
	return &Reader{br: NewBinaryReader(src)}, nil
}

// ReadRecord reads the next record, or io.EOF at the end of the stream.
func (r *Reader) ReadRecord() (variant.RecordImpl, error) {
	chromosome, err := r.br.ReadString()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return variant.RecordImpl{}, io.EOF
		}
		return variant.RecordImpl{}, fmt.Errorf("error reading chromosome: %w", err)
	}

	position, err := r.br.ReadUint64()
	if err != nil {
		return variant.RecordImpl{}, fmt.Errorf("error reading position: %w", err)
	}

	data, err := r.br.ReadBytes()
	if err != nil {
		return variant.RecordImpl{}, fmt.Errorf("error reading data: %w", err)
	}

	return variant.RecordImpl{
		Chromosome: chromosome,
		Position:   position,
		Data:       data,
	}, nil
}

// All iterates over the remaining records. A truncated or corrupt stream
// terminates the sequence; check Err after the loop.
func (r *Reader) All() iter.Seq[variant.Record] {
	return func(yield func(variant.Record) bool) {
		for {
			rec, err := r.ReadRecord()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					r.err = err
				}
				return
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// Err returns the first read error encountered by All, io.EOF excluded.
func (r *Reader) Err() error {
	return r.err
}

// Size calculates the number of bytes a record occupies when written
// uncompressed: the length-prefixed chromosome and data fields plus the
// fixed-size position.
func Size(rec variant.RecordImpl) int64 {
	return Uint64Size + int64(len(rec.Chromosome)) +
		Uint64Size +
		Uint64Size + int64(len(rec.Data))
}
