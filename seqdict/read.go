package seqdict

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadFai parses a FASTA index (.fai) file: one sequence per line, with
// tab-separated name and length in the first two columns. Remaining
// columns (offset, line length) are ignored.
func ReadFai(r io.Reader) (*Dict, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if text == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("seqdict: fai line %d: expected at least 2 columns, got %d", line, len(fields))
		}
		length, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seqdict: fai line %d: invalid length %q: %w", line, fields[1], err)
		}
		entries = append(entries, Entry{Name: fields[0], Length: length})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("seqdict: failed to read fai: %w", err)
	}

	return New(entries...)
}

// ReadSam parses sequence entries from SAM header lines, as found in
// .dict files: every @SQ line contributes one entry from its SN and LN
// tags. Other header lines are ignored.
func ReadSam(r io.Reader) (*Dict, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if !strings.HasPrefix(text, "@SQ") {
			continue
		}

		var (
			name      string
			length    uint64
			hasLength bool
		)
		for _, field := range strings.Split(text, "\t")[1:] {
			switch {
			case strings.HasPrefix(field, "SN:"):
				name = field[len("SN:"):]
			case strings.HasPrefix(field, "LN:"):
				l, err := strconv.ParseUint(field[len("LN:"):], 10, 64)
				if err != nil {
					return nil, fmt.Errorf("seqdict: sam line %d: invalid LN tag %q: %w", line, field, err)
				}
				length = l
				hasLength = true
			}
		}
		if name == "" || !hasLength {
			return nil, fmt.Errorf("seqdict: sam line %d: @SQ line is missing SN or LN tag", line)
		}
		entries = append(entries, Entry{Name: name, Length: length})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("seqdict: failed to read sam header: %w", err)
	}

	return New(entries...)
}
