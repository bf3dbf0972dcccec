// Package recordio implements a compact binary container for variant
// records, used to spill sorted record streams to disk and replay them
// later without re-parsing their text source.
//
// A file starts with a four byte header: the magic bytes "GVR" and one
// flags byte. When the LZ4 flag is set, everything after the header is an
// LZ4 frame. Records follow back to back, each encoded as a
// length-prefixed chromosome name, a fixed-size position, and a
// length-prefixed opaque payload.
//
// Writing:
//
//	w, err := recordio.NewWriter(f, &recordio.Options{Compress: true})
//	if err != nil { ... }
//	for _, rec := range recs {
//	    if err := w.Write(rec); err != nil { ... }
//	}
//	if err := w.Close(); err != nil { ... }
//
// Reading back, lazily:
//
//	r, err := recordio.NewReader(f)
//	if err != nil { ... }
//	for rec := range r.All() {
//	    // ...
//	}
//	if err := r.Err(); err != nil { ... }
//
// The replayed sequence preserves write order, so a file written from a
// sorted stream feeds straight into window streaming.
package recordio
