// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tape

import "io"

// A Stream parses a sequence of concatenated top-level JSON values sharing
// one structural index array -- the shape produced by newline-delimited
// JSON, or by any concatenation of complete documents with no separator
// other than the grammar itself supplying one. The original stage-2
// algorithm continues across root values inside its own state machine; this
// type instead provides the ndjson-root-continuation Go API sketched for
// this package, reusing Parse's resumption index instead of giving the
// grammar driver its own understanding of '\n'.
type Stream struct {
	input   []byte
	indices []uint32
	opts    Options
	pos     int
	done    bool
}

// NewStream returns a Stream ready to parse the first document.
func NewStream(input []byte, indices []uint32, opts Options) *Stream {
	opts.Streaming = true
	return &Stream{input: input, indices: indices, opts: opts}
}

// Next parses the next document into buf. It returns io.EOF once every
// structural index has been consumed by a prior call.
func (s *Stream) Next(buf *Buffers) error {
	if s.done {
		return io.EOF
	}
	next, err := Parse(s.input, s.indices, s.pos, buf, s.opts)
	if err != nil {
		if e, ok := err.(*Error); ok && e.Code == Empty {
			s.done = true
			return io.EOF
		}
		return err
	}
	s.pos = next
	if s.pos >= len(s.indices) {
		s.done = true
	}
	return nil
}
