// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package tape implements the second stage of a high-throughput JSON
// parser: the structural tape builder.
//
// # Two-stage design
//
// A caller first locates the structural indices of a document -- the byte
// offsets of every character that matters to the grammar ({ } [ ] , : " and
// the leading byte of every atom or number) -- typically with a
// SIMD-accelerated scanner outside this package. Parse then walks those
// indices, validates the JSON grammar, and emits a compact linear tape:
//
//	buf := tape.NewBuffers(len(input))
//	next, err := tape.Parse(input, indices, 0, buf, tape.Options{})
//	if err != nil {
//	    log.Fatalf("Parse failed: %v", err)
//	}
//
// The tape is a sequence of 64-bit words. Container values (objects and
// arrays) are cross-referenced: the word that opens a container points at
// the word that closes it, and vice versa, so a reader can skip an entire
// subtree in constant time. See the Word and Tag documentation for the
// exact layout.
//
// # Streaming
//
// The Stream type parses a sequence of concatenated JSON values -- for
// example newline-delimited JSON -- one at a time:
//
//	s := tape.NewStream(input, indices, tape.Options{})
//	for {
//	    if err := s.Next(buf); err == io.EOF {
//	        break
//	    } else if err != nil {
//	        log.Fatalf("Next failed: %v", err)
//	    }
//	    // buf.Tape now holds one complete, root-bracketed document.
//	}
//
// # Errors
//
// Parse and Stream.Next report failures as an *Error carrying an ErrorCode
// and the byte offset of the structural index active when the failure was
// discovered. Depth overflow, grammar violations, and malformed leaves
// (strings, numbers, atoms) are all reported with distinct codes; see
// ErrorCode for the full list.
package tape
