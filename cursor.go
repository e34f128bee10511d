// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tape

// A cursor iterates the upstream structural index array. It never validates
// anything about the bytes it visits -- it is a pure index walker, matching
// spec.md §4.B ("the cursor never validates").
type cursor struct {
	input   []byte
	indices []uint32
	pos     int // index into indices of the current structural position
}

func newCursor(input []byte, indices []uint32, startAt int) cursor {
	return cursor{input: input, indices: indices, pos: startAt}
}

// atEnd reports whether fewer than n structural indices remain starting at
// the current position (the current index included).
func (c *cursor) atEnd(n int) bool { return c.pos+n > len(c.indices) }

// offset returns the byte offset of the current structural index, used for
// error reporting.
func (c *cursor) offset() int {
	if c.pos >= len(c.indices) {
		return len(c.input)
	}
	return int(c.indices[c.pos])
}

// currentChar returns the byte at the current structural index.
func (c *cursor) currentChar() byte { return c.input[c.indices[c.pos]] }

// currentRest returns the input starting at the current structural index,
// for atom and number routines that need lookahead.
func (c *cursor) currentRest() []byte { return c.input[c.indices[c.pos]:] }

// advance moves to the next structural index and returns its byte. It reads
// indices[pos+1], so the caller must have checked atEnd(2) is false -- the
// same precondition peekNext requires, since both read one index past the
// current position.
func (c *cursor) advance() byte {
	c.pos++
	return c.input[c.indices[c.pos]]
}

// peekNext returns the byte at the next structural index without advancing.
// The caller must have checked atEnd(2) is false.
func (c *cursor) peekNext() byte { return c.input[c.indices[c.pos+1]] }

// nextIndex returns the index into the structural array a caller should
// resume from after the value ending at the current position -- one past
// the current structural position.
func (c *cursor) nextIndex() int { return c.pos + 1 }
