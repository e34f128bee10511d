// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tape

import "encoding/binary"

// Options controls the behavior of Parse.
type Options struct {
	// MaxDepth bounds the nesting depth of objects and arrays, including the
	// implicit root scope. Zero selects a default of 1024.
	MaxDepth int

	// Streaming disables the root-array safety belt (see dispatchRoot): in a
	// stream of concatenated documents, the last structural index of the
	// shared indices array belongs to whichever document is last, not to
	// the document currently being parsed, so the belt cannot be applied.
	// Stream sets this on every Parse call it makes; callers parsing a
	// single complete document should leave it false.
	Streaming bool
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return 1024
	}
	return o.MaxDepth
}

// Buffers holds the caller-owned tape and string storage a single Parse
// call writes into. Reuse across calls to avoid reallocating: Parse resets
// both slices to length zero before writing.
type Buffers struct {
	Tape    []Word
	Strings []byte
}

// NewBuffers allocates Buffers sized for a document of roughly n bytes. The
// tape estimate assumes on average one structural word per two input bytes;
// the string estimate assumes decoded string content is at most half the
// input. Both grow automatically if an actual document needs more.
func NewBuffers(n int) *Buffers {
	return &Buffers{
		Tape:    make([]Word, 0, n/2+8),
		Strings: make([]byte, 0, n/2+8),
	}
}

// state names the driver's position in the grammar, following spec.md §4.G.
type state int

const (
	stStart state = iota
	stObjectBegin
	stObjectKeyState
	stObjectContinue
	stArrayBegin
	stMainArraySwitch
	stArrayContinue
	stFinish
)

// driver walks the structural index array once, emitting tape words and
// decoded string content, per spec.md §4.G ("Grammar driver").
type driver struct {
	c         cursor
	tw        writer
	scopes    scopeStack
	strs      *[]byte
	streaming bool
}

// Parse validates the JSON grammar of input using the structural indices in
// indices[startAt:] (sorted ascending byte offsets into input of every
// structurally significant byte, as produced by an upstream stage-1 scan),
// and emits a tape and decoded string content into buf.
//
// It returns the index into indices one past the value it consumed, so a
// caller parsing a stream of concatenated top-level values can resume from
// there (see Stream). On error the returned index is also valid to resume
// diagnostics from, but buf's contents are undefined and must not be used.
func Parse(input []byte, indices []uint32, startAt int, buf *Buffers, opts Options) (int, error) {
	if startAt >= len(indices) {
		return startAt, parseErr(Empty, -1)
	}
	buf.Tape = buf.Tape[:0]
	buf.Strings = buf.Strings[:0]

	d := &driver{
		c:         newCursor(input, indices, startAt),
		tw:        writer{tape: &buf.Tape},
		scopes:    newScopeStack(opts.maxDepth()),
		strs:      &buf.Strings,
		streaming: opts.Streaming,
	}
	return d.run()
}

// run drives the state machine to completion, returning the index to resume
// from and any grammar error. Every handler below returns either the next
// state or an error; run itself never inspects tape or string content.
func (d *driver) run() (int, error) {
	rootIdx := d.tw.skip()
	if !d.scopes.startScope(rootIdx, retFinish) {
		return d.c.nextIndex(), parseErr(DepthError, d.c.offset())
	}

	st := stStart
	for {
		var (
			next state
			err  error
		)
		switch st {
		case stStart:
			next, err = d.dispatchRoot()
		case stObjectBegin:
			next, err = d.objectBegin()
		case stObjectKeyState:
			next, err = d.objectKeyState()
		case stObjectContinue:
			next, err = d.objectContinue()
		case stArrayBegin:
			next, err = d.arrayBegin()
		case stMainArraySwitch:
			next, err = d.mainArraySwitch()
		case stArrayContinue:
			next, err = d.arrayContinue()
		case stFinish:
			d.endScope(TagRoot, TagRoot)
			if d.scopes.depth != 0 {
				return d.c.nextIndex(), parseErr(TapeError, d.c.offset())
			}
			return d.c.nextIndex(), nil
		}
		if err != nil {
			return d.c.nextIndex(), err
		}
		st = next
	}
}

// classify inspects the current byte to pick an error code when the grammar
// rejects it outright. Depth overflow is reported directly by the caller
// and never reaches classify, per spec.md's failure semantics.
func (d *driver) classify() ErrorCode {
	switch b := d.c.currentChar(); {
	case b == '"':
		return StringError
	case b == '-' || isDigit(b):
		return NumberError
	case b == 't':
		return TAtomError
	case b == 'f':
		return FAtomError
	case b == 'n':
		return NAtomError
	default:
		return TapeError
	}
}

func (d *driver) fail() error { return parseErr(d.classify(), d.c.offset()) }

// endScope closes the innermost open scope: it appends the END word (whose
// payload is the START word's own tape index) and back-patches the START
// word with the saturated child count and the tape index one past the END
// word just appended (see countPayload). It returns the return state the
// closing scope was opened under, so the caller knows where to resume.
func (d *driver) endScope(startTag, endTag Tag) returnState {
	entry := d.scopes.endScope()
	d.tw.append(endTag, uint64(entry.tapeIndex))
	d.tw.patch(entry.tapeIndex, startTag, countPayload(uint32(d.tw.next()), entry.count))
	return entry.ret
}

// retToState maps a scope's saved return state to the driver state to
// resume in once that scope closes.
func retToState(r returnState) state {
	switch r {
	case retObjectContinue:
		return stObjectContinue
	case retArrayContinue:
		return stArrayContinue
	default:
		return stFinish
	}
}

// dispatchValue parses the value beginning at the cursor's current
// structural position (already advanced onto the value's leading byte) and
// returns the state to continue in once it (and its whole subtree, if a
// container) is fully parsed.
func (d *driver) dispatchValue(cont returnState) (state, error) {
	switch ch := d.c.currentChar(); {
	case ch == '"':
		if !d.parseStringValue() {
			return 0, d.fail()
		}
		return retToState(cont), nil
	case ch == 't':
		if !validTrue(d.c.currentRest()) {
			return 0, d.fail()
		}
		d.tw.append(TagTrue, 0)
		return retToState(cont), nil
	case ch == 'f':
		if !validFalse(d.c.currentRest()) {
			return 0, d.fail()
		}
		d.tw.append(TagFalse, 0)
		return retToState(cont), nil
	case ch == 'n':
		if !validNull(d.c.currentRest()) {
			return 0, d.fail()
		}
		d.tw.append(TagNull, 0)
		return retToState(cont), nil
	case ch == '-' || isDigit(ch):
		if _, ok := parseNumber(d.c.currentRest(), d.tw); !ok {
			return 0, d.fail()
		}
		return retToState(cont), nil
	case ch == '{':
		idx := d.tw.skip()
		if !d.scopes.startScope(idx, cont) {
			return 0, parseErr(DepthError, d.c.offset())
		}
		return stObjectBegin, nil
	case ch == '[':
		idx := d.tw.skip()
		if !d.scopes.startScope(idx, cont) {
			return 0, parseErr(DepthError, d.c.offset())
		}
		return stArrayBegin, nil
	default:
		return 0, d.fail()
	}
}

// dispatchRoot handles the START state: the very first structural byte of
// the document, with no preceding advance.
func (d *driver) dispatchRoot() (state, error) {
	switch ch := d.c.currentChar(); {
	case ch == '{':
		idx := d.tw.skip()
		if !d.scopes.startScope(idx, retFinish) {
			return 0, parseErr(DepthError, d.c.offset())
		}
		return stObjectBegin, nil
	case ch == '[':
		// Safety belt: refuse to enter a top-level array unless the last
		// structural byte of the input is its closing bracket. A malformed
		// index array (or corrupted input) could otherwise desynchronize
		// the scope stack from the structural indices; see spec.md §9's
		// Open Question on this check. Only meaningful for a single
		// complete document: in streaming mode the last structural index
		// of the shared array belongs to whichever document is last, not
		// necessarily this one, so the belt is skipped entirely.
		if !d.streaming && d.c.input[d.c.indices[len(d.c.indices)-1]] != ']' {
			return 0, parseErr(TapeError, d.c.offset())
		}
		idx := d.tw.skip()
		if !d.scopes.startScope(idx, retFinish) {
			return 0, parseErr(DepthError, d.c.offset())
		}
		return stArrayBegin, nil
	default:
		return d.dispatchValue(retFinish)
	}
}

func (d *driver) objectBegin() (state, error) {
	if d.c.atEnd(2) {
		return 0, parseErr(TapeError, d.c.offset())
	}
	switch ch := d.c.advance(); ch {
	case '"':
		d.scopes.incrementCount()
		if !d.parseStringValue() {
			return 0, d.fail()
		}
		return stObjectKeyState, nil
	case '}':
		return retToState(d.endScope(TagStartObject, TagEndObject)), nil
	default:
		return 0, d.fail()
	}
}

func (d *driver) objectKeyState() (state, error) {
	if d.c.atEnd(2) || d.c.advance() != ':' {
		return 0, parseErr(TapeError, d.c.offset())
	}
	if d.c.atEnd(2) {
		return 0, parseErr(TapeError, d.c.offset())
	}
	d.c.advance()
	return d.dispatchValue(retObjectContinue)
}

func (d *driver) objectContinue() (state, error) {
	if d.c.atEnd(2) {
		return 0, parseErr(TapeError, d.c.offset())
	}
	switch ch := d.c.advance(); ch {
	case ',':
		d.scopes.incrementCount()
		if d.c.atEnd(2) || d.c.advance() != '"' {
			return 0, d.fail()
		}
		if !d.parseStringValue() {
			return 0, d.fail()
		}
		return stObjectKeyState, nil
	case '}':
		return retToState(d.endScope(TagStartObject, TagEndObject)), nil
	default:
		return 0, d.fail()
	}
}

func (d *driver) arrayBegin() (state, error) {
	if d.c.atEnd(2) {
		return 0, parseErr(TapeError, d.c.offset())
	}
	if d.c.peekNext() == ']' {
		d.c.advance()
		return retToState(d.endScope(TagStartArray, TagEndArray)), nil
	}
	d.scopes.incrementCount()
	return d.mainArraySwitch()
}

func (d *driver) mainArraySwitch() (state, error) {
	if d.c.atEnd(2) {
		return 0, parseErr(TapeError, d.c.offset())
	}
	d.c.advance()
	return d.dispatchValue(retArrayContinue)
}

func (d *driver) arrayContinue() (state, error) {
	if d.c.atEnd(2) {
		return 0, parseErr(TapeError, d.c.offset())
	}
	switch ch := d.c.advance(); ch {
	case ',':
		d.scopes.incrementCount()
		return d.mainArraySwitch()
	case ']':
		return retToState(d.endScope(TagStartArray, TagEndArray)), nil
	default:
		return 0, d.fail()
	}
}

// parseStringValue decodes the quoted string at the cursor's current
// position into the string buffer and appends a STRING tape word pointing
// at it, per spec.md §4.D. The string buffer layout is a 4-byte
// little-endian length prefix followed by that many decoded bytes and a
// trailing NUL, matching the wire layout in spec.md §6.
func (d *driver) parseStringValue() bool {
	src := d.c.currentRest()
	payloadOffset := len(*d.strs)
	*d.strs = append(*d.strs, 0, 0, 0, 0)
	dstStart := len(*d.strs)
	*d.strs = append(*d.strs, make([]byte, len(src))...)
	dst := (*d.strs)[dstStart:]

	_, written, ok := parseString(src, dst)
	if !ok {
		*d.strs = (*d.strs)[:payloadOffset]
		return false
	}
	*d.strs = (*d.strs)[:dstStart+written]
	*d.strs = append(*d.strs, 0)
	binary.LittleEndian.PutUint32((*d.strs)[payloadOffset:], uint32(written))

	d.tw.append(TagString, uint64(payloadOffset))
	return true
}
