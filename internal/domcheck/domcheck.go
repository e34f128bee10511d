// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package domcheck reconstructs the value tree a tape represents, for use
// as a reference oracle in tests. It is adapted from the shape of the
// teacher's ast package (Object, Array, Member, and a family of scalar
// leaves) but walks an already-built tape.Buffers instead of subscribing to
// a streaming parse event handler; production code never needs this, since
// the whole point of the tape is to avoid materializing a tree.
package domcheck

import (
	"encoding/binary"
	"fmt"
	"math"

	tape "github.com/creachadair/jsontape"
)

// A Value is an arbitrary JSON value reconstructed from a tape.
type Value interface{ isValue() }

// An Object is a collection of key-value members, in tape order.
type Object struct{ Members []Member }

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// An Array is a sequence of values, in tape order.
type Array struct{ Values []Value }

type (
	String string
	Int64  int64
	Uint64 uint64
	Double float64
	Bool   bool
	Null   struct{}
)

func (Object) isValue() {}
func (Array) isValue()  {}
func (String) isValue() {}
func (Int64) isValue()  {}
func (Uint64) isValue() {}
func (Double) isValue() {}
func (Bool) isValue()   {}
func (Null) isValue()   {}

// Build walks buf -- the tape and string buffer a single tape.Parse call
// produced -- and reconstructs the value it represents. It returns an error
// if the tape is not well-formed: not a ROOT-bracketed span, a container
// whose skip target does not land on the matching END word, a string
// payload that runs past the end of the string buffer, and so on. These
// checks exist so tests can assert structural balance beyond what Parse
// itself already guarantees by construction (spec.md §8's round-trip
// properties).
func Build(buf *tape.Buffers) (Value, error) {
	t := buf.Tape
	if len(t) < 2 || t[0].Tag() != tape.TagRoot {
		return nil, fmt.Errorf("domcheck: tape does not begin with ROOT")
	}
	v, next, err := build(t, buf.Strings, 1)
	if err != nil {
		return nil, err
	}
	if next != len(t)-1 || t[next].Tag() != tape.TagRoot {
		return nil, fmt.Errorf("domcheck: tape does not end with a matching ROOT at %d", next)
	}
	return v, nil
}

func build(t []tape.Word, strs []byte, i int) (Value, int, error) {
	if i >= len(t) {
		return nil, 0, fmt.Errorf("domcheck: tape index %d out of range", i)
	}
	w := t[i]
	switch w.Tag() {
	case tape.TagStartObject:
		end := skipTarget(w)
		if end <= i+1 || end > len(t) {
			return nil, 0, fmt.Errorf("domcheck: START_OBJECT at %d has bad skip target %d", i, end)
		}
		var obj Object
		j := i + 1
		for j < end-1 {
			if t[j].Tag() != tape.TagString {
				return nil, 0, fmt.Errorf("domcheck: object key at %d is not a string", j)
			}
			key, kj, err := readString(t, strs, j)
			if err != nil {
				return nil, 0, err
			}
			val, vj, err := build(t, strs, kj)
			if err != nil {
				return nil, 0, err
			}
			obj.Members = append(obj.Members, Member{Key: key, Value: val})
			j = vj
		}
		if j != end-1 || t[j].Tag() != tape.TagEndObject {
			return nil, 0, fmt.Errorf("domcheck: object at %d did not close at its skip target", i)
		}
		return obj, end, nil

	case tape.TagStartArray:
		end := skipTarget(w)
		if end <= i+1 || end > len(t) {
			return nil, 0, fmt.Errorf("domcheck: START_ARRAY at %d has bad skip target %d", i, end)
		}
		var arr Array
		j := i + 1
		for j < end-1 {
			val, vj, err := build(t, strs, j)
			if err != nil {
				return nil, 0, err
			}
			arr.Values = append(arr.Values, val)
			j = vj
		}
		if j != end-1 || t[j].Tag() != tape.TagEndArray {
			return nil, 0, fmt.Errorf("domcheck: array at %d did not close at its skip target", i)
		}
		return arr, end, nil

	case tape.TagString:
		s, j, err := readString(t, strs, i)
		return String(s), j, err

	case tape.TagInt64:
		if i+1 >= len(t) {
			return nil, 0, fmt.Errorf("domcheck: INT64 at %d missing value word", i)
		}
		return Int64(int64(t[i+1].Raw())), i + 2, nil

	case tape.TagUint64:
		if i+1 >= len(t) {
			return nil, 0, fmt.Errorf("domcheck: UINT64 at %d missing value word", i)
		}
		return Uint64(t[i+1].Raw()), i + 2, nil

	case tape.TagDouble:
		if i+1 >= len(t) {
			return nil, 0, fmt.Errorf("domcheck: DOUBLE at %d missing value word", i)
		}
		return Double(math.Float64frombits(t[i+1].Raw())), i + 2, nil

	case tape.TagTrue:
		return Bool(true), i + 1, nil
	case tape.TagFalse:
		return Bool(false), i + 1, nil
	case tape.TagNull:
		return Null{}, i + 1, nil

	default:
		return nil, 0, fmt.Errorf("domcheck: unexpected tag %v at %d", w.Tag(), i)
	}
}

// skipTarget extracts the low 32 bits of a container word's payload, the
// tape index one past its matching END word (see countPayload in the
// parent package).
func skipTarget(w tape.Word) int { return int(w.Payload() & 0xffffffff) }

func readString(t []tape.Word, strs []byte, i int) (string, int, error) {
	off := t[i].Payload()
	if off+4 > uint64(len(strs)) {
		return "", 0, fmt.Errorf("domcheck: string header at tape index %d out of range", i)
	}
	n := uint64(binary.LittleEndian.Uint32(strs[off:]))
	start := off + 4
	if start+n > uint64(len(strs)) {
		return "", 0, fmt.Errorf("domcheck: string body at tape index %d out of range", i)
	}
	return string(strs[start : start+n]), i + 1, nil
}
