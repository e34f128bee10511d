// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tape_test

import (
	"errors"
	"testing"

	tape "github.com/creachadair/jsontape"
	"github.com/creachadair/jsontape/internal/domcheck"
	"github.com/creachadair/jsontape/internal/structural"
)

func parse(t *testing.T, input string, opts tape.Options) (*tape.Buffers, error) {
	t.Helper()
	in := []byte(input)
	indices := structural.Find(in)
	buf := tape.NewBuffers(len(in))
	_, err := tape.Parse(in, indices, 0, buf, opts)
	return buf, err
}

// Scenario 1: "{}" produces ROOT, START_OBJECT->3, END_OBJECT->1, ROOT with
// a count of 0 at the object.
func TestScenarioEmptyObject(t *testing.T) {
	buf, err := parse(t, `{}`, tape.Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(buf.Tape) != 4 {
		t.Fatalf("tape length = %d, want 4", len(buf.Tape))
	}
	if buf.Tape[0].Tag() != tape.TagRoot || buf.Tape[3].Tag() != tape.TagRoot {
		t.Errorf("tape does not begin and end with ROOT: %v", buf.Tape)
	}
	if buf.Tape[1].Tag() != tape.TagStartObject || buf.Tape[1].Payload() != 3 {
		t.Errorf("START_OBJECT = %v, want tag=START_OBJECT payload=3", buf.Tape[1])
	}
	if buf.Tape[2].Tag() != tape.TagEndObject || buf.Tape[2].Payload() != 1 {
		t.Errorf("END_OBJECT = %v, want tag=END_OBJECT payload=1", buf.Tape[2])
	}
}

// Scenario 2: "[1,2,3]" has a count of 3 at the array with three INT64
// pairs between its start and end.
func TestScenarioArrayOfInts(t *testing.T) {
	buf, err := parse(t, `[1,2,3]`, tape.Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// ROOT START_ARRAY 1 <int64> 2 <int64> 3 <int64> END_ARRAY ROOT
	if len(buf.Tape) != 10 {
		t.Fatalf("tape length = %d, want 10: %v", len(buf.Tape), buf.Tape)
	}
	count := buf.Tape[1].Payload() >> 32
	if count != 3 {
		t.Errorf("START_ARRAY count = %d, want 3", count)
	}
	for i, want := range []int64{1, 2, 3} {
		wordIdx := 2 + i*2
		if buf.Tape[wordIdx].Tag() != tape.TagInt64 {
			t.Errorf("word %d tag = %v, want INT64", wordIdx, buf.Tape[wordIdx].Tag())
		}
		if got := int64(buf.Tape[wordIdx+1].Raw()); got != want {
			t.Errorf("word %d value = %d, want %d", wordIdx+1, got, want)
		}
	}
}

// Scenario 3: `{"a":true,"b":[null]}` -- outer count=2, inner array
// count=1, TRUE_VALUE and NULL_VALUE tags both present.
func TestScenarioNestedContainer(t *testing.T) {
	buf, err := parse(t, `{"a":true,"b":[null]}`, tape.Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	outerCount := buf.Tape[1].Payload() >> 32
	if outerCount != 2 {
		t.Errorf("outer object count = %d, want 2", outerCount)
	}
	var sawTrue, sawNull, sawInnerArray bool
	for _, w := range buf.Tape {
		switch w.Tag() {
		case tape.TagTrue:
			sawTrue = true
		case tape.TagNull:
			sawNull = true
		case tape.TagStartArray:
			sawInnerArray = true
			if got := w.Payload() >> 32; got != 1 {
				t.Errorf("inner array count = %d, want 1", got)
			}
		}
	}
	if !sawTrue || !sawNull || !sawInnerArray {
		t.Errorf("missing expected tags: true=%v null=%v array=%v", sawTrue, sawNull, sawInnerArray)
	}
}

// Scenario 4: "hello" followed by U+00E9 written as a \u escape -- STRING payload references a buffer region
// containing "hello" followed by the UTF-8 bytes 0xC3 0xA9.
func TestScenarioUnicodeEscape(t *testing.T) {
	buf, err := parse(t, "\"hello\\u00e9\"", tape.Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	str := buf.Tape[1]
	if str.Tag() != tape.TagString {
		t.Fatalf("tape[1] tag = %v, want STRING", str.Tag())
	}
	off := str.Payload()
	want := []byte{'h', 'e', 'l', 'l', 'o', 0xC3, 0xA9}
	got := buf.Strings[off+4 : off+4+uint64(len(want))]
	if string(got) != string(want) {
		t.Errorf("string content = %v, want %v", got, want)
	}
	if buf.Strings[off+4+uint64(len(want))] != 0 {
		t.Error("string is not NUL-terminated in the buffer")
	}
}

// Scenario 5: 9e999 must be NUMBER_ERROR, never +Inf.
func TestScenarioNumberOverflow(t *testing.T) {
	_, err := parse(t, `9e999`, tape.Options{})
	var perr *tape.Error
	if !errors.As(err, &perr) || perr.Code != tape.NumberError {
		t.Fatalf("Parse(9e999) err = %v, want NumberError", err)
	}
}

// Scenario 6: 513-deep nesting with max_depth=512 must be DEPTH_ERROR.
func TestScenarioDepthExceeded(t *testing.T) {
	const depth = 513
	input := make([]byte, 0, depth*2)
	for i := 0; i < depth; i++ {
		input = append(input, '[')
	}
	for i := 0; i < depth; i++ {
		input = append(input, ']')
	}
	_, err := parse(t, string(input), tape.Options{MaxDepth: 512})
	var perr *tape.Error
	if !errors.As(err, &perr) || perr.Code != tape.DepthError {
		t.Fatalf("Parse(513-deep) err = %v, want DepthError", err)
	}
}

func TestNegativeCases(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want tape.ErrorCode
	}{
		{"missing value after colon", `{"a":}`, tape.TapeError},
		{"unterminated string", `"abc`, tape.StringError},
		{"misspelled true", `truu`, tape.TAtomError},
		{"trailing comma in array", `[1,]`, tape.TapeError},
		{"unclosed object", `{`, tape.TapeError},
		{"unclosed object after value", `{"a":1`, tape.TapeError},
		{"unclosed nested array", `[[]`, tape.TapeError},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := parse(t, test.in, tape.Options{})
			var perr *tape.Error
			if !errors.As(err, &perr) || perr.Code != test.want {
				t.Fatalf("Parse(%q) err = %v, want %v", test.in, err, test.want)
			}
		})
	}
}

// A digit string too wide for even uint64 still classifies as DOUBLE rather
// than failing, since it is a syntactically valid JSON number.
func TestScenarioIntegerOverflowsToDouble(t *testing.T) {
	buf, err := parse(t, `123456789012345678901234567890`, tape.Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if buf.Tape[1].Tag() != tape.TagDouble {
		t.Fatalf("tape[1] tag = %v, want DOUBLE", buf.Tape[1].Tag())
	}
}

func TestRoundTripViaDomcheck(t *testing.T) {
	buf, err := parse(t, `{"a":true,"b":[1,2,-3.5],"c":null,"d":"x\ty"}`, tape.Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	v, err := domcheck.Build(buf)
	if err != nil {
		t.Fatalf("domcheck.Build failed: %v", err)
	}
	obj, ok := v.(domcheck.Object)
	if !ok {
		t.Fatalf("root value is %T, want domcheck.Object", v)
	}
	if len(obj.Members) != 4 {
		t.Fatalf("member count = %d, want 4", len(obj.Members))
	}
	if obj.Members[0].Key != "a" || obj.Members[0].Value != domcheck.Bool(true) {
		t.Errorf("member 0 = %+v, want a=true", obj.Members[0])
	}
	arr, ok := obj.Members[1].Value.(domcheck.Array)
	if !ok || len(arr.Values) != 3 {
		t.Fatalf("member 1 value = %+v, want a 3-element array", obj.Members[1].Value)
	}
}

func TestIdempotence(t *testing.T) {
	in := []byte(`{"a":[1,2,3],"b":"hello"}`)
	indices := structural.Find(in)

	buf1 := tape.NewBuffers(len(in))
	if _, err := tape.Parse(in, indices, 0, buf1, tape.Options{}); err != nil {
		t.Fatalf("first Parse failed: %v", err)
	}
	buf2 := tape.NewBuffers(len(in))
	if _, err := tape.Parse(in, indices, 0, buf2, tape.Options{}); err != nil {
		t.Fatalf("second Parse failed: %v", err)
	}
	if len(buf1.Tape) != len(buf2.Tape) {
		t.Fatalf("tape lengths differ: %d vs %d", len(buf1.Tape), len(buf2.Tape))
	}
	for i := range buf1.Tape {
		if buf1.Tape[i] != buf2.Tape[i] {
			t.Errorf("tape[%d] differs: %v vs %v", i, buf1.Tape[i], buf2.Tape[i])
		}
	}
	if string(buf1.Strings) != string(buf2.Strings) {
		t.Errorf("string buffers differ")
	}
}
