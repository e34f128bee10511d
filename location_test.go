// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tape

import "testing"

func TestLineColAt(t *testing.T) {
	input := []byte("{\n  \"a\": 1,\n  \"b\": tru\n}")
	tests := []struct {
		offset int
		want   LineCol
	}{
		{0, LineCol{Line: 1, Column: 0}},
		{1, LineCol{Line: 1, Column: 1}},
		{2, LineCol{Line: 2, Column: 0}},
		{len(input), LineCol{Line: 4, Column: 1}},
		{len(input) + 100, LineCol{Line: 4, Column: 1}}, // clamps past the end
	}
	for _, test := range tests {
		if got := LineColAt(input, test.offset); got != test.want {
			t.Errorf("LineColAt(input, %d) = %+v, want %+v", test.offset, got, test.want)
		}
	}
}

func TestErrorLocation(t *testing.T) {
	input := []byte("{\n  \"a\": tru")
	e := &Error{Code: TAtomError, Offset: 9}
	got := e.Location(input)
	want := LineCol{Line: 2, Column: 7}
	if got != want {
		t.Errorf("Location() = %+v, want %+v", got, want)
	}

	noOffset := &Error{Code: Empty, Offset: -1}
	if got := noOffset.Location(input); got != (LineCol{}) {
		t.Errorf("Location() with no offset = %+v, want zero value", got)
	}
}
