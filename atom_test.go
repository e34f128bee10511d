// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tape

import "testing"

func TestValidAtoms(t *testing.T) {
	tests := []struct {
		name string
		fn   func([]byte) bool
		in   string
		want bool
	}{
		{"true exact", validTrue, "true", true},
		{"true with terminator", validTrue, "true,rest", true},
		{"true misspelled", validTrue, "truu", false},
		{"true prefix of longer word", validTrue, "trueish", false},
		{"false exact", validFalse, "false", true},
		{"false short", validFalse, "fals", false},
		{"null exact", validNull, "null", true},
		{"null with brace", validNull, "null}", true},
		{"null misspelled", validNull, "nell", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.fn([]byte(test.in)); got != test.want {
				t.Errorf("%s(%q) = %v, want %v", test.name, test.in, got, test.want)
			}
		})
	}
}

func TestValidAtomsShortBuffer(t *testing.T) {
	// Fewer than 8 bytes remain -- exercises the validAtomTail fallback.
	if !validTrue([]byte("true")) {
		t.Error("validTrue(\"true\") at end of buffer should be valid")
	}
	if validTrue([]byte("tru")) {
		t.Error("validTrue(\"tru\") should be invalid (truncated)")
	}
}
