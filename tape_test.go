// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tape

import "testing"

func TestWordRoundTrip(t *testing.T) {
	tests := []struct {
		tag     Tag
		payload uint64
	}{
		{TagRoot, 0},
		{TagStartObject, 12345},
		{TagString, 1<<40 - 1},
		{TagInt64, 0},
	}
	for _, test := range tests {
		w := makeWord(test.tag, test.payload)
		if got := w.Tag(); got != test.tag {
			t.Errorf("makeWord(%v, %d).Tag() = %v, want %v", test.tag, test.payload, got, test.tag)
		}
		if got := w.Payload(); got != test.payload&payloadMask {
			t.Errorf("makeWord(%v, %d).Payload() = %d, want %d", test.tag, test.payload, got, test.payload&payloadMask)
		}
	}
}

func TestCountPayload(t *testing.T) {
	tests := []struct {
		skipTo, count uint32
		want          uint64
	}{
		{3, 0, 3},
		{100, 5, 100 | 5<<32},
		{1, maxCount + 1, 1 | uint64(maxCount)<<32},
	}
	for _, test := range tests {
		if got := countPayload(test.skipTo, test.count); got != test.want {
			t.Errorf("countPayload(%d, %d) = %#x, want %#x", test.skipTo, test.count, got, test.want)
		}
	}
}

func TestWriterSkipPatch(t *testing.T) {
	var tp []Word
	w := writer{tape: &tp}

	idx := w.skip()
	w.append(TagInt64, 0)
	w.appendRaw(42)

	if got := w.next(); got != 3 {
		t.Fatalf("next() = %d, want 3", got)
	}
	w.patch(idx, TagStartArray, countPayload(uint32(w.next()), 1))
	if tp[idx].Tag() != TagStartArray {
		t.Errorf("patched tag = %v, want %v", tp[idx].Tag(), TagStartArray)
	}
	if tp[idx].Payload() != countPayload(3, 1) {
		t.Errorf("patched payload = %d, want %d", tp[idx].Payload(), countPayload(3, 1))
	}
}

func TestTagString(t *testing.T) {
	if got := TagStartObject.String(); got != "START_OBJECT" {
		t.Errorf("TagStartObject.String() = %q, want START_OBJECT", got)
	}
	if got := Tag('?').String(); got != "INVALID" {
		t.Errorf("Tag('?').String() = %q, want INVALID", got)
	}
}
