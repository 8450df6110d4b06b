package handlers

import "testing"

func TestEvalRange(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		length  int64
		verdict rangeVerdict
		start   int64
		end     int64
	}{
		{name: "absent", header: "", length: 10, verdict: rangeFull},
		{name: "closed", header: "bytes=2-5", length: 10, verdict: rangePartial, start: 2, end: 5},
		{name: "single byte", header: "bytes=0-0", length: 10, verdict: rangePartial, start: 0, end: 0},
		{name: "open", header: "bytes=3-", length: 10, verdict: rangePartial, start: 3, end: 9},
		{name: "suffix", header: "bytes=-4", length: 10, verdict: rangePartial, start: 6, end: 9},
		{name: "suffix larger than body", header: "bytes=-100", length: 10, verdict: rangePartial, start: 0, end: 9},
		{name: "end clamped", header: "bytes=8-100", length: 10, verdict: rangePartial, start: 8, end: 9},
		{name: "start past end of body", header: "bytes=100-", length: 10, verdict: rangeUnsatisfiable},
		{name: "start at length", header: "bytes=10-12", length: 10, verdict: rangeUnsatisfiable},
		{name: "inverted", header: "bytes=5-2", length: 10, verdict: rangeUnsatisfiable},
		{name: "zero suffix", header: "bytes=-0", length: 10, verdict: rangeUnsatisfiable},
		{name: "empty body closed", header: "bytes=0-0", length: 0, verdict: rangeUnsatisfiable},
		{name: "empty body suffix", header: "bytes=-1", length: 0, verdict: rangeUnsatisfiable},
		{name: "wrong unit", header: "items=0-1", length: 10, verdict: rangeFull},
		{name: "multiple ranges", header: "bytes=0-1,3-4", length: 10, verdict: rangeFull},
		{name: "non digit", header: "bytes=a-b", length: 10, verdict: rangeFull},
		{name: "signed start", header: "bytes=+2-5", length: 10, verdict: rangeFull},
		{name: "bare dash", header: "bytes=-", length: 10, verdict: rangeFull},
		{name: "no dash", header: "bytes=5", length: 10, verdict: rangeFull},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			span, verdict := evalRange(tc.header, tc.length)
			if verdict != tc.verdict {
				t.Fatalf("verdict = %d, want %d", verdict, tc.verdict)
			}
			if verdict != rangePartial {
				return
			}
			if span.start != tc.start || span.end != tc.end {
				t.Fatalf("span = [%d,%d], want [%d,%d]", span.start, span.end, tc.start, tc.end)
			}
		})
	}
}

func TestByteRangeLength(t *testing.T) {
	r := byteRange{start: 2, end: 5}
	if r.length() != 4 {
		t.Fatalf("length = %d", r.length())
	}
}
