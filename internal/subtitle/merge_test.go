package subtitle

import (
	"testing"
)

func TestMergeOverlapping(t *testing.T) {
	entries := []Entry{
		{Start: 0, Stop: 48, Text: "Hi", Speaker: "A"},
		{Start: 24, Stop: 72, Text: "Hey", Speaker: "B"},
	}

	merged := Merge(entries)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged window, got %d", len(merged))
	}

	window := merged[0]
	if window.Start != 0 || window.Stop != 72 {
		t.Errorf("expected window [0, 72], got [%g, %g]", window.Start, window.Stop)
	}
	if window.Speaker != "A/B" {
		t.Errorf("expected speaker A/B, got %q", window.Speaker)
	}
	if window.Text != "Hi\nHey" {
		t.Errorf("expected per-speaker lines preserved, got %q", window.Text)
	}
}

func TestMergeTouchingCountsAsOverlap(t *testing.T) {
	entries := []Entry{
		{Start: 0, Stop: 24, Text: "one", Speaker: "A"},
		{Start: 24, Stop: 48, Text: "two", Speaker: "B"},
	}

	merged := Merge(entries)
	if len(merged) != 1 {
		t.Fatalf("expected touching ranges to merge, got %d windows", len(merged))
	}
	if merged[0].Stop != 48 {
		t.Errorf("expected stop 48, got %g", merged[0].Stop)
	}
}

func TestMergeDisjointPassThrough(t *testing.T) {
	entries := []Entry{
		{Start: 0, Stop: 20, Text: "one", Speaker: "A"},
		{Start: 30, Stop: 50, Text: "two", Speaker: "B"},
		{Start: 60, Stop: 80, Text: "three", Speaker: "A"},
	}

	merged := Merge(entries)
	if len(merged) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(merged))
	}
	for i, e := range merged {
		if e != entries[i] {
			t.Errorf("window %d changed: got %+v, want %+v", i, e, entries[i])
		}
	}
}

func TestMergeSortsUnsortedInput(t *testing.T) {
	entries := []Entry{
		{Start: 100, Stop: 120, Text: "late", Speaker: "B"},
		{Start: 0, Stop: 10, Text: "early", Speaker: "A"},
	}

	merged := Merge(entries)
	if len(merged) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(merged))
	}
	if merged[0].Text != "early" || merged[1].Text != "late" {
		t.Errorf("expected sorted output, got %q then %q", merged[0].Text, merged[1].Text)
	}
}

func TestMergeSameSpeakerNotDuplicated(t *testing.T) {
	entries := []Entry{
		{Start: 0, Stop: 30, Text: "first", Speaker: "A"},
		{Start: 10, Stop: 40, Text: "second", Speaker: "A"},
		{Start: 20, Stop: 50, Text: "third", Speaker: "B"},
	}

	merged := Merge(entries)
	if len(merged) != 1 {
		t.Fatalf("expected 1 window, got %d", len(merged))
	}
	if merged[0].Speaker != "A/B" {
		t.Errorf("expected deduplicated A/B, got %q", merged[0].Speaker)
	}
	if merged[0].Text != "first\nsecond\nthird" {
		t.Errorf("unexpected combined text %q", merged[0].Text)
	}
}

func TestMergeChainExtendsWindow(t *testing.T) {
	// each entry overlaps only its neighbor; the window must keep extending
	entries := []Entry{
		{Start: 0, Stop: 30, Text: "a", Speaker: "A"},
		{Start: 20, Stop: 60, Text: "b", Speaker: "B"},
		{Start: 50, Stop: 90, Text: "c", Speaker: "C"},
	}

	merged := Merge(entries)
	if len(merged) != 1 {
		t.Fatalf("expected chained overlap to produce 1 window, got %d", len(merged))
	}
	if merged[0].Start != 0 || merged[0].Stop != 90 {
		t.Errorf("expected window [0, 90], got [%g, %g]", merged[0].Start, merged[0].Stop)
	}
}

func TestMergeContainedEntryKeepsMaxStop(t *testing.T) {
	entries := []Entry{
		{Start: 0, Stop: 100, Text: "long", Speaker: "A"},
		{Start: 10, Stop: 20, Text: "short", Speaker: "B"},
	}

	merged := Merge(entries)
	if len(merged) != 1 {
		t.Fatalf("expected 1 window, got %d", len(merged))
	}
	if merged[0].Stop != 100 {
		t.Errorf("expected stop to stay at 100, got %g", merged[0].Stop)
	}
}

func TestMergeOutputNonOverlapping(t *testing.T) {
	entries := []Entry{
		{Start: 0, Stop: 25, Text: "a", Speaker: "A"},
		{Start: 10, Stop: 30, Text: "b", Speaker: "B"},
		{Start: 40, Stop: 55, Text: "c", Speaker: "A"},
		{Start: 50, Stop: 70, Text: "d", Speaker: "C"},
		{Start: 80, Stop: 90, Text: "e", Speaker: "B"},
	}

	merged := Merge(entries)
	for i := 1; i < len(merged); i++ {
		if merged[i-1].Stop > merged[i].Start {
			t.Errorf("windows %d and %d overlap: [%g, %g] then [%g, %g]",
				i-1, i,
				merged[i-1].Start, merged[i-1].Stop,
				merged[i].Start, merged[i].Stop,
			)
		}
	}
}

func TestMergeEmptyInput(t *testing.T) {
	if got := Merge(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}
