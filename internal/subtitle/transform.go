package subtitle

// ApplyOffset returns a new sequence with every start/stop shifted by the
// given signed frame offset. Entries that would start before frame zero are
// clamped to zero instead of going negative; the second return value is the
// number of entries that were clamped.
func ApplyOffset(entries []Entry, frames float64) ([]Entry, int) {
	shifted := make([]Entry, len(entries))
	clamped := 0

	for i, e := range entries {
		e.Start += frames
		e.Stop += frames
		if e.Start < 0 || e.Stop < 0 {
			clamped++
			if e.Start < 0 {
				e.Start = 0
			}
			if e.Stop < 0 {
				e.Stop = 0
			}
		}
		shifted[i] = e
	}

	return shifted, clamped
}

// ReplaceSpeakers returns a new sequence with speaker names renamed per the
// mapping. Matching is exact and case-sensitive; unmatched speakers pass
// through unchanged. The returned map counts replacements per old name.
func ReplaceSpeakers(entries []Entry, mapping ReplacementMap) ([]Entry, map[string]int) {
	replaced := make([]Entry, len(entries))
	counts := make(map[string]int)

	for i, e := range entries {
		if newName, ok := mapping[e.Speaker]; ok {
			counts[e.Speaker]++
			e.Speaker = newName
		}
		replaced[i] = e
	}

	return replaced, counts
}
