package subtitle

import (
	"sort"
	"strings"
)

// Merge collapses overlapping entries into non-overlapping caption windows.
// Input is stably sorted by start frame first, so callers may pass entries
// in document order. Touching ranges (next start == current stop) count as
// overlapping. Each merged window keeps the earliest start, the latest
// stop, every contributing speaker joined with "/" (deduplicated,
// first-seen order), and one text line per contributing entry so the
// splitter can still treat each speaker's line as its own unit.
func Merge(entries []Entry) []Entry {
	if len(entries) == 0 {
		return nil
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var merged []Entry
	window := sorted[0]
	speakers := []string{window.Speaker}

	for _, e := range sorted[1:] {
		if e.Start <= window.Stop {
			if !containsSpeaker(speakers, e.Speaker) {
				speakers = append(speakers, e.Speaker)
			}
			window.Text = window.Text + "\n" + e.Text
			if e.Stop > window.Stop {
				window.Stop = e.Stop
			}
			continue
		}

		window.Speaker = joinSpeakers(speakers)
		merged = append(merged, window)
		window = e
		speakers = []string{e.Speaker}
	}

	window.Speaker = joinSpeakers(speakers)
	merged = append(merged, window)

	return merged
}

func containsSpeaker(speakers []string, name string) bool {
	for _, s := range speakers {
		if s == name {
			return true
		}
	}
	return false
}

func joinSpeakers(speakers []string) string {
	named := make([]string, 0, len(speakers))
	for _, s := range speakers {
		if s != "" {
			named = append(named, s)
		}
	}
	return strings.Join(named, "/")
}
