package subtitle

import (
	"strings"
)

// Default processing constants; callers override via Splitter fields.
const (
	DefaultFPS             = 24
	DefaultMaxWordsPerLine = 10
	DefaultWordsPerSecond  = 2.5
	DefaultMinDuration     = 0.5 // seconds
)

// Splitter divides long caption windows into readable entries bounded by a
// word count, redistributing the window's frame duration across the pieces.
type Splitter struct {
	MaxWordsPerLine int
	WordsPerSecond  float64
	MinDuration     float64 // seconds
	FPS             int
}

func NewSplitter() *Splitter {
	return &Splitter{
		MaxWordsPerLine: DefaultMaxWordsPerLine,
		WordsPerSecond:  DefaultWordsPerSecond,
		MinDuration:     DefaultMinDuration,
		FPS:             DefaultFPS,
	}
}

// SplitAll splits every entry in order, keeping the sequence sorted and
// non-overlapping as long as the input was.
func (s *Splitter) SplitAll(entries []Entry) []Entry {
	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		result = append(result, s.Split(e)...)
	}
	return result
}

// Split divides one caption window into one or more entries. The pieces
// cover the window exactly: the first starts at the window start, the last
// stops at the window stop, and each piece starts where the previous one
// stopped.
func (s *Splitter) Split(entry Entry) []Entry {
	segments := s.segment(entry.Text)
	if len(segments) <= 1 {
		return []Entry{entry}
	}

	durations := s.allocate(segments, entry.Duration())

	result := make([]Entry, 0, len(segments))
	start := entry.Start
	for i, seg := range segments {
		stop := start + durations[i]
		result = append(result, Entry{
			Start:   start,
			Stop:    stop,
			Text:    seg,
			Speaker: entry.Speaker,
		})
		start = stop
	}

	// absorb rounding residue so the window boundary never drifts
	result[len(result)-1].Stop = entry.Stop

	return result
}

var sentenceEndings = []string{".", "!", "?", ":"}

func endsSentence(word string) bool {
	for _, ending := range sentenceEndings {
		if strings.HasSuffix(word, ending) {
			return true
		}
	}
	return false
}

// segment breaks combined caption text into display lines. Newlines from
// the merger are hard boundaries; within a paragraph, lines break after
// terminal punctuation or when the word limit is reached, never mid-word.
func (s *Splitter) segment(text string) []string {
	var segments []string

	for _, paragraph := range strings.Split(text, "\n") {
		var current []string
		for _, word := range strings.Fields(paragraph) {
			if len(current) > 0 &&
				(endsSentence(current[len(current)-1]) || len(current) >= s.MaxWordsPerLine) {
				segments = append(segments, strings.Join(current, " "))
				current = nil
			}
			current = append(current, word)
		}
		if len(current) > 0 {
			segments = append(segments, strings.Join(current, " "))
		}
	}

	return segments
}

// allocate computes per-segment durations in frames. Ideal durations are
// proportional to word count at the speaking rate, rescaled so they sum to
// exactly total. Lines below the minimum duration are raised to it and the
// deficit is deducted from the remaining lines proportionally to their
// headroom; when total cannot fit every line at the minimum, the minimum is
// relaxed and the window is split equally instead.
func (s *Splitter) allocate(segments []string, total float64) []float64 {
	n := len(segments)
	durations := make([]float64, n)

	idealTotal := 0.0
	for i, seg := range segments {
		words := float64(len(strings.Fields(seg)))
		durations[i] = words / s.WordsPerSecond * float64(s.FPS)
		idealTotal += durations[i]
	}

	if idealTotal <= 0 {
		equalSplit(durations, total)
		return durations
	}

	scale := total / idealTotal
	for i := range durations {
		durations[i] *= scale
	}

	minFrames := s.MinDuration * float64(s.FPS)
	if total < float64(n)*minFrames {
		// degraded but valid: not enough time for every line at the minimum
		equalSplit(durations, total)
		return durations
	}

	deficit := 0.0
	headroom := 0.0
	for _, d := range durations {
		if d < minFrames {
			deficit += minFrames - d
		} else {
			headroom += d - minFrames
		}
	}
	if deficit > 0 && headroom > 0 {
		for i, d := range durations {
			if d < minFrames {
				durations[i] = minFrames
			} else {
				durations[i] = d - deficit*(d-minFrames)/headroom
			}
		}
	}

	return durations
}

func equalSplit(durations []float64, total float64) {
	share := total / float64(len(durations))
	for i := range durations {
		durations[i] = share
	}
}
