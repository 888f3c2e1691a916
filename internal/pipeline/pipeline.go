// Package pipeline wires the conversion stages together: parse, merge,
// split, offset, replace, render. One Convert call is one conversion run;
// runs share no state and may proceed concurrently with different options.
package pipeline

import (
	"errors"
	"fmt"
	"os"

	"github.com/mgpai22/gosub/internal/logging"
	"github.com/mgpai22/gosub/internal/movie"
	"github.com/mgpai22/gosub/internal/subtitle"
)

// ErrMissingFile reports an input path that does not resolve.
var ErrMissingFile = errors.New("input file not found")

// Options is the configuration surface consumed by one conversion run.
type Options struct {
	FPS             int
	MaxWordsPerLine int
	WordsPerSecond  float64
	MinDuration     float64 // seconds
	Offset          float64 // frames, signed
	Replacements    subtitle.ReplacementMap
	Logger          *logging.Logger
}

func DefaultOptions() Options {
	return Options{
		FPS:             subtitle.DefaultFPS,
		MaxWordsPerLine: subtitle.DefaultMaxWordsPerLine,
		WordsPerSecond:  subtitle.DefaultWordsPerSecond,
		MinDuration:     subtitle.DefaultMinDuration,
	}
}

func (o Options) Validate() error {
	if o.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", o.FPS)
	}
	if o.MaxWordsPerLine <= 0 {
		return fmt.Errorf("max words per line must be positive, got %d", o.MaxWordsPerLine)
	}
	if o.WordsPerSecond <= 0 {
		return fmt.Errorf("words per second must be positive, got %g", o.WordsPerSecond)
	}
	if o.MinDuration < 0 {
		return fmt.Errorf("min duration must not be negative, got %g", o.MinDuration)
	}
	return nil
}

// Stats is the read-only statistics view of a conversion run.
type Stats struct {
	Parsed         int // speech entries surviving parse validation
	Skipped        int // speech entries dropped during parsing
	Merged         int // caption windows after overlap merging
	Split          int // final captions after splitting
	Clamped        int // entries clamped to frame zero by the offset
	ZeroDropped    int // zero-duration captions dropped at render time
	Speakers       map[string]int
	Replaced       map[string]int
	TotalFrames    float64 // summed caption duration
	DocDuration    float64 // declared root duration attribute
	HasDocDuration bool
}

type Result struct {
	Output  string           // rendered SRT document
	Entries []subtitle.Entry // final caption sequence behind Output
	Stats   Stats
}

// ConvertFile reads a transcript from disk and converts it.
func ConvertFile(path string, opts Options) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	return Convert(content, opts)
}

// Convert runs the full pipeline over raw transcript content and returns
// the rendered SRT document plus run statistics. Fatal failures (malformed
// document, invalid options) return an error; per-entry problems only show
// up in the statistics.
func Convert(content []byte, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	parsed, err := movie.NewParser(logger).ParseBytes(content)
	if err != nil {
		return nil, err
	}

	stats := Stats{
		Parsed:         len(parsed.Entries),
		Skipped:        parsed.Skipped,
		DocDuration:    parsed.Duration,
		HasDocDuration: parsed.HasDuration,
		Speakers:       make(map[string]int),
		Replaced:       make(map[string]int),
	}

	merged := subtitle.Merge(parsed.Entries)
	stats.Merged = len(merged)

	splitter := &subtitle.Splitter{
		MaxWordsPerLine: opts.MaxWordsPerLine,
		WordsPerSecond:  opts.WordsPerSecond,
		MinDuration:     opts.MinDuration,
		FPS:             opts.FPS,
	}
	entries := splitter.SplitAll(merged)
	stats.Split = len(entries)

	if opts.Offset != 0 {
		var clamped int
		entries, clamped = subtitle.ApplyOffset(entries, opts.Offset)
		stats.Clamped = clamped
		logger.Infow("applied frame offset",
			"offset", opts.Offset,
			"entries", len(entries),
		)
		if clamped > 0 {
			logger.Warnw("clamped entries to frame zero", "count", clamped)
		}
	}

	if len(opts.Replacements) > 0 {
		entries, stats.Replaced = subtitle.ReplaceSpeakers(entries, opts.Replacements)
		for old, n := range stats.Replaced {
			logger.Infow("replaced speaker",
				"old", old,
				"new", opts.Replacements[old],
				"count", n,
			)
		}
	}

	// zero-duration spans are legal mid-pipeline but never in the output
	final := entries[:0:0]
	for _, e := range entries {
		if e.Duration() <= 0 {
			stats.ZeroDropped++
			logger.Warnw("dropping zero-duration caption", "start", e.Start)
			continue
		}
		final = append(final, e)
	}

	for _, e := range final {
		stats.Speakers[e.Speaker]++
		stats.TotalFrames += e.Duration()
	}

	output, err := subtitle.NewSRTWriter(opts.FPS).Render(final)
	if err != nil {
		return nil, fmt.Errorf("render srt: %w", err)
	}

	return &Result{Output: output, Entries: final, Stats: stats}, nil
}
