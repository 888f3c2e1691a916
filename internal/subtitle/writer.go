package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SRTWriter renders caption entries as SubRip text.
type SRTWriter struct {
	FPS int
}

func NewSRTWriter(fps int) *SRTWriter {
	return &SRTWriter{FPS: fps}
}

// Render produces the full SRT document. Entries must already be sorted,
// non-overlapping, and free of negative frames; a negative frame here is an
// upstream bug and surfaces as ErrNegativeFrames.
func (w *SRTWriter) Render(entries []Entry) (string, error) {
	var sb strings.Builder

	for i, entry := range entries {
		start, err := FormatTime(entry.Start, w.FPS)
		if err != nil {
			return "", fmt.Errorf("entry %d: %w", i+1, err)
		}
		stop, err := FormatTime(entry.Stop, w.FPS)
		if err != nil {
			return "", fmt.Errorf("entry %d: %w", i+1, err)
		}

		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n", start, stop))

		// text, speaker-prefixed when a speaker is known
		if entry.Speaker != "" {
			sb.WriteString(fmt.Sprintf("%s: %s", entry.Speaker, entry.Text))
		} else {
			sb.WriteString(entry.Text)
		}
		sb.WriteString("\n\n")
	}

	return sb.String(), nil
}

// Write renders the entries and persists them, creating parent directories
// as needed.
func (w *SRTWriter) Write(entries []Entry, path string) error {
	content, err := w.Render(entries)
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
