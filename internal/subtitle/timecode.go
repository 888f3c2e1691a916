package subtitle

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrNegativeFrames reports a negative frame count reaching timestamp
// formatting. Offset clamping upstream must prevent this; hitting it is a
// bug in the calling stage, not bad user input.
var ErrNegativeFrames = errors.New("negative frame count")

// FormatTime converts a frame count to an SRT timestamp (HH:MM:SS,mmm).
// Frames may be fractional after time redistribution; milliseconds are
// rounded to nearest with carry into the larger units.
func FormatTime(frames float64, fps int) (string, error) {
	if frames < 0 {
		return "", fmt.Errorf("format time: %w: %g", ErrNegativeFrames, frames)
	}
	if fps <= 0 {
		return "", fmt.Errorf("format time: fps must be positive, got %d", fps)
	}

	totalMillis := int64(math.Round(frames / float64(fps) * 1000))

	millis := totalMillis % 1000
	totalSeconds := totalMillis / 1000
	seconds := totalSeconds % 60
	minutes := (totalSeconds / 60) % 60
	hours := totalSeconds / 3600

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis), nil
}

// FormatDuration renders a frame count as a human-readable duration,
// e.g. "1h 23m 45s". Sub-second remainder is truncated; negative or
// unusable input renders as zero.
func FormatDuration(frames float64, fps int) string {
	if frames < 0 || fps <= 0 {
		return "0s"
	}
	totalSeconds := int64(frames / float64(fps))
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}
