package subtitle

// represents single timed caption entry; times are frame counts
type Entry struct {
	Start   float64
	Stop    float64
	Text    string
	Speaker string
}

// Duration returns the entry's span in frames.
func (e Entry) Duration() float64 {
	return e.Stop - e.Start
}

// maps old speaker names to new ones; exact, case-sensitive match
type ReplacementMap map[string]string
