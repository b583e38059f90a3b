// internal/ui/spinner.go
package ui

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Spinner shows indeterminate progress on stderr while a job is polled.
// On non-terminal output (pipes, CI) every method is a no-op so logs
// stay clean.
type Spinner struct {
	bar *progressbar.ProgressBar
}

// NewSpinner returns a spinner with the given description. The spinner
// renders only when stderr is a terminal.
func NewSpinner(description string) *Spinner {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return &Spinner{}
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	return &Spinner{bar: bar}
}

// Tick advances the spinner animation and updates the status suffix.
func (s *Spinner) Tick(status string) {
	if s.bar == nil {
		return
	}
	if status != "" {
		s.bar.Describe(status)
	}
	_ = s.bar.Add(1)
}

// Stop clears the spinner from the terminal.
func (s *Spinner) Stop() {
	if s.bar == nil {
		return
	}
	_ = s.bar.Finish()
}
