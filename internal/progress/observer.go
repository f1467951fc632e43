package progress

import (
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Observer receives progress snapshots. Done is called once when the scan ends.
type Observer interface {
	Publish(Snapshot)
	Done(Snapshot)
}

// ShouldShowProgress decides whether to render progress. --no-progress wins,
// --progress forces it, otherwise both stdout and stderr must be terminals.
func ShouldShowProgress(force, no bool) bool {
	if no {
		return false
	}
	if force {
		return true
	}
	return isTTY(os.Stdout) && isTTY(os.Stderr)
}

type ttyObserver struct {
	w  io.Writer
	mu sync.Mutex
}

type lineObserver struct {
	w  io.Writer
	mu sync.Mutex
}

func NewTTYObserver(w io.Writer) Observer {
	if w == nil {
		w = os.Stderr
	}
	return &ttyObserver{w: w}
}

func NewLineObserver(w io.Writer) Observer {
	if w == nil {
		w = os.Stderr
	}
	return &lineObserver{w: w}
}

func NewAutoObserver(w io.Writer) Observer {
	if w == nil {
		w = os.Stderr
	}
	if f, ok := w.(*os.File); ok && isTTY(f) {
		return NewTTYObserver(w)
	}
	return NewLineObserver(w)
}

func (o *ttyObserver) Publish(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprintf(o.w, "\r\033[K%s", renderTTY(s))
}

func (o *ttyObserver) Done(Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprint(o.w, "\r\033[K")
}

func (o *lineObserver) Publish(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprintln(o.w, renderLine(s))
}

func (o *lineObserver) Done(Snapshot) {}

func renderTTY(s Snapshot) string {
	rate := "--/s"
	if s.RateEMA > 0 {
		rate = fmt.Sprintf("%.1f/s", s.RateEMA)
	}
	line := fmt.Sprintf("[progress] %d files, %d findings %s %s", s.Files, s.Findings, rate, formatElapsed(s.Elapsed))
	if s.Skipped > 0 {
		line += fmt.Sprintf(" (%d skipped)", s.Skipped)
	}
	return line
}

func renderLine(s Snapshot) string {
	return fmt.Sprintf("progress files=%d findings=%d skipped=%d rate=%.3f elapsed=%g updated_at=%s",
		s.Files, s.Findings, s.Skipped, s.RateEMA, s.Elapsed.Seconds(), s.UpdatedAt.Format(time.RFC3339Nano))
}

func formatElapsed(d time.Duration) string {
	totalSeconds := int(math.Round(d.Seconds()))
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	if hours > 99 {
		hours = 99
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

func isTTY(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
