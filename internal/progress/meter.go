// Package progress reports scan progress on stderr while files are read.
package progress

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Snapshot is the progress state at one point of a scan. The number of files
// is not known in advance, so only counts and throughput are reported.
type Snapshot struct {
	Files     int           `json:"files"`
	Findings  int           `json:"findings"`
	Skipped   int           `json:"skipped"`
	RateEMA   float64       `json:"rate_per_sec"`
	Elapsed   time.Duration `json:"elapsed"`
	StartedAt time.Time     `json:"started_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

const (
	defaultAlpha    = 0.2
	defaultInterval = 250 * time.Millisecond
)

// Meter accumulates per-file progress and throttles notifications.
type Meter struct {
	mu         sync.Mutex
	alpha      float64
	notify     *rate.Sometimes
	start      time.Time
	lastUpdate time.Time
	files      int
	findings   int
	skipped    int
	ema        float64
}

// NewMeter returns a meter that asks for a notification on the first file and
// then at most once per interval. interval <= 0 selects the default of 250ms.
func NewMeter(interval time.Duration) *Meter {
	if interval <= 0 {
		interval = defaultInterval
	}
	now := time.Now()
	return &Meter{
		alpha:      defaultAlpha,
		notify:     &rate.Sometimes{Interval: interval},
		start:      now,
		lastUpdate: now,
	}
}

// Advance records one processed file. The second result reports whether the
// caller should publish the snapshot.
func (m *Meter) Advance(findings int, skipped bool) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	if now.Before(m.lastUpdate) {
		now = m.lastUpdate
	}
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt <= 0 {
		dt = 1e-6
	}
	m.files++
	if findings > 0 {
		m.findings += findings
	}
	if skipped {
		m.skipped++
	}
	instant := 1 / dt
	if math.IsNaN(instant) || math.IsInf(instant, 0) {
		instant = 0
	}
	if m.ema == 0 {
		m.ema = instant
	} else {
		m.ema = m.alpha*instant + (1-m.alpha)*m.ema
	}
	m.lastUpdate = now
	notify := false
	m.notify.Do(func() { notify = true })
	return m.snapshotLocked(now), notify
}

// Snapshot returns the current totals without counting a file.
func (m *Meter) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked(time.Now())
}

func (m *Meter) snapshotLocked(now time.Time) Snapshot {
	return Snapshot{
		Files:     m.files,
		Findings:  m.findings,
		Skipped:   m.skipped,
		RateEMA:   m.ema,
		Elapsed:   now.Sub(m.start),
		StartedAt: m.start,
		UpdatedAt: now,
	}
}
