package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps estimates so a stalled strategy does not print absurd values.
const maxETA = 24 * time.Hour

// ProgressState holds the completion fraction of every concurrently running
// strategy and averages them into one value.
type ProgressState struct {
	progresses []float64
	numRunners int
}

// NewProgressState creates a state tracking numRunners strategies.
func NewProgressState(numRunners int) *ProgressState {
	if numRunners < 0 {
		numRunners = 0
	}
	return &ProgressState{
		progresses: make([]float64, numRunners),
		numRunners: numRunners,
	}
}

// Update records the completion fraction of one strategy. Values are clamped
// to [0, 1] and out-of-range indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= len(ps.progresses) {
		return
	}
	ps.progresses[index] = clamp(value)
}

// CalculateAverage returns the mean completion in [0, 1].
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numRunners == 0 {
		return 0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numRunners)
}

// ProgressWithETA extends ProgressState with a remaining-time estimate derived
// from the observed progress rate since creation.
type ProgressWithETA struct {
	*ProgressState
	mu           sync.Mutex
	numRunners   int
	startTime    time.Time
	progressRate float64 // fraction per second
}

// NewProgressWithETA creates a tracker for numRunners strategies whose clock
// starts now.
func NewProgressWithETA(numRunners int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numRunners),
		numRunners:    numRunners,
		startTime:     time.Now(),
	}
}

// UpdateWithETA records a new fraction for one strategy and returns the
// average completion together with the estimated remaining time.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Update(index, value)
	avg := p.CalculateAverage()
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 && avg > 0 {
		p.progressRate = avg / elapsed
	}
	return avg, p.etaLocked(avg)
}

// GetETA returns the current estimate, or 0 when no rate is known yet.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked(p.CalculateAverage())
}

func (p *ProgressWithETA) etaLocked(avg float64) time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := (1 - avg) / p.progressRate
	if remaining > maxETA.Seconds() {
		return maxETA
	}
	return time.Duration(remaining * float64(time.Second))
}

// FormatETA renders an estimate compactly ("45s", "2m30s", "1h15m").
// Non-positive values mean the estimate is not known yet.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}
	eta = eta.Round(time.Second)
	h := int(eta.Hours())
	m := int(eta.Minutes()) % 60
	s := int(eta.Seconds()) % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// ProgressBar renders a bar of the given width filled to progress.
func ProgressBar(progress float64, length int) string {
	progress = clamp(progress)
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatProgressBarWithETA renders "[bar]  42.00% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %6.2f%% ETA: %s", ProgressBar(progress, width), clamp(progress)*100, FormatETA(eta))
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
