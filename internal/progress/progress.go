// Package progress defines the progress messages exchanged between batch
// strategies and whatever displays them.
package progress

// Update reports that a strategy finished one more person.
type Update struct {
	// RunnerIndex identifies the strategy within the current comparison run.
	RunnerIndex int
	// Completed is the number of people finished so far.
	Completed int
	// Total is the size of the roster.
	Total int
}

// Fraction returns the completed share in [0, 1]. An empty roster is complete.
func (u Update) Fraction() float64 {
	if u.Total <= 0 {
		return 1
	}
	f := float64(u.Completed) / float64(u.Total)
	if f > 1 {
		return 1
	}
	return f
}

// Callback receives per-person completion counts from a single batch.
type Callback func(completed, total int)
