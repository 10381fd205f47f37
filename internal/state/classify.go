// internal/state/classify.go
package state

// Classification is the per-run diff between the current stale set
// and the set recorded by the previous run.
// Derived only. Never persisted.
type Classification struct {
	// NewlyStale = current \ known
	NewlyStale []string
	// Freshened = known \ current
	Freshened []string
	// StillStale = current ∩ known (count only in output)
	StillStale []string

	// CurrentCount is the size of the current stale set.
	CurrentCount int
}

// Classify computes the three disjoint buckets.
// Pure: no IO, inputs are not mutated. Buckets are sorted.
func Classify(current, known Set) Classification {
	return Classification{
		NewlyStale:   current.Minus(known).Sorted(),
		Freshened:    known.Minus(current).Sorted(),
		StillStale:   current.Intersect(known).Sorted(),
		CurrentCount: current.Len(),
	}
}

// Changed reports whether anything went stale or freshened.
func (c Classification) Changed() bool {
	return len(c.NewlyStale) > 0 || len(c.Freshened) > 0
}
