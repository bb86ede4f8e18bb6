package arena

// Stats tracks arena memory usage.
//
//   - Capacity, Committed, Offset: current sizes in bytes
//   - Peak: highest offset ever reached
//   - Allocs, Commits, Failures, Resets: cumulative counts
type Stats struct {
	Capacity  int
	Committed int
	Offset    int
	Peak      int

	Allocs   uint64
	Commits  uint64
	Failures uint64
	Resets   uint64
}

// Usage returns the committed share of capacity in percent.
func (s Stats) Usage() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Committed) / float64(s.Capacity) * 100
}
