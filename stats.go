package whitedew

import (
	"fmt"

	"github.com/hupe1980/whitedew/internal/arena"
)

// ArenaStats is a snapshot of one arena.
type ArenaStats = arena.Stats

// Stats is a snapshot of the application's memory use.
type Stats struct {
	// Scratch holds both scratch arena slots.
	Scratch [2]ArenaStats

	// MemoryUsage is the memory all arenas have committed, in bytes.
	MemoryUsage int64
	// MemoryPeak is the highest MemoryUsage seen.
	MemoryPeak int64
	// MemoryLimit is the configured budget; 0 means unlimited.
	MemoryLimit int64

	Documents     int
	DocumentBytes int
}

func (s Stats) String() string {
	limit := "unlimited"
	if s.MemoryLimit > 0 {
		limit = fmt.Sprintf("%d", s.MemoryLimit)
	}
	return fmt.Sprintf("memory: %d (peak %d, limit %s), documents: %d (%d bytes), scratch committed: %d/%d",
		s.MemoryUsage, s.MemoryPeak, limit,
		s.Documents, s.DocumentBytes,
		s.Scratch[0].Committed, s.Scratch[1].Committed,
	)
}
