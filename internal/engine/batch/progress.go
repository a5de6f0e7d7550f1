package batch

// percentMultiplier converts a ratio to a percentage.
const percentMultiplier = 100

// Progress is a point-in-time view of a Process run.
type Progress struct {
	TotalItems      int
	ProcessedItems  int
	TotalChunks     int
	ProcessedChunks int
}

// PercentComplete returns the completion percentage (0-100). An empty run is 100% complete.
func (p Progress) PercentComplete() float64 {
	if p.TotalItems == 0 {
		return percentMultiplier
	}
	return float64(p.ProcessedItems) / float64(p.TotalItems) * percentMultiplier
}

// IsComplete reports whether every item has been processed.
func (p Progress) IsComplete() bool {
	return p.ProcessedItems >= p.TotalItems
}
