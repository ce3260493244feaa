package task

// Stats summarises a collection.
type Stats struct {
	Total           int
	Active          int
	Completed       int
	PercentComplete int
}

// ComputeStats derives the counters for tasks. PercentComplete is rounded
// half-up and is 0 for an empty collection.
func ComputeStats(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Complete {
			s.Completed++
		}
	}
	s.Active = s.Total - s.Completed
	if s.Total > 0 {
		s.PercentComplete = (s.Completed*200 + s.Total) / (2 * s.Total)
	}
	return s
}
