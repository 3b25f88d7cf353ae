package port

// Telemetry receives advisory progress observations from a running
// extraction. Implementations must not assume any call ordering beyond
// Progress happening before Summary.
type Telemetry interface {
	Progress(unitsProcessed, matchesSoFar int)
	Summary(matchedUnits, totalUnits int)
}
