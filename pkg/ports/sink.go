package ports

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveProbeJSON saves the probed stream properties of a video as JSON.
	SaveProbeJSON(stem string, data []byte) error

	// SavePlanJSON saves the computed sampling plan of a video as JSON.
	SavePlanJSON(stem string, data []byte) error
}
