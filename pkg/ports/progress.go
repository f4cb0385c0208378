package ports

// Progress reports incremental progress of a long-running operation.
type Progress interface {
	// Add advances the progress by n units.
	Add(n int)

	// Finish marks the operation as complete.
	Finish()
}

// ProgressFactory creates Progress reporters.
// A total of -1 means the amount of work is unknown.
type ProgressFactory interface {
	New(total int, description string) Progress
}
