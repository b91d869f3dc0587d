// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Auth metrics
	IncSignup()
	IncSignin()
	IncAuthFailure()

	// Score management metrics
	IncScoreCreated()
	IncScoreUpdated()
	IncScoreDeleted()
	IncScoreListed()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
