package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncSignup is a no-op.
func (n *NoopRecorder) IncSignup() {}

// IncSignin is a no-op.
func (n *NoopRecorder) IncSignin() {}

// IncAuthFailure is a no-op.
func (n *NoopRecorder) IncAuthFailure() {}

// IncScoreCreated is a no-op.
func (n *NoopRecorder) IncScoreCreated() {}

// IncScoreUpdated is a no-op.
func (n *NoopRecorder) IncScoreUpdated() {}

// IncScoreDeleted is a no-op.
func (n *NoopRecorder) IncScoreDeleted() {}

// IncScoreListed is a no-op.
func (n *NoopRecorder) IncScoreListed() {}
