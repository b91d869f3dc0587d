package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Signups       uint64
	Signins       uint64
	AuthFailures  uint64
	ScoresCreated uint64
	ScoresUpdated uint64
	ScoresDeleted uint64
	ScoresListed  uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	signups       uint64
	signins       uint64
	authFailures  uint64
	scoresCreated uint64
	scoresUpdated uint64
	scoresDeleted uint64
	scoresListed  uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		Signups:       atomic.LoadUint64(&m.signups),
		Signins:       atomic.LoadUint64(&m.signins),
		AuthFailures:  atomic.LoadUint64(&m.authFailures),
		ScoresCreated: atomic.LoadUint64(&m.scoresCreated),
		ScoresUpdated: atomic.LoadUint64(&m.scoresUpdated),
		ScoresDeleted: atomic.LoadUint64(&m.scoresDeleted),
		ScoresListed:  atomic.LoadUint64(&m.scoresListed),
	}
}

// IncSignup increments the signup counter.
func (m *InMemoryRecorder) IncSignup() {
	atomic.AddUint64(&m.signups, 1)
}

// IncSignin increments the signin counter.
func (m *InMemoryRecorder) IncSignin() {
	atomic.AddUint64(&m.signins, 1)
}

// IncAuthFailure increments the auth failure counter.
func (m *InMemoryRecorder) IncAuthFailure() {
	atomic.AddUint64(&m.authFailures, 1)
}

// IncScoreCreated increments the created counter.
func (m *InMemoryRecorder) IncScoreCreated() {
	atomic.AddUint64(&m.scoresCreated, 1)
}

// IncScoreUpdated increments the updated counter.
func (m *InMemoryRecorder) IncScoreUpdated() {
	atomic.AddUint64(&m.scoresUpdated, 1)
}

// IncScoreDeleted increments the deleted counter.
func (m *InMemoryRecorder) IncScoreDeleted() {
	atomic.AddUint64(&m.scoresDeleted, 1)
}

// IncScoreListed increments the list counter.
func (m *InMemoryRecorder) IncScoreListed() {
	atomic.AddUint64(&m.scoresListed, 1)
}
