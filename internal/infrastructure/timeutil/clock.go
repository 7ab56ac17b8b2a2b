// Package timeutil abstracts the wall clock so search latency metadata can
// be asserted deterministically in tests.
package timeutil

import (
	"time"
)

// Clock provides the current time. RealClock serves production; MockClock
// serves tests.
type Clock interface {
	Now() time.Time
}

// RealClock uses the system time.
type RealClock struct{}

// NewRealClock creates a RealClock.
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock returns a controllable time.
type MockClock struct {
	current time.Time
}

// NewMockClock creates a mock clock frozen at the given time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// Now returns the mock's current time.
func (m *MockClock) Now() time.Time {
	return m.current
}

// Set moves the mock clock to a specific time.
func (m *MockClock) Set(t time.Time) {
	m.current = t
}

// Advance moves the mock clock by the given duration, which may be negative.
func (m *MockClock) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}

var (
	_ Clock = (*RealClock)(nil)
	_ Clock = (*MockClock)(nil)
)
