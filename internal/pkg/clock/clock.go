package clock

import "time"

// Clock abstracts "now" so reservation rules can be tested at fixed instants.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// DateString renders t as the YYYY-MM-DD form reservations are keyed by.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// MinuteString renders t as zero-padded HH:mm, the wire format for
// reservation windows.
func MinuteString(t time.Time) string {
	return t.Format("15:04")
}

type MockClock struct {
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.currentTime = t
}

func (c *MockClock) Add(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}
