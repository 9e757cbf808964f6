package service

import "time"

// Clock supplies the current time. Services read time only through it so
// tests can pin it.
type Clock interface {
	Now() time.Time
}

// RealClock provides actual system time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// TestClock provides fixed time for testing.
type TestClock struct {
	CurrentTime time.Time
}

func (t *TestClock) Now() time.Time {
	return t.CurrentTime
}

// Advance moves the test clock forward by d.
func (t *TestClock) Advance(d time.Duration) {
	t.CurrentTime = t.CurrentTime.Add(d)
}
