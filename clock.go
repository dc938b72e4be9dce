package statuspad

import "time"

// Clock supplies the current time. Components with timing behavior take a
// Clock instead of calling time.Now directly so window expiry is testable
// without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
