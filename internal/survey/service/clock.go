package service

import "time"

// Clock returns the current time. Services fall back to time.Now when
// theirs is nil.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
