package timing

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// Interval is the pause between two ticks of either binary.
const Interval = 5 * time.Millisecond

// NanosleepFunc has the shape of unix.Nanosleep.
type NanosleepFunc func(request, remaining *unix.Timespec) error

// Sleeper sleeps for full durations, resuming after EINTR.
type Sleeper struct {
	// nanosleep is the underlying syscall, replaceable in tests.
	nanosleep NanosleepFunc
	// interruptions counts EINTR returns absorbed so far.
	interruptions uint64
}

// NewSleeper returns a Sleeper backed by nanosleep(2).
func NewSleeper() *Sleeper {
	return &Sleeper{
		nanosleep: unix.Nanosleep,
	}
}

// newSleeperWith returns a Sleeper backed by fn.
func newSleeperWith(fn NanosleepFunc) *Sleeper {
	return &Sleeper{
		nanosleep: fn,
	}
}

// Sleep blocks for d. When the call is interrupted the request becomes the
// remaining time and the call is repeated, so the total pause is never shorter than d.
// Errors other than EINTR are returned.
func (s *Sleeper) Sleep(d time.Duration) error {
	if d <= 0 {
		return nil
	}

	request := unix.NsecToTimespec(d.Nanoseconds())

	for {
		var remaining unix.Timespec

		err := s.nanosleep(&request, &remaining)
		if err == nil {
			return nil
		}

		if !errors.Is(err, unix.EINTR) {
			return fmt.Errorf("nanosleep: %w", err)
		}

		s.interruptions++
		request = remaining
	}
}

// Interruptions returns how many EINTR returns Sleep has absorbed.
// It is not safe for use concurrently with Sleep.
func (s *Sleeper) Interruptions() uint64 {
	return s.interruptions
}
