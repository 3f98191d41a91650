package learning

import "time"

// Interval growth steps for right answers. A question starts at the smallest
// interval and doubles once it passed a full day.
const (
	SmallestInterval = 5 * time.Minute
	daySecondStep    = 8 * time.Hour
	dayInterval      = 24 * time.Hour
)

// NextInterval is the default interval policy: a pure function of the
// previous interval and the response.
//
// A wrong answer resets the question to the smallest interval. A right
// answer steps the interval up (5 minutes, 8 hours, 1 day) and doubles it
// beyond a day. A skip keeps the previous interval, which removes a question
// from scheduling when it was never scheduled before.
func NextInterval(previous time.Duration, response Response) time.Duration {
	switch response {
	case ResponseWrong:
		return SmallestInterval
	case ResponseSkip:
		return previous
	case ResponseRight:
		switch {
		case previous < SmallestInterval:
			return SmallestInterval
		case previous < daySecondStep:
			return daySecondStep
		case previous < dayInterval:
			return dayInterval
		default:
			return previous * 2
		}
	}
	return previous
}
