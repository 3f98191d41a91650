package lexicon

import (
	"math"
	"time"
)

// RatePoint is one decimated estimate of the knowledge rate: the rate over
// the time range of its estimation window.
type RatePoint struct {
	From time.Time
	To   time.Time
	Rate float64
}

// Rate converts a ratio of unknown words into the log2-scaled knowledge
// rate: the rarity of not knowing a word. The second value is false when the
// ratio is zero and the rate is undefined.
func Rate(ratio float64) (float64, bool) {
	if ratio == 0 {
		return 0, false
	}
	return -math.Log2(ratio), true
}

// ComputeRate produces rate points from a time-sorted binary outcome series.
//
// Each window is the smallest suffix-growing window holding exactly
// precision unknown answers: it ends at an unknown outcome and starts right
// after the unknown outcome that precedes the window, so one point is
// emitted per unknown outcome once precision of them have been seen. A zero
// before bound means the whole series.
func ComputeRate(series []Outcome, precision int, before time.Time) []RatePoint {
	if precision < 1 {
		return nil
	}

	var points []RatePoint
	left, unknowns := 0, 0
	for right, outcome := range series {
		if !before.IsZero() && outcome.Time.After(before) {
			break
		}
		if outcome.Known {
			continue
		}
		unknowns++
		for unknowns > precision {
			if !series[left].Known {
				unknowns--
			}
			left++
		}
		if unknowns < precision {
			continue
		}
		length := right - left + 1
		rate, ok := Rate(float64(precision) / float64(length))
		if !ok {
			continue
		}
		points = append(points, RatePoint{
			From: series[left].Time,
			To:   series[right].Time,
			Rate: rate,
		})
	}
	return points
}

// LastRate returns the rate of the most recent estimation window, or false
// when the series holds fewer than precision unknown answers.
func LastRate(series []Outcome, precision int, before time.Time) (float64, bool) {
	points := ComputeRate(series, precision, before)
	if len(points) == 0 {
		return 0, false
	}
	return points[len(points)-1].Rate, true
}
