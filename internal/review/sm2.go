// Package review schedules spaced repetition of review items using an
// SM-2 style update rule.
package review

import "math"

const (
	// DefaultEaseFactor seeds a freshly created review state.
	DefaultEaseFactor = 2.5
	// MinEaseFactor is the floor the ease factor never drops below.
	MinEaseFactor = 1.3
)

// Result is the graded outcome of one review answer. The front-end
// normalizes free text down to these three values before they reach the
// scheduler.
type Result string

const (
	ResultPass    Result = "pass"
	ResultFail    Result = "fail"
	ResultPartial Result = "partial"
)

// qualityFor maps a result onto SM-2's 0-5 recall-quality scale. The mapping
// is deliberately binary: partial credit is indistinguishable from failure,
// so only qualities 2 and 4 ever occur.
func qualityFor(result Result) int {
	if result == ResultFail || result == ResultPartial {
		return 2
	}
	return 4
}

// Update applies one review outcome to an item's scheduling parameters and
// returns the new interval in days, ease factor, and repetition count.
//
// The ease delta is the standard SM-2 polynomial; at quality 4 it evaluates
// to exactly zero, so a single pass leaves the ease factor unchanged. A
// fail or partial result hard-resets the interval to 1 day and the
// repetition streak to 0. On a pass, the interval ladder is 1 day, then
// 3 days, then floor(interval * ease).
func Update(easeFactor float64, intervalDays, repetitions int, result Result) (int, float64, int) {
	quality := float64(qualityFor(result))

	newEase := math.Max(MinEaseFactor, easeFactor+(0.1-(5-quality)*(0.08+(5-quality)*0.02)))

	if quality < 3 {
		return 1, newEase, 0
	}

	var newInterval int
	switch repetitions {
	case 0:
		newInterval = 1
	case 1:
		newInterval = 3
	default:
		newInterval = int(float64(intervalDays) * newEase)
	}
	return newInterval, newEase, repetitions + 1
}
