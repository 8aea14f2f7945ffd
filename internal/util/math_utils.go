package util

import "math"

// Percentage returns part/total as a whole percentage rounded half away from
// zero. A zero total yields 0.
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}
