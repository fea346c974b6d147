// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// DecibelsToGain converts a gain in dB into a linear amplitude factor.
// 0 dB is unity, -6 dB roughly halves the amplitude.
func DecibelsToGain(db float64) float64 {
	return math.Pow(10, db/20)
}

// GainToDecibels is the inverse of DecibelsToGain. Non-positive gains map
// to -Inf.
func GainToDecibels(gain float64) float64 {
	if gain <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(gain)
}
