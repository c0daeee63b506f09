// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func Clamp(val, minimum, maximum float32) float32 {
	return Min(Max(val, minimum), maximum)
}

// Clamp01 clamps val to [0, 1].
func Clamp01(val float32) float32 {
	return Clamp(val, 0, 1)
}

func ClampInt(val, minimum, maximum int) int {
	if val < minimum {
		return minimum
	}
	if val > maximum {
		return maximum
	}
	return val
}
