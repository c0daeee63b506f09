// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

func clamp01(f float64) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return float32(f)
}
