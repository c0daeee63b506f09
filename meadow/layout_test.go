// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package meadow

import (
	"testing"
)

func TestLayout_OfAndSummary(t *testing.T) {
	summary := NewPlanner(testConfig()).Build(newSource(3)).Summary()
	flora := NewPlanner(testConfig()).Build(newSource(3)).Of(CategoryFlora)

	if summary.Flora != len(flora) {
		t.Errorf("expected %d flora in summary, got %d", len(flora), summary.Flora)
	}
	if summary.Flora != summary.Meadow+summary.Edge {
		t.Errorf("inconsistent summary %s", summary)
	}

	var empty Layout
	if s := empty.Summary(); s != (Summary{}) {
		t.Errorf("expected empty summary, got %s", s)
	}
	if p := empty.Of(CategoryWater); p != nil {
		t.Errorf("expected no water, got %v", p)
	}
}
