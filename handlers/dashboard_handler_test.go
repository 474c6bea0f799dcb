// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"testing"
	"time"
)

func TestMonthBounds(t *testing.T) {
	cases := []struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantNext  time.Time
	}{
		{
			name:      "mid month",
			now:       time.Date(2025, 6, 15, 13, 42, 7, 0, time.UTC),
			wantStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			wantNext:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "first instant of the month",
			now:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			wantNext:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "december rolls into next year",
			now:       time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
			wantStart: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			wantNext:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		start, next := monthBounds(tc.now)
		if !start.Equal(tc.wantStart) {
			t.Errorf("%s: expected start %v, got %v", tc.name, tc.wantStart, start)
		}
		if !next.Equal(tc.wantNext) {
			t.Errorf("%s: expected next %v, got %v", tc.name, tc.wantNext, next)
		}
	}
}
