// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"propman-server/models"
	"testing"
	"time"
)

func TestDeriveLeaseStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		current  models.LeaseStatus
		expected models.LeaseStatus
	}{
		{
			name:     "not started yet",
			start:    now.Add(24 * time.Hour),
			end:      now.Add(365 * 24 * time.Hour),
			expected: models.LeasePending,
		},
		{
			name:     "running with plenty of time",
			start:    now.Add(-30 * 24 * time.Hour),
			end:      now.Add(90 * 24 * time.Hour),
			expected: models.LeaseActive,
		},
		{
			name:     "ends within thirty days",
			start:    now.Add(-300 * 24 * time.Hour),
			end:      now.Add(10 * 24 * time.Hour),
			expected: models.LeaseExpiringSoon,
		},
		{
			name:     "already ended",
			start:    now.Add(-400 * 24 * time.Hour),
			end:      now.Add(-24 * time.Hour),
			expected: models.LeaseExpired,
		},
		{
			name:     "terminated stays terminated",
			start:    now.Add(-30 * 24 * time.Hour),
			end:      now.Add(90 * 24 * time.Hour),
			current:  models.LeaseTerminated,
			expected: models.LeaseTerminated,
		},
	}

	for _, tc := range cases {
		lease := models.Lease{StartDate: tc.start, EndDate: tc.end, Status: tc.current}
		if got := deriveLeaseStatus(&lease, now); got != tc.expected {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.expected, got)
		}
	}
}
