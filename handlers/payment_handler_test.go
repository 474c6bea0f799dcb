// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"propman-server/models"
	"testing"
	"time"
)

func TestDerivePaymentStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		payment  models.Payment
		expected models.PaymentStatus
	}{
		{
			name:     "not yet due",
			payment:  models.Payment{Amount: 1200, DueDate: now.Add(10 * 24 * time.Hour)},
			expected: models.PaymentPending,
		},
		{
			name:     "partially settled before due date",
			payment:  models.Payment{Amount: 1200, AmountPaid: 400, DueDate: now.Add(10 * 24 * time.Hour)},
			expected: models.PaymentPartial,
		},
		{
			name:     "fully settled",
			payment:  models.Payment{Amount: 1200, AmountPaid: 1200, DueDate: now.Add(-24 * time.Hour)},
			expected: models.PaymentPaid,
		},
		{
			name:     "past due",
			payment:  models.Payment{Amount: 1200, DueDate: now.Add(-24 * time.Hour)},
			expected: models.PaymentOverdue,
		},
		{
			name:     "partial payment past due counts as overdue",
			payment:  models.Payment{Amount: 1200, AmountPaid: 400, DueDate: now.Add(-24 * time.Hour)},
			expected: models.PaymentOverdue,
		},
		{
			name:     "cancelled stays cancelled",
			payment:  models.Payment{Amount: 1200, DueDate: now.Add(-24 * time.Hour), Status: models.PaymentCancelled},
			expected: models.PaymentCancelled,
		},
	}

	for _, tc := range cases {
		if got := derivePaymentStatus(&tc.payment, now); got != tc.expected {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.expected, got)
		}
	}
}

func TestApplyPaymentRequestValidation(t *testing.T) {
	cases := []struct {
		name string
		req  PaymentRequest
	}{
		{"zero amount", PaymentRequest{DueDate: "2025-07-01T00:00:00Z", LeaseID: 1}},
		{"negative amount paid", PaymentRequest{Amount: 1200, AmountPaid: -1, DueDate: "2025-07-01T00:00:00Z", LeaseID: 1}},
		{"amount paid exceeds amount", PaymentRequest{Amount: 1200, AmountPaid: 1500, DueDate: "2025-07-01T00:00:00Z", LeaseID: 1}},
		{"missing due date", PaymentRequest{Amount: 1200, LeaseID: 1}},
		{"missing lease", PaymentRequest{Amount: 1200, DueDate: "2025-07-01T00:00:00Z"}},
		{"unparseable due date", PaymentRequest{Amount: 1200, DueDate: "next month", LeaseID: 1}},
	}

	for _, tc := range cases {
		err := applyPaymentRequest(&models.Payment{}, &tc.req)
		if err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
			continue
		}
		expectBadRequest(t, tc.name, err)
	}
}

func TestApplyPaymentRequestPopulatesRecord(t *testing.T) {
	req := PaymentRequest{
		Amount:          1200,
		AmountPaid:      400,
		DueDate:         "2025-07-01T00:00:00Z",
		LeaseID:         6,
		PaymentMethod:   "check",
		ReferenceNumber: "CHK-104",
		Notes:           "July rent",
	}

	var payment models.Payment
	if err := applyPaymentRequest(&payment, &req); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if payment.Amount != 1200 || payment.AmountPaid != 400 || payment.LeaseID != 6 {
		t.Errorf("Unexpected amounts/lease: %v/%v/%d", payment.Amount, payment.AmountPaid, payment.LeaseID)
	}
	if !payment.DueDate.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected due date: %v", payment.DueDate)
	}
	if payment.Status != models.PaymentPending {
		t.Errorf("Expected status pending before derivation, got %s", payment.Status)
	}

	req.Status = "cancelled"
	if err := applyPaymentRequest(&payment, &req); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if payment.Status != models.PaymentCancelled {
		t.Errorf("Expected cancelled status to be honored, got %s", payment.Status)
	}
}
