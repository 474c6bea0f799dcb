// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"propman-server/models"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func expectBadRequest(t *testing.T, name string, err error) {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("%s: expected *echo.HTTPError, got %T: %v", name, err, err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("%s: expected status 400, got %d", name, httpErr.Code)
	}
}

func TestApplyRevenueRequestValidation(t *testing.T) {
	cases := []struct {
		name string
		req  RevenueRequest
	}{
		{"zero amount", RevenueRequest{Date: "2025-06-01T00:00:00Z", PropertyID: 1}},
		{"negative amount", RevenueRequest{Amount: -50, Date: "2025-06-01T00:00:00Z", PropertyID: 1}},
		{"missing date", RevenueRequest{Amount: 1200, PropertyID: 1}},
		{"missing property", RevenueRequest{Amount: 1200, Date: "2025-06-01T00:00:00Z"}},
		{"unparseable date", RevenueRequest{Amount: 1200, Date: "June 1st", PropertyID: 1}},
	}

	for _, tc := range cases {
		err := applyRevenueRequest(&models.Revenue{}, &tc.req)
		if err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
			continue
		}
		expectBadRequest(t, tc.name, err)
	}
}

func TestApplyRevenueRequestPopulatesRecord(t *testing.T) {
	leaseID := uint(4)
	req := RevenueRequest{
		Amount:          1200,
		Date:            "2025-06-01T00:00:00Z",
		PaymentMethod:   "bank_transfer",
		ReferenceNumber: "TXN-889",
		PropertyID:      2,
		LeaseID:         &leaseID,
	}

	var revenue models.Revenue
	if err := applyRevenueRequest(&revenue, &req); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if revenue.Source != models.RevenueRent {
		t.Errorf("Absent source should default to rent, got %s", revenue.Source)
	}
	if revenue.Amount != 1200 || revenue.PropertyID != 2 {
		t.Errorf("Unexpected amount/property: %v/%d", revenue.Amount, revenue.PropertyID)
	}
	if !revenue.Date.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected parsed date: %v", revenue.Date)
	}
	if revenue.LeaseID == nil || *revenue.LeaseID != 4 {
		t.Errorf("Unexpected lease reference: %v", revenue.LeaseID)
	}

	req.Source = "late_fee"
	if err := applyRevenueRequest(&revenue, &req); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if revenue.Source != models.RevenueLateFee {
		t.Errorf("Expected source late_fee, got %s", revenue.Source)
	}
}

func TestApplyExpenseRequestValidation(t *testing.T) {
	badPaidDate := "yesterday"
	cases := []struct {
		name string
		req  ExpenseRequest
	}{
		{"missing category", ExpenseRequest{Amount: 340, Date: "2025-06-01T00:00:00Z", PropertyID: 1}},
		{"zero amount", ExpenseRequest{Category: "utilities", Date: "2025-06-01T00:00:00Z", PropertyID: 1}},
		{"missing date", ExpenseRequest{Category: "utilities", Amount: 340, PropertyID: 1}},
		{"missing property", ExpenseRequest{Category: "utilities", Amount: 340, Date: "2025-06-01T00:00:00Z"}},
		{"unparseable paid date", ExpenseRequest{Category: "utilities", Amount: 340, Date: "2025-06-01T00:00:00Z", PropertyID: 1, PaidDate: &badPaidDate}},
	}

	for _, tc := range cases {
		err := applyExpenseRequest(&models.Expense{}, &tc.req)
		if err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
			continue
		}
		expectBadRequest(t, tc.name, err)
	}
}

func TestApplyExpenseRequestPopulatesRecord(t *testing.T) {
	paidDate := "2025-06-03T00:00:00Z"
	req := ExpenseRequest{
		Category:   "insurance",
		Amount:     812.4,
		Date:       "2025-06-01T00:00:00Z",
		VendorName: "Acme Underwriters",
		Paid:       true,
		PaidDate:   &paidDate,
		PropertyID: 3,
	}

	var expense models.Expense
	if err := applyExpenseRequest(&expense, &req); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if expense.Category != models.ExpenseInsurance {
		t.Errorf("Expected category insurance, got %s", expense.Category)
	}
	if !expense.Paid || expense.PaidDate == nil {
		t.Error("Paid flag and paid date should carry over")
	}
	if expense.PaidDate != nil && !expense.PaidDate.Equal(time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected paid date: %v", expense.PaidDate)
	}
}
