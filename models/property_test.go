// SPDX-License-Identifier: GPL-3.0-only

package models

import "testing"

func TestPropertyOccupancyRate(t *testing.T) {
	p := Property{TotalUnits: 8, OccupiedUnits: 6}
	if got := p.OccupancyRate(); got != 75.0 {
		t.Errorf("Expected occupancy rate 75.0, got %v", got)
	}

	p = Property{TotalUnits: 3, OccupiedUnits: 1}
	if got := p.OccupancyRate(); got != 33.3 {
		t.Errorf("Expected occupancy rate 33.3, got %v", got)
	}

	p = Property{TotalUnits: 0, OccupiedUnits: 0}
	if got := p.OccupancyRate(); got != 0 {
		t.Errorf("Zero units should give rate 0, got %v", got)
	}
}

func TestPropertyROI(t *testing.T) {
	price := 850000.0
	p := Property{
		PurchasePrice:   &price,
		MonthlyRevenue:  9600,
		MonthlyExpenses: 3100,
	}
	// (9600-3100)*12 / 850000 = 9.2%
	if got := p.ROI(); got != 9.2 {
		t.Errorf("Expected ROI 9.2, got %v", got)
	}

	p = Property{MonthlyRevenue: 9600, MonthlyExpenses: 3100}
	if got := p.ROI(); got != 0 {
		t.Errorf("Missing purchase price should give ROI 0, got %v", got)
	}

	zero := 0.0
	p = Property{PurchasePrice: &zero, MonthlyRevenue: 100}
	if got := p.ROI(); got != 0 {
		t.Errorf("Zero purchase price should give ROI 0, got %v", got)
	}
}

func TestPropertyFullAddress(t *testing.T) {
	p := Property{Address: "12 Maple Ct", City: "Springfield", State: "IL", ZipCode: "62704"}
	want := "12 Maple Ct, Springfield, IL 62704"
	if got := p.FullAddress(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestTenantNameHelpers(t *testing.T) {
	tenant := Tenant{FirstName: "jane", LastName: "mitchell"}
	if got := tenant.FullName(); got != "jane mitchell" {
		t.Errorf("Expected full name 'jane mitchell', got %q", got)
	}
	if got := tenant.Initials(); got != "JM" {
		t.Errorf("Expected initials 'JM', got %q", got)
	}

	tenant = Tenant{FirstName: "jane"}
	if got := tenant.Initials(); got != "" {
		t.Errorf("Missing last name should give empty initials, got %q", got)
	}
}
