// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
)

type PropertyType string
type PropertyStatus string

const (
	Residential PropertyType = "residential"
	Commercial  PropertyType = "commercial"
	MixedUse    PropertyType = "mixed"
	Industrial  PropertyType = "industrial"
	Land        PropertyType = "land"
)

const (
	PropertyActive        PropertyStatus = "active"
	PropertyUnderContract PropertyStatus = "under_contract"
	PropertySold          PropertyStatus = "sold"
	PropertyInactive      PropertyStatus = "inactive"
)

type Property struct {
	ID           uint           `gorm:"primaryKey"`
	Name         string         `gorm:"size:200;not null"`
	PropertyType PropertyType   `gorm:"size:20;default:'residential'"`
	Status       PropertyStatus `gorm:"size:20;default:'active';index"`

	Address string `gorm:"size:255;not null"`
	City    string `gorm:"size:100"`
	State   string `gorm:"size:50"`
	ZipCode string `gorm:"size:10"`
	Country string `gorm:"size:50;default:'USA'"`

	TotalUnits    int      `gorm:"default:1"`
	OccupiedUnits int      `gorm:"default:0"`
	SizeSqft      *float64 `gorm:"default:null"`
	YearBuilt     *int     `gorm:"default:null"`

	PurchasePrice   *float64 `gorm:"default:null"`
	CurrentValue    float64  `gorm:"not null"`
	MonthlyRevenue  float64  `gorm:"default:0"`
	MonthlyExpenses float64  `gorm:"default:0"`

	Description     *string `gorm:"type:text;default:null"`
	ImageURL        *string `gorm:"size:500;default:null"`
	AcquisitionDate *time.Time

	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	CreatedByID *uint
	CreatedBy   *User `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

// OccupancyRate returns the occupied share of units as a percentage,
// rounded to one decimal place.
func (p *Property) OccupancyRate() float64 {
	if p.TotalUnits == 0 {
		return 0
	}
	return math.Round(float64(p.OccupiedUnits)/float64(p.TotalUnits)*1000) / 10
}

// ROI returns the annualized return on the purchase price as a
// percentage, rounded to one decimal place.
func (p *Property) ROI() float64 {
	if p.PurchasePrice == nil || *p.PurchasePrice == 0 {
		return 0
	}
	annualIncome := (p.MonthlyRevenue - p.MonthlyExpenses) * 12
	return math.Round(annualIncome / *p.PurchasePrice * 1000) / 10
}

func (p *Property) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s %s", p.Address, p.City, p.State, p.ZipCode)
}

func init() {
	AllModels = append(AllModels, &Property{})
}
