// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

type LeaseStatus string

const (
	LeasePending      LeaseStatus = "pending"
	LeaseActive       LeaseStatus = "active"
	LeaseExpiringSoon LeaseStatus = "expiring_soon"
	LeaseExpired      LeaseStatus = "expired"
	LeaseTerminated   LeaseStatus = "terminated"
)

type Lease struct {
	ID              uint        `gorm:"primaryKey"`
	StartDate       time.Time   `gorm:"not null"`
	EndDate         time.Time   `gorm:"not null;index"`
	MonthlyRent     float64     `gorm:"not null"`
	SecurityDeposit float64     `gorm:"default:0"`
	Status          LeaseStatus `gorm:"size:20;default:'pending';index"`
	Notes           *string     `gorm:"type:text;default:null"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	PropertyID  uint           `gorm:"index"`
	Property    Property       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TenantID    uint           `gorm:"index"`
	Tenant      Tenant         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedByID *uint
	CreatedBy   *User `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

func init() {
	AllModels = append(AllModels, &Lease{})
}
