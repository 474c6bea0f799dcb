// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type TenantStatus string

const (
	TenantActive   TenantStatus = "active"
	TenantInactive TenantStatus = "inactive"
	TenantPending  TenantStatus = "pending"
)

type Tenant struct {
	ID          uint   `gorm:"primaryKey"`
	FirstName   string `gorm:"size:100;not null"`
	LastName    string `gorm:"size:100;not null"`
	Email       string `gorm:"not null;uniqueIndex"`
	Phone       string `gorm:"size:20"`
	DateOfBirth *time.Time

	Employer         string   `gorm:"size:200"`
	JobTitle         string   `gorm:"size:100"`
	MonthlyIncome    *float64 `gorm:"default:null"`
	EmploymentLength string   `gorm:"size:50"`

	UnitNumber string       `gorm:"size:50"`
	Status     TenantStatus `gorm:"size:20;default:'pending';index"`

	EmergencyContactName  string `gorm:"size:200"`
	EmergencyContactPhone string `gorm:"size:20"`

	MoveInDate  *time.Time
	MoveOutDate *time.Time
	Notes       *string `gorm:"type:text;default:null"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
	PropertyID *uint          `gorm:"index"`
	Property   *Property      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

func (t *Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}

func (t *Tenant) Initials() string {
	if t.FirstName == "" || t.LastName == "" {
		return ""
	}
	return strings.ToUpper(t.FirstName[:1] + t.LastName[:1])
}

func init() {
	AllModels = append(AllModels, &Tenant{})
}
