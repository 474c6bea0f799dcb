// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentPaid      PaymentStatus = "paid"
	PaymentOverdue   PaymentStatus = "overdue"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Payment is a scheduled rent obligation under a lease. Revenue rows
// record cash actually received; a payment tracks what is owed, when it
// falls due and how much of it has been settled.
type Payment struct {
	ID         uint          `gorm:"primaryKey"`
	Amount     float64       `gorm:"not null"`
	AmountPaid float64       `gorm:"default:0"`
	DueDate    time.Time     `gorm:"not null;index"`
	PaidDate   *time.Time
	Status     PaymentStatus `gorm:"size:20;default:'pending';index"`

	PaymentMethod   string `gorm:"size:50"`
	ReferenceNumber string `gorm:"size:100"`
	Notes           string `gorm:"type:text"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	LeaseID     uint           `gorm:"index"`
	Lease       Lease          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TenantID    *uint          `gorm:"index"`
	Tenant      *Tenant        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	PropertyID  uint           `gorm:"index"`
	Property    Property       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedByID *uint
	CreatedBy   *User `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

// Balance is the amount still owed. Overpayments clamp to zero.
func (p *Payment) Balance() float64 {
	if p.AmountPaid >= p.Amount {
		return 0
	}
	return p.Amount - p.AmountPaid
}

// IsOverdue reports whether an unsettled, uncancelled payment is past
// its due date.
func (p *Payment) IsOverdue(now time.Time) bool {
	if p.Status == PaymentCancelled || p.Balance() == 0 {
		return false
	}
	return now.After(p.DueDate)
}

func init() {
	AllModels = append(AllModels, &Payment{})
}
