// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

type RevenueSource string
type ExpenseCategory string

const (
	RevenueRent            RevenueSource = "rent"
	RevenueLateFee         RevenueSource = "late_fee"
	RevenueSecurityDeposit RevenueSource = "security_deposit"
	RevenueParking         RevenueSource = "parking"
	RevenueMaintenance     RevenueSource = "maintenance"
	RevenueOther           RevenueSource = "other"
)

const (
	ExpenseMaintenance   ExpenseCategory = "maintenance"
	ExpenseUtilities     ExpenseCategory = "utilities"
	ExpenseInsurance     ExpenseCategory = "insurance"
	ExpensePropertyTax   ExpenseCategory = "property_tax"
	ExpenseManagementFee ExpenseCategory = "management_fee"
	ExpenseMortgage      ExpenseCategory = "mortgage"
	ExpenseHOA           ExpenseCategory = "hoa"
	ExpenseMarketing     ExpenseCategory = "marketing"
	ExpenseLegal         ExpenseCategory = "legal"
	ExpenseSupplies      ExpenseCategory = "supplies"
	ExpenseOther         ExpenseCategory = "other"
)

type Revenue struct {
	ID          uint          `gorm:"primaryKey"`
	Source      RevenueSource `gorm:"size:50;default:'rent';index"`
	Amount      float64       `gorm:"not null"`
	Date        time.Time     `gorm:"not null;index"`
	Description *string       `gorm:"type:text;default:null"`

	PaymentMethod   string `gorm:"size:50"`
	ReferenceNumber string `gorm:"size:100"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	PropertyID  uint           `gorm:"index"`
	Property    Property       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	LeaseID     *uint          `gorm:"index"`
	Lease       *Lease         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	TenantID    *uint          `gorm:"index"`
	Tenant      *Tenant        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	CreatedByID *uint
	CreatedBy   *User `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

type Expense struct {
	ID          uint            `gorm:"primaryKey"`
	Category    ExpenseCategory `gorm:"size:50;not null;index"`
	Amount      float64         `gorm:"not null"`
	Date        time.Time       `gorm:"not null;index"`
	Description string          `gorm:"type:text"`

	VendorName    string `gorm:"size:200"`
	InvoiceNumber string `gorm:"size:100"`
	PaymentMethod string `gorm:"size:50"`
	Paid          bool   `gorm:"default:false;index"`
	PaidDate      *time.Time

	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	PropertyID  uint           `gorm:"index"`
	Property    Property       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedByID *uint
	CreatedBy   *User `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

func init() {
	AllModels = append(AllModels, &Revenue{}, &Expense{})
}
