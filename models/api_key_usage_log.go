// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// APIKeyUsageLog is an immutable audit record of one authenticated API
// call. Rows are written best-effort after the response is produced and
// are never updated.
type APIKeyUsageLog struct {
	ID           uint      `gorm:"primaryKey"`
	EID          uuid.UUID `gorm:"type:uuid;not null"`
	Endpoint     string    `gorm:"size:500;not null"`
	Method       string    `gorm:"size:10;not null"`
	IPAddress    string    `gorm:"size:45"`
	UserAgent    string    `gorm:"size:500"`
	StatusCode   int       `gorm:"index"`
	ResponseTime float64
	CreatedAt    time.Time `gorm:"index"`
	APIKeyID     uint      `gorm:"index"`
	APIKey       APIKey    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (entry *APIKeyUsageLog) BeforeCreate(tx *gorm.DB) (err error) {
	entry.EID = uuid.New()
	return
}

func init() {
	AllModels = append(AllModels, &APIKeyUsageLog{})
}
