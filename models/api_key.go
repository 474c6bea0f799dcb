// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// MaskedKeyLength is the number of mask characters appended to the prefix
// when a key is shown after creation.
const MaskedKeyLength = 40

// APIKey grants external callers access to the REST API. Only the first 8
// characters of the secret (KeyPrefix) and a one-way digest of the full
// secret (KeyHash) are stored; the plaintext is returned to the owner
// exactly once, at issuance or rotation.
type APIKey struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	KeyPrefix string `gorm:"size:8;not null;uniqueIndex"`
	KeyHash   string `gorm:"size:64;not null"`

	IsActive   bool   `gorm:"default:true;index"`
	AllowedIPs string `gorm:"type:text"`
	RateLimit  int    `gorm:"default:1000"`

	CanRead   bool `gorm:"default:true"`
	CanWrite  bool `gorm:"default:false"`
	CanDelete bool `gorm:"default:false"`

	UsageCount int64 `gorm:"default:0"`
	LastUsedAt *time.Time
	ExpiresAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
	UserID    uint           `gorm:"index"`
	User      User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// MaskedKey returns the display form: prefix followed by mask characters.
func (k *APIKey) MaskedKey() string {
	return k.KeyPrefix + strings.Repeat("*", MaskedKeyLength)
}

func (k *APIKey) IsExpired(now time.Time) bool {
	return k.ExpiresAt != nil && now.After(*k.ExpiresAt)
}

func (k *APIKey) IsValid(now time.Time) bool {
	return k.IsActive && !k.IsExpired(now)
}

// IPAllowed reports whether the caller address passes the allow-list. An
// empty list allows any address; entries match exactly, no CIDR logic.
func (k *APIKey) IPAllowed(ip string) bool {
	if strings.TrimSpace(k.AllowedIPs) == "" {
		return true
	}
	for _, allowed := range strings.Split(k.AllowedIPs, ",") {
		if strings.TrimSpace(allowed) == ip {
			return true
		}
	}
	return false
}

func init() {
	AllModels = append(AllModels, &APIKey{})
}
