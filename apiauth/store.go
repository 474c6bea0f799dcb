// SPDX-License-Identifier: GPL-3.0-only

package apiauth

import (
	"errors"
	"time"

	"propman-server/models"

	"gorm.io/gorm"
)

// ErrKeyNotFound is returned by KeyStore lookups that match nothing.
var ErrKeyNotFound = errors.New("api key not found")

// KeyStore is the persistence surface the pipeline needs from the key
// records.
type KeyStore interface {
	// FindByPrefix returns the key with the given prefix and its owning
	// user, or ErrKeyNotFound.
	FindByPrefix(prefix string) (*models.APIKey, *models.User, error)

	// Touch atomically increments the key's usage counter and stamps its
	// last-used time.
	Touch(keyID uint, usedAt time.Time) error
}

// UsageStore persists audit entries.
type UsageStore interface {
	Write(entry *models.APIKeyUsageLog) error
}

// GormStore backs KeyStore and UsageStore with the application database.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) FindByPrefix(prefix string) (*models.APIKey, *models.User, error) {
	key := models.APIKey{}
	err := s.DB.Where("key_prefix = ?", prefix).First(&key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	user := models.User{}
	if err := s.DB.Where("id = ?", key.UserID).First(&user).Error; err != nil {
		return nil, nil, err
	}
	return &key, &user, nil
}

// Touch uses a single UPDATE expression; read-modify-write would lose
// increments under concurrent requests on the same key.
func (s *GormStore) Touch(keyID uint, usedAt time.Time) error {
	return s.DB.Model(&models.APIKey{}).
		Where("id = ?", keyID).
		Updates(map[string]any{
			"usage_count":  gorm.Expr("usage_count + ?", 1),
			"last_used_at": usedAt,
		}).Error
}

func (s *GormStore) Write(entry *models.APIKeyUsageLog) error {
	return s.DB.Create(entry).Error
}
