// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"
	"propman-server/commons"
	"propman-server/crypto"
	"propman-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			// Seeds the initial admin account from ADMIN_EMAIL and
			// ADMIN_PASSWORD. Skipped when the variables are unset or
			// the account already exists.
			ID: "001_seed_admin_user",
			Migrate: func(tx *gorm.DB) error {
				email := commons.GetEnv("ADMIN_EMAIL")
				password := commons.GetEnv("ADMIN_PASSWORD")
				if email == "" || password == "" {
					commons.Logger.Debug("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
					return nil
				}

				var count int64
				if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
					return fmt.Errorf("failed to check for existing admin: %w", err)
				}
				if count > 0 {
					return nil
				}

				hash, err := crypto.NewCrypto().HashPassword(password)
				if err != nil {
					return fmt.Errorf("failed to hash admin password: %w", err)
				}

				admin := models.User{
					Email:    email,
					Password: hash,
					IsAdmin:  true,
				}
				if err := tx.Create(&admin).Error; err != nil {
					return fmt.Errorf("failed to create admin user: %w", err)
				}
				commons.Logger.Infof("Seeded admin user %s", email)
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				email := commons.GetEnv("ADMIN_EMAIL")
				if email == "" {
					return nil
				}
				return tx.Where("email = ? AND is_admin = ?", email, true).Delete(&models.User{}).Error
			},
		},
		{
			// Backfills unique prefixes for API keys created before the
			// prefix column carried a unique index.
			ID: "002_backfill_api_key_prefixes",
			Migrate: func(tx *gorm.DB) error {
				var keys []models.APIKey
				if err := tx.Where("key_prefix = ?", "").Find(&keys).Error; err != nil {
					return fmt.Errorf("failed to fetch api keys: %w", err)
				}

				for _, key := range keys {
					prefix, err := crypto.GenerateRandomString("", 6, "base64url")
					if err != nil {
						return fmt.Errorf("failed to generate prefix: %w", err)
					}
					if err := tx.Model(&key).Update("key_prefix", prefix[:8]).Error; err != nil {
						return fmt.Errorf("failed to backfill prefix for key %d: %w", key.ID, err)
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
	}
}
