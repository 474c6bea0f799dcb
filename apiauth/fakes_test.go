// SPDX-License-Identifier: GPL-3.0-only

package apiauth

import (
	"errors"
	"testing"
	"time"

	"propman-server/models"
)

type fakeStore struct {
	keys    map[string]*models.APIKey
	users   map[uint]*models.User
	entries []*models.APIKeyUsageLog

	touched     int
	lastTouched time.Time
	writeErr    error
	touchErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		keys:  make(map[string]*models.APIKey),
		users: make(map[uint]*models.User),
	}
}

func (s *fakeStore) FindByPrefix(prefix string) (*models.APIKey, *models.User, error) {
	key, ok := s.keys[prefix]
	if !ok {
		return nil, nil, ErrKeyNotFound
	}
	user, ok := s.users[key.UserID]
	if !ok {
		return nil, nil, errors.New("owning user missing")
	}
	keyCopy := *key
	userCopy := *user
	return &keyCopy, &userCopy, nil
}

func (s *fakeStore) Touch(keyID uint, usedAt time.Time) error {
	if s.touchErr != nil {
		return s.touchErr
	}
	s.touched++
	s.lastTouched = usedAt
	return nil
}

func (s *fakeStore) Write(entry *models.APIKeyUsageLog) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.entries = append(s.entries, entry)
	return nil
}

// issueKey generates a secret, stores the derived key record and returns
// the plaintext token alongside the record.
func issueKey(t *testing.T, store *fakeStore, mutate func(*models.APIKey)) (string, *models.APIKey) {
	t.Helper()

	secret, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret failed: %v", err)
	}

	key := &models.APIKey{
		ID:        uint(len(store.keys) + 1),
		Name:      "test key",
		KeyPrefix: secret.Prefix,
		KeyHash:   secret.Hash,
		IsActive:  true,
		RateLimit: 1000,
		CanRead:   true,
		UserID:    1,
	}
	if mutate != nil {
		mutate(key)
	}
	store.keys[key.KeyPrefix] = key
	store.users[key.UserID] = &models.User{ID: key.UserID, Email: "owner@example.com"}
	return secret.Plain, key
}
