// SPDX-License-Identifier: GPL-3.0-only

package apiauth

import (
	"errors"
	"strings"
	"time"

	"propman-server/crypto"
)

// Verifier validates presented API key credentials against the key store.
type Verifier struct {
	Keys KeyStore
	Now  func() time.Time
}

func NewVerifier(keys KeyStore) *Verifier {
	return &Verifier{Keys: keys, Now: time.Now}
}

// Verify inspects an Authorization header value and either resolves the
// key or rejects the request. A header that does not carry the ApiKey
// scheme is not an authentication attempt: Verify returns (nil, nil) so
// other auth methods can run.
//
// The two-stage lookup (prefix index, then full-secret digest comparison)
// finds the candidate row without scanning every stored hash, while the
// reversible secret is never stored.
func (v *Verifier) Verify(authHeader, clientIP string) (*ResolvedKey, error) {
	if !strings.HasPrefix(authHeader, Scheme+" ") {
		return nil, nil
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, Scheme+" "))
	if token == "" {
		return nil, malformedCredential("Invalid API key header format")
	}
	if len(token) < PrefixLength {
		return nil, malformedCredential("Invalid API key format")
	}

	key, user, err := v.Keys.FindByPrefix(token[:PrefixLength])
	if errors.Is(err, ErrKeyNotFound) {
		return nil, unknownKey()
	}
	if err != nil {
		return nil, err
	}

	if !crypto.VerifyAPIKeyHash(token, key.KeyHash) {
		return nil, invalidSecret()
	}

	now := v.Now()
	if !key.IsActive {
		return nil, keyInactive()
	}
	if key.IsExpired(now) {
		return nil, keyExpired()
	}
	if !key.IPAllowed(clientIP) {
		return nil, ipNotAllowed(clientIP)
	}

	return &ResolvedKey{
		Key:        *key,
		User:       *user,
		VerifiedAt: now,
		ClientIP:   clientIP,
	}, nil
}
