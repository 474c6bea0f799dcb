// SPDX-License-Identifier: GPL-3.0-only

package apiauth

import (
	"propman-server/crypto"
)

const (
	// Scheme is the Authorization header keyword for API key credentials.
	Scheme = "ApiKey"

	// PrefixLength is how many leading characters of the secret are stored
	// in the clear as the lookup index.
	PrefixLength = 8

	// secretBytes gives 256 bits of entropy, 43 base64url characters.
	secretBytes = 32
)

// Secret is a freshly generated API key credential. Plain is handed to the
// caller exactly once; only Prefix and Hash are ever persisted.
type Secret struct {
	Plain  string
	Prefix string
	Hash   string
}

func GenerateSecret() (*Secret, error) {
	token, err := crypto.GenerateRandomString("", secretBytes, "base64url")
	if err != nil {
		return nil, err
	}
	return &Secret{
		Plain:  token,
		Prefix: token[:PrefixLength],
		Hash:   crypto.HashAPIKey(token),
	}, nil
}
