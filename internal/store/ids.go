package store

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"strings"
)

const idPrefix = "stm"

// NewID returns stm-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space; ids are never
// reused, so collisions are checked against the live collection anyway.
func NewID() (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return idPrefix + "-" + strings.ToLower(enc.EncodeToString(b[:])), nil
}

// MintID returns a fresh statement id not present in the collection.
func (db *DB) MintID() (string, error) {
	for i := 0; i < 10; i++ {
		id, err := NewID()
		if err != nil {
			return "", err
		}
		if _, exists := db.FindStatement(id); !exists {
			return id, nil
		}
	}
	return "", errors.New("id space exhausted")
}
