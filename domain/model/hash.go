package model

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HashLength is the width in bytes of zone and name identifiers.
const HashLength = 32

// Hash is a fixed-width identifier produced by the identifier hasher.
type Hash [HashLength]byte

// ZoneID identifies an owned domain (the namehash of its name).
type ZoneID = Hash

// NameID identifies a fully-qualified record name, independently of its zone.
type NameID = Hash

// RootZoneID is the identifier of the root zone.
var RootZoneID ZoneID

// ParseHash decodes a 0x-prefixed (or bare) 64-digit hex string.
func ParseHash(s string) (Hash, error) {
	var h Hash
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if len(s) != 2*HashLength {
		return h, fmt.Errorf("invalid hash length %d: want %d hex digits", len(s), 2*HashLength)
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, fmt.Errorf("invalid hash: %w", err)
	}
	return h, nil
}

// IsZero reports whether h is the all-zero hash.
func (h Hash) IsZero() bool { return h == Hash{} }

// Hex returns the lowercase hex digits of h without prefix.
func (h Hash) Hex() string { return hex.EncodeToString(h[:]) }

func (h Hash) String() string { return "0x" + h.Hex() }

func (h Hash) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

func (h *Hash) UnmarshalText(b []byte) error {
	v, err := ParseHash(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}
