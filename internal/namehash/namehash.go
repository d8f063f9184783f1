// Package namehash derives zone and record-name identifiers.
//
// Zone identifiers follow the recursive namehash scheme: the root is 32 zero
// bytes and a child is keccak256(parent || keccak256(label)). Record-name
// identifiers are keccak256 of the canonical fully-qualified name text and do
// not depend on the zone.
package namehash

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"
	"golang.org/x/crypto/sha3"
	"golang.org/x/net/idna"

	"github.com/kompox/dnsresolver/domain/model"
)

// Underscore labels (_dmarc, _tcp) are common in record names, so STD3 rules are relaxed.
var profile = idna.New(idna.MapForLookup(), idna.StrictDomainName(false), idna.Transitional(false))

// Keccak256 hashes the concatenation of data.
func Keccak256(data ...[]byte) model.Hash {
	var h model.Hash
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	d.Sum(h[:0])
	return h
}

// LabelHash returns the hash of a single already-normalized label.
func LabelHash(label string) model.Hash {
	return Keccak256([]byte(label))
}

// Child composes a child identifier from its parent and the child's label hash.
func Child(parent model.Hash, labelHash model.Hash) model.Hash {
	return Keccak256(parent[:], labelHash[:])
}

// NormalizeLabel applies IDNA lookup mapping to one label.
func NormalizeLabel(label string) (string, error) {
	if label == "" || strings.Contains(label, ".") {
		return "", fmt.Errorf("invalid label %q", label)
	}
	out, err := profile.ToASCII(label)
	if err != nil {
		return "", fmt.Errorf("normalize label %q: %w", label, err)
	}
	return out, nil
}

// Normalize lowercases and IDNA-maps a dotted domain name and strips the trailing dot.
// The root is returned as the empty string.
func Normalize(name string) (string, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".")
	if name == "" {
		return "", nil
	}
	out, err := profile.ToASCII(name)
	if err != nil {
		return "", fmt.Errorf("normalize %q: %w", name, err)
	}
	return out, nil
}

// ZoneID returns the namehash of a dotted domain name.
func ZoneID(name string) (model.ZoneID, error) {
	norm, err := Normalize(name)
	if err != nil {
		return model.ZoneID{}, err
	}
	return zoneID(norm), nil
}

func zoneID(norm string) model.ZoneID {
	var id model.ZoneID
	if norm == "" {
		return id
	}
	labels := dns.SplitDomainName(norm)
	for i := len(labels) - 1; i >= 0; i-- {
		id = Child(id, LabelHash(labels[i]))
	}
	return id
}

// Split returns the first label and the parent name of a normalized name.
func Split(norm string) (label, parent string) {
	label, parent, _ = strings.Cut(norm, ".")
	return label, parent
}

// CanonicalFQDN lowercases name and appends the trailing dot.
func CanonicalFQDN(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." {
		return ".", nil
	}
	norm, err := Normalize(name)
	if err != nil {
		return "", err
	}
	fqdn := dns.CanonicalName(norm)
	if _, ok := dns.IsDomainName(fqdn); !ok {
		return "", fmt.Errorf("invalid domain name %q", name)
	}
	return fqdn, nil
}

// NameID returns the identifier of a fully-qualified record name.
func NameID(name string) (model.NameID, error) {
	fqdn, err := CanonicalFQDN(name)
	if err != nil {
		return model.NameID{}, err
	}
	return Keccak256([]byte(fqdn)), nil
}
