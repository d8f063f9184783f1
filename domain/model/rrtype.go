package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/miekg/dns"
)

// ResourceType enumerates DNS record kinds (RFC 1035 TYPE values).
type ResourceType uint16

const (
	TypeA     ResourceType = ResourceType(dns.TypeA)
	TypeNS    ResourceType = ResourceType(dns.TypeNS)
	TypeCNAME ResourceType = ResourceType(dns.TypeCNAME)
	TypeSOA   ResourceType = ResourceType(dns.TypeSOA)
	TypeTXT   ResourceType = ResourceType(dns.TypeTXT)
	TypeAAAA  ResourceType = ResourceType(dns.TypeAAAA)
	TypeRRSIG ResourceType = ResourceType(dns.TypeRRSIG)
)

// protectedTypes lists types holding derived data that callers never write directly.
var protectedTypes = map[ResourceType]string{
	TypeRRSIG: "signatures are derived from the signed record sets",
}

// CheckSettable returns ErrForbiddenType when t may not be written directly.
func CheckSettable(t ResourceType) error {
	if reason, ok := protectedTypes[t]; ok {
		return fmt.Errorf("%w: %s: %s", ErrForbiddenType, t, reason)
	}
	return nil
}


func (t ResourceType) String() string {
	if s, ok := dns.TypeToString[uint16(t)]; ok {
		return s
	}
	return "TYPE" + strconv.Itoa(int(t))
}

// ParseResourceType accepts a mnemonic (A, SOA, TYPE65280) or a decimal number.
func ParseResourceType(s string) (ResourceType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty resource type")
	}
	if t, ok := dns.StringToType[s]; ok {
		return ResourceType(t), nil
	}
	num := strings.TrimPrefix(s, "TYPE")
	n, err := strconv.ParseUint(num, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("unknown resource type %q", s)
	}
	return ResourceType(n), nil
}
