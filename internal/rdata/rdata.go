// Package rdata converts between record payload bytes and DNS presentation format.
//
// A payload is the concatenation of one or more resource records in DNS wire
// format (RFC 1035 section 4.1.3), uncompressed.
package rdata

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/miekg/dns"

	"github.com/kompox/dnsresolver/domain/model"
)

// ParseHex decodes an optionally 0x-prefixed hex string. Empty input yields nil.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex payload: %w", err)
	}
	return b, nil
}

// Hex renders b as 0x-prefixed hex; empty input renders as "0x".
func Hex(b []byte) string { return "0x" + hex.EncodeToString(b) }

// ParseRRs parses zone-file presentation text into resource records.
func ParseRRs(text string) ([]dns.RR, error) {
	zp := dns.NewZoneParser(strings.NewReader(text), ".", "")
	var rrs []dns.RR
	for rr, ok := zp.Next(); ok; rr, ok = zp.Next() {
		rrs = append(rrs, rr)
	}
	if err := zp.Err(); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}
	if len(rrs) == 0 {
		return nil, fmt.Errorf("parse records: no record in %q", text)
	}
	return rrs, nil
}

// Pack encodes rrs back to back in uncompressed wire format.
func Pack(rrs ...dns.RR) ([]byte, error) {
	var out []byte
	for _, rr := range rrs {
		buf := make([]byte, dns.Len(rr)+1)
		off, err := dns.PackRR(rr, buf, 0, nil, false)
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", rr.Header().Name, err)
		}
		out = append(out, buf[:off]...)
	}
	return out, nil
}

// Unpack decodes a payload produced by Pack.
func Unpack(b []byte) ([]dns.RR, error) {
	var rrs []dns.RR
	for off := 0; off < len(b); {
		rr, next, err := dns.UnpackRR(b, off)
		if err != nil {
			return nil, fmt.Errorf("unpack at offset %d: %w", off, err)
		}
		rrs = append(rrs, rr)
		off = next
	}
	return rrs, nil
}

// FromText parses an RRset in presentation format and returns its type and payload.
// All records must share the same owner name and type.
func FromText(text string) (name string, typ model.ResourceType, payload []byte, err error) {
	rrs, err := ParseRRs(text)
	if err != nil {
		return "", 0, nil, err
	}
	first := rrs[0].Header()
	for _, rr := range rrs[1:] {
		h := rr.Header()
		if h.Rrtype != first.Rrtype || !strings.EqualFold(h.Name, first.Name) {
			return "", 0, nil, fmt.Errorf("records do not form a single RRset: %s %s vs %s %s",
				first.Name, dns.TypeToString[first.Rrtype], h.Name, dns.TypeToString[h.Rrtype])
		}
	}
	payload, err = Pack(rrs...)
	if err != nil {
		return "", 0, nil, err
	}
	return first.Name, model.ResourceType(first.Rrtype), payload, nil
}

// Describe renders a payload as presentation text when it decodes, and as hex otherwise.
func Describe(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	rrs, err := Unpack(b)
	if err != nil {
		return Hex(b)
	}
	lines := make([]string, 0, len(rrs))
	for _, rr := range rrs {
		lines = append(lines, rr.String())
	}
	return strings.Join(lines, "\n")
}
