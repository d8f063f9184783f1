package model

import (
	"errors"
	"testing"
)

func TestCheckSettable(t *testing.T) {
	tests := []struct {
		name    string
		typ     ResourceType
		wantErr bool
	}{
		{name: "A is settable", typ: TypeA},
		{name: "SOA is settable", typ: TypeSOA},
		{name: "TXT is settable", typ: TypeTXT},
		{name: "private type is settable", typ: 65280},
		{name: "RRSIG is derived", typ: TypeRRSIG, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSettable(tt.typ)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckSettable(%d) error = %v, wantErr %v", tt.typ, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrForbiddenType) {
				t.Errorf("CheckSettable(%d) error = %v, should wrap ErrForbiddenType", tt.typ, err)
			}
		})
	}
}

func TestResourceType_StringAndParse(t *testing.T) {
	if TypeSOA != 6 || TypeRRSIG != 46 || TypeA != 1 {
		t.Fatalf("unexpected type values: A=%d SOA=%d RRSIG=%d", TypeA, TypeSOA, TypeRRSIG)
	}
	tests := []struct {
		in   string
		want ResourceType
	}{
		{"A", TypeA},
		{"soa", TypeSOA},
		{"RRSIG", TypeRRSIG},
		{"2", TypeNS},
		{"TYPE65280", 65280},
	}
	for _, tt := range tests {
		got, err := ParseResourceType(tt.in)
		if err != nil {
			t.Errorf("ParseResourceType(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseResourceType(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "NOPE", "70000", "TYPEx"} {
		if _, err := ParseResourceType(bad); err == nil {
			t.Errorf("ParseResourceType(%q) expected error", bad)
		}
	}
	if s := TypeSOA.String(); s != "SOA" {
		t.Errorf("TypeSOA.String() = %q", s)
	}
	if s := ResourceType(65280).String(); s != "TYPE65280" {
		t.Errorf("String() = %q, want TYPE65280", s)
	}
}
