package model

import (
	"bytes"
	"fmt"
)

// RecordKey addresses a single record in the store.
type RecordKey struct {
	Zone ZoneID
	Name NameID
	Type ResourceType
}

// Record is a typed opaque payload attached to a name within a zone.
type Record struct {
	Zone ZoneID       `json:"zone" yaml:"zone"`
	Name NameID       `json:"name" yaml:"name"`
	Type ResourceType `json:"type" yaml:"type"`
	Data []byte       `json:"data" yaml:"data"`
}

// RecordChange is one atomic mutation of the record store.
// When Clear is false the record at Key is written with Data, otherwise it is removed.
// A non-empty SOA replaces the zone SOA slot in the same step.
type RecordChange struct {
	Key   RecordKey
	Data  []byte
	Clear bool
	SOA   []byte
}

// RecordChangeResult reports the presence transitions caused by a RecordChange.
type RecordChangeResult struct {
	Created    bool // Absent -> Present
	Removed    bool // Present -> Absent
	SOAUpdated bool
	Count      int // live record count for (Zone, Name) after the change
}

// NewSetChange validates a direct write of data at key and builds the change.
// A write to type SOA also feeds the zone SOA slot; a separate soa payload must then match data.
func NewSetChange(key RecordKey, data, soa []byte) (*RecordChange, error) {
	if err := CheckSettable(key.Type); err != nil {
		return nil, err
	}
	if key.Type == TypeSOA {
		if len(soa) > 0 && !bytes.Equal(data, soa) {
			return nil, fmt.Errorf("%w: record payload %x differs from soa payload %x", ErrConflictingSOA, data, soa)
		}
		if len(soa) == 0 {
			soa = data
		}
	}
	return &RecordChange{Key: key, Data: data, SOA: soa}, nil
}

// NewClearChange builds the removal of key, optionally replacing the zone SOA slot.
func NewClearChange(key RecordKey, soa []byte) *RecordChange {
	return &RecordChange{Key: key, Clear: true, SOA: soa}
}
