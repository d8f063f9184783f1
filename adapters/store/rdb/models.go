package rdb

import "time"

// ZoneRecord is the RDB persistence model for domain Zone.
// Table name: zones
type ZoneRecord struct {
	ID               string    `gorm:"primaryKey;type:text;not null"` // 0x-prefixed hex
	ParentID         string    `gorm:"type:text;not null;index"`
	Label            string    `gorm:"type:text;not null"`
	Name             string    `gorm:"type:text;not null"`
	Owner            string    `gorm:"type:text;not null"`
	OpenRegistration bool      `gorm:"not null"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (ZoneRecord) TableName() string { return "zones" }

// ResourceRecord holds one record payload.
// Table name: records
type ResourceRecord struct {
	ZoneID    string    `gorm:"primaryKey;type:text;not null"`
	NameID    string    `gorm:"primaryKey;type:text;not null"`
	Type      uint16    `gorm:"primaryKey;not null"`
	Data      []byte    `gorm:"type:blob;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ResourceRecord) TableName() string { return "records" }

// RecordSetCount tracks the number of present types per (zone, name).
// Rows are deleted when the count drops to zero.
// Table name: record_set_counts
type RecordSetCount struct {
	ZoneID string `gorm:"primaryKey;type:text;not null"`
	NameID string `gorm:"primaryKey;type:text;not null"`
	Count  int    `gorm:"not null"`
}

func (RecordSetCount) TableName() string { return "record_set_counts" }

// SOARecord is the zone-wide SOA slot.
// Table name: soa_records
type SOARecord struct {
	ZoneID    string    `gorm:"primaryKey;type:text;not null"`
	Data      []byte    `gorm:"type:blob;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (SOARecord) TableName() string { return "soa_records" }
