package model

import "time"

// Principal is the identity attempting a mutating operation.
type Principal string

// Zone is an administratively delegated domain controlled by one principal at a time.
type Zone struct {
	ID               ZoneID
	ParentID         ZoneID
	Label            string // empty for the root zone
	Name             string // dotted name without trailing dot, empty for the root zone
	Owner            Principal
	OpenRegistration bool // anyone may claim an unowned child zone
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsRoot reports whether z is the root zone.
func (z *Zone) IsRoot() bool { return z.ID.IsZero() }
