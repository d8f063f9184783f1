package model

import "errors"

var (
	// ErrNotOwner is returned when the caller does not control the target zone.
	ErrNotOwner = errors.New("caller is not the zone owner")
	// ErrForbiddenType is returned for direct writes of derived record types.
	ErrForbiddenType = errors.New("resource type cannot be set directly")
	// ErrConflictingSOA is returned when a call carries two different SOA payloads.
	ErrConflictingSOA = errors.New("conflicting SOA data")
)

var (
	ErrZoneNotFound = errors.New("zone not found")
	ErrZoneInvalid  = errors.New("zone invalid")
)
