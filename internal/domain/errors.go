package domain

import "errors"

// Errors shared by clinic store implementations
var (
	// ErrSlotTaken is returned by a store when the requested slot was booked concurrently
	ErrSlotTaken = errors.New("domain: slot is already taken")

	// ErrNotFound is returned by a store when the referenced record does not exist
	ErrNotFound = errors.New("domain: not found")
)
