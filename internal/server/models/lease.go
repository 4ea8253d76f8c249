package models

import (
	"fmt"
	"time"
)

type LeaseState string

const (
	LeaseStateActive    LeaseState = "active"
	LeaseStateCompleted LeaseState = "completed"
	LeaseStateExpired   LeaseState = "expired"
)

// Terminal reports whether no further transition is allowed.
func (s LeaseState) Terminal() bool {
	return s == LeaseStateCompleted || s == LeaseStateExpired
}

// Lease is the right of a lessee to use an asset for a time window.
// StartTime, EndTime and PaymentAmount are stored as given.
type Lease struct {
	ID            uint64     `json:"lease_id" yaml:"lease_id"`
	AssetID       uint64     `json:"asset_id" yaml:"asset_id"`
	Owner         string     `json:"owner" yaml:"owner"`
	Lessee        string     `json:"lessee" yaml:"lessee"`
	StartTime     uint64     `json:"start_time" yaml:"start_time"`
	EndTime       uint64     `json:"end_time" yaml:"end_time"`
	PaymentAmount uint64     `json:"payment_amount" yaml:"payment_amount"`
	IsActive      bool       `json:"is_active" yaml:"is_active"`
	State         LeaseState `json:"state" yaml:"state"`
	CreatedAt     time.Time  `json:"created_at" yaml:"created_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty" yaml:"closed_at,omitempty"`
}

// Close moves an active lease into the terminal state s.
func (l *Lease) Close(s LeaseState, at time.Time) error {
	if !s.Terminal() {
		return fmt.Errorf("lease %d: %q is not a terminal state", l.ID, s)
	}
	if !l.IsActive {
		return fmt.Errorf("lease %d is already %s", l.ID, l.State)
	}
	l.IsActive = false
	l.State = s
	at = at.UTC()
	l.ClosedAt = &at
	return nil
}
