package models

import "fmt"

// LeaseStatus holds the aggregate lease counters.
type LeaseStatus struct {
	Active    uint64 `json:"active" yaml:"active"`
	Completed uint64 `json:"completed" yaml:"completed"`
	Expired   uint64 `json:"expired" yaml:"expired"`
	Total     uint64 `json:"total" yaml:"total"`
}

// Check verifies total == active + completed + expired.
func (s LeaseStatus) Check() error {
	if s.Active+s.Completed+s.Expired != s.Total {
		return fmt.Errorf("lease status inconsistent: active=%d completed=%d expired=%d total=%d",
			s.Active, s.Completed, s.Expired, s.Total)
	}
	return nil
}

// Opened accounts for a newly created lease.
func (s *LeaseStatus) Opened() {
	s.Total++
	s.Active++
}

// Closed moves one lease from active into the bucket for state.
func (s *LeaseStatus) Closed(state LeaseState) error {
	if s.Active == 0 {
		return fmt.Errorf("lease status: active counter underflow")
	}
	switch state {
	case LeaseStateCompleted:
		s.Completed++
	case LeaseStateExpired:
		s.Expired++
	default:
		return fmt.Errorf("lease status: %q is not a terminal state", state)
	}
	s.Active--
	return nil
}
