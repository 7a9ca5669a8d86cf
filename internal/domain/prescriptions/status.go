package prescriptions

import (
	"errors"
	"fmt"
)

// Prescription status constants
const (
	StatusSubmitted        = "submitted"
	StatusUnderReview      = "under_review"
	StatusApproved         = "approved"
	StatusDispensed        = "dispensed"
	StatusRenewalRequested = "renewal_requested"
	StatusTransferred      = "transferred"
	StatusRejected         = "rejected"
)

// ErrInvalidTransition is returned when a prescription status change is not
// permitted by the lifecycle.
var ErrInvalidTransition = errors.New("invalid prescription status transition")

// transitions holds the permitted status graph. Transfer is reachable from any
// non-rejected state and is handled separately in CanTransition.
var transitions = map[string][]string{
	StatusSubmitted:        {StatusUnderReview},
	StatusUnderReview:      {StatusApproved, StatusRejected},
	StatusApproved:         {StatusDispensed, StatusRenewalRequested},
	StatusDispensed:        {StatusRenewalRequested},
	StatusRenewalRequested: {StatusApproved, StatusRejected},
	StatusTransferred:      {},
	StatusRejected:         {},
}

// CanTransition reports whether a prescription may move from one status to
// another.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	if to == StatusTransferred {
		return from != StatusRejected && from != StatusTransferred
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition validates and applies a status change on the prescription.
func (p *Prescription) Transition(to string) error {
	if !CanTransition(p.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, to)
	}
	p.Status = to
	return nil
}
