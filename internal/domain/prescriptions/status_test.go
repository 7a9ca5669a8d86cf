//go:build unit
// +build unit

package prescriptions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{StatusSubmitted, StatusUnderReview, true},
		{StatusUnderReview, StatusApproved, true},
		{StatusUnderReview, StatusRejected, true},
		{StatusApproved, StatusDispensed, true},
		{StatusApproved, StatusRenewalRequested, true},
		{StatusDispensed, StatusRenewalRequested, true},
		{StatusRenewalRequested, StatusApproved, true},
		{StatusRenewalRequested, StatusRejected, true},

		// Transfer from any non-rejected state.
		{StatusSubmitted, StatusTransferred, true},
		{StatusApproved, StatusTransferred, true},
		{StatusDispensed, StatusTransferred, true},
		{StatusRejected, StatusTransferred, false},
		{StatusTransferred, StatusTransferred, false},

		// Forbidden moves.
		{StatusSubmitted, StatusApproved, false},
		{StatusSubmitted, StatusDispensed, false},
		{StatusRejected, StatusUnderReview, false},
		{StatusTransferred, StatusApproved, false},
		{StatusDispensed, StatusDispensed, false},
		{StatusSubmitted, StatusRenewalRequested, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTransition(t *testing.T) {
	p := &Prescription{Status: StatusSubmitted}

	require.NoError(t, p.Transition(StatusUnderReview))
	assert.Equal(t, StatusUnderReview, p.Status)

	err := p.Transition(StatusDispensed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, StatusUnderReview, p.Status, "failed transition must not mutate status")
}
