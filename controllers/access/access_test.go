package access

import (
	"testing"

	"talentbridge.com/marketplace"

	"github.com/stretchr/testify/assert"
)

func workspaceTx(lastTransition string, metadata map[string]interface{}) *marketplace.Transaction {
	return &marketplace.Transaction{
		ID:             "tx-1",
		LastTransition: lastTransition,
		CustomerID:     "student-1",
		ProviderID:     "partner-1",
		ListingID:      "listing-1",
		Metadata:       metadata,
	}
}

func TestEvaluate_StrangerIsUnauthorized(t *testing.T) {
	metadataVariants := []map[string]interface{}{
		nil,
		{"workHoldCleared": true},
		{"workHoldCleared": true, "ndaAccepted": true, "depositConfirmed": true},
	}

	for _, metadata := range metadataVariants {
		tx := workspaceTx("transition/accept", metadata)
		assert.Equal(t, DeniedUnauthorized, Evaluate(tx, "someone-else"))
	}
}

func TestEvaluate_ProviderAlwaysGranted(t *testing.T) {
	transitions := []string{
		"transition/request",
		"transition/apply",
		"transition/accept",
		"transition/decline",
		"transition/mark-completed",
		"transition/some-future-name",
	}

	for _, transition := range transitions {
		tx := workspaceTx(transition, nil)
		assert.Equal(t, Granted, Evaluate(tx, "partner-1"), "transition %s", transition)
	}
}

func TestEvaluate_CustomerBeforeAcceptance(t *testing.T) {
	tx := workspaceTx("transition/apply", map[string]interface{}{"workHoldCleared": true})
	assert.Equal(t, DeniedNotAccepted, Evaluate(tx, "student-1"))
}

func TestEvaluate_CustomerAcceptedButHoldNotCleared(t *testing.T) {
	tx := workspaceTx("transition/accept", map[string]interface{}{"workHoldCleared": false})
	assert.Equal(t, DeniedDepositPending, Evaluate(tx, "student-1"))

	// Missing flag counts the same as false
	tx = workspaceTx("transition/accept", map[string]interface{}{})
	assert.Equal(t, DeniedDepositPending, Evaluate(tx, "student-1"))

	tx = workspaceTx("transition/accept", nil)
	assert.Equal(t, DeniedDepositPending, Evaluate(tx, "student-1"))
}

func TestEvaluate_CustomerAcceptedAndHoldCleared(t *testing.T) {
	tx := workspaceTx("transition/accept", map[string]interface{}{"workHoldCleared": true})
	assert.Equal(t, Granted, Evaluate(tx, "student-1"))

	tx = workspaceTx("transition/mark-completed", map[string]interface{}{"workHoldCleared": true})
	assert.Equal(t, Granted, Evaluate(tx, "student-1"))
}

func TestEvaluate_DepositConfirmedAloneDoesNotClearHold(t *testing.T) {
	// The two admin flags are independent; only workHoldCleared gates access.
	tx := workspaceTx("transition/accept", map[string]interface{}{"depositConfirmed": true})
	assert.Equal(t, DeniedDepositPending, Evaluate(tx, "student-1"))
}

func TestParseTransition(t *testing.T) {
	tests := []struct {
		name  string
		state State
	}{
		{"transition/request", StatePending},
		{"transition/apply", StatePending},
		{"transition/counter-offer", StatePending},
		{"transition/accept", StateAccepted},
		{"transition/operator-accept", StateAccepted},
		{"transition/decline", StateDeclined},
		{"transition/operator-decline", StateDeclined},
		{"transition/expire", StateDeclined},
		{"transition/cancel", StateDeclined},
		{"transition/mark-completed", StateCompleted},
		{"transition/review-by-customer", StateCompleted},
		{"transition/review-by-provider", StateCompleted},
		{"transition/expire-review-period", StateCompleted},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.state, ParseTransition(tt.name), tt.name)
	}
}

func TestParseTransition_UnknownNamesFailClosed(t *testing.T) {
	// Names that would have matched the old substring check must not unlock
	// the workspace anymore.
	unknown := []string{
		"transition/auto-accept-v2",
		"transition/complete-refund",
		"transition/acceptance-review",
		"",
		"garbage",
	}

	for _, name := range unknown {
		assert.Equal(t, StatePending, ParseTransition(name), name)
		assert.False(t, ParseTransition(name).Accepted(), name)
	}
}

func TestRole(t *testing.T) {
	tx := workspaceTx("transition/accept", nil)

	assert.Equal(t, "provider", Role(tx, "partner-1"))
	assert.Equal(t, "customer", Role(tx, "student-1"))
	assert.Equal(t, "", Role(tx, "nobody"))
}
