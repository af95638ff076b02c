package access

import (
	"talentbridge.com/marketplace"
)

// Decision is the closed set of workspace access outcomes. The frontend maps
// the denial codes to specific copy, so the strings are part of the contract.
type Decision string

const (
	Granted              Decision = "granted"
	DeniedUnauthorized   Decision = "unauthorized"
	DeniedNotAccepted    Decision = "not_accepted"
	DeniedDepositPending Decision = "deposit_pending"
)

// State is the coarse transaction state derived from the transaction-process
// engine's last transition.
type State int

const (
	StatePending State = iota
	StateAccepted
	StateCompleted
	StateDeclined
)

// transitionStates enumerates every transition name the process engine emits.
// Names missing from the table resolve to StatePending so that new process
// versions fail closed instead of accidentally unlocking the workspace.
var transitionStates = map[string]State{
	"transition/request":              StatePending,
	"transition/apply":                StatePending,
	"transition/counter-offer":        StatePending,
	"transition/accept":               StateAccepted,
	"transition/operator-accept":      StateAccepted,
	"transition/decline":              StateDeclined,
	"transition/operator-decline":     StateDeclined,
	"transition/expire":               StateDeclined,
	"transition/cancel":               StateDeclined,
	"transition/mark-completed":       StateCompleted,
	"transition/review-by-customer":   StateCompleted,
	"transition/review-by-provider":   StateCompleted,
	"transition/expire-review-period": StateCompleted,
}

func ParseTransition(name string) State {
	if state, ok := transitionStates[name]; ok {
		return state
	}
	return StatePending
}

// Accepted reports whether the transaction has reached the accept-or-later
// part of its lifecycle.
func (s State) Accepted() bool {
	return s == StateAccepted || s == StateCompleted
}

// Role returns the caller's role on the transaction, or "" for strangers.
func Role(tx *marketplace.Transaction, callerID string) string {
	switch callerID {
	case tx.ProviderID:
		return "provider"
	case tx.CustomerID:
		return "customer"
	}
	return ""
}

// Evaluate computes the workspace access decision for a caller. It is a pure
// read-only check:
//   - strangers are unauthorized regardless of metadata,
//   - the provider always has full access,
//   - the customer needs an accepted transaction AND a cleared work hold.
func Evaluate(tx *marketplace.Transaction, callerID string) Decision {
	switch Role(tx, callerID) {
	case "provider":
		return Granted
	case "customer":
		// fall through to the customer checks below
	default:
		return DeniedUnauthorized
	}

	if !ParseTransition(tx.LastTransition).Accepted() {
		return DeniedNotAccepted
	}

	meta := marketplace.ParseWorkspaceMetadata(tx.Metadata)
	if !meta.WorkHoldCleared {
		return DeniedDepositPending
	}

	return Granted
}
