// Package authority gates destructive and corrective operations behind a
// role-specific static secret.
//
// The secrets are compared in memory as plain strings, never hashed and never
// rate-limited. This is a single-tenant guard against accidental destructive
// clicks, not a defense against an adversary; do not trust it as one.
package authority

import (
	custom_error "stockledger/pkg/errors"
	"stockledger/pkg/roles"
)

// Action names one guarded operation.
type Action string

const (
	ActionLogin             Action = "login"
	ActionEditItem          Action = "edit_item"
	ActionDeleteItem        Action = "delete_item"
	ActionEditTransaction   Action = "edit_transaction"
	ActionDeleteTransaction Action = "delete_transaction"
	ActionReplaceCollection Action = "replace_collection"
)

// Decision is the result of an authorization check.
type Decision struct {
	Authorized bool
	Role       roles.Role
	Action     Action
}

// Gate holds the per-role secrets.
type Gate struct {
	secrets map[roles.Role]string
}

func NewGate(adminSecret, productSecret string) *Gate {
	return &Gate{
		secrets: map[roles.Role]string{
			roles.Admin:       adminSecret,
			roles.ProductOnly: productSecret,
		},
	}
}

// Authorize compares the attempted secret against the role's configured one.
// On mismatch the guarded operation must not be applied; retrying with the
// right secret recovers.
func (g *Gate) Authorize(role roles.Role, attemptedSecret string, action Action) (Decision, error) {
	denied := Decision{Authorized: false, Role: role, Action: action}

	if !role.IsValid() {
		return denied, &custom_error.AuthorizationError{Action: string(action)}
	}
	expected, ok := g.secrets[role]
	if !ok || expected == "" || attemptedSecret != expected {
		return denied, &custom_error.AuthorizationError{Action: string(action)}
	}

	return Decision{Authorized: true, Role: role, Action: action}, nil
}

// ActionState tracks one guarded operation through its lifecycle.
type ActionState string

const (
	StateRequested      ActionState = "requested"
	StateAwaitingSecret ActionState = "awaiting_secret"
	StateApplied        ActionState = "applied"
	StateCancelled      ActionState = "cancelled"
)

// PendingAction is a guarded operation waiting for secret confirmation.
// Lifecycle: Requested -> AwaitingSecret -> Applied or Cancelled. A failed
// confirmation keeps it in AwaitingSecret so the secret can be retried.
type PendingAction struct {
	gate  *Gate
	role  roles.Role
	kind  Action
	state ActionState
	apply func() error
}

// Request opens a pending action for the operation carried by apply. The
// action immediately awaits its secret; nothing runs until Confirm succeeds.
func (g *Gate) Request(role roles.Role, action Action, apply func() error) *PendingAction {
	p := &PendingAction{
		gate:  g,
		role:  role,
		kind:  action,
		state: StateRequested,
		apply: apply,
	}
	p.state = StateAwaitingSecret
	return p
}

// Confirm applies the operation when the secret matches. On mismatch the
// action stays pending and state is unchanged.
func (p *PendingAction) Confirm(attemptedSecret string) error {
	if p.state != StateAwaitingSecret {
		return &custom_error.AuthorizationError{Action: string(p.kind)}
	}
	if _, err := p.gate.Authorize(p.role, attemptedSecret, p.kind); err != nil {
		return err
	}
	if err := p.apply(); err != nil {
		return err
	}
	p.state = StateApplied
	return nil
}

// Cancel abandons the pending action without applying it.
func (p *PendingAction) Cancel() {
	if p.state == StateAwaitingSecret {
		p.state = StateCancelled
	}
}

func (p *PendingAction) State() ActionState {
	return p.state
}
