package models

import (
	"encoding/json"
	"fmt"
)

// LimitKind tags the three entitlement outcomes.
type LimitKind string

const (
	LimitDisabled  LimitKind = "disabled"
	LimitUnlimited LimitKind = "unlimited"
	LimitBounded   LimitKind = "bounded"
)

// Limit is the resolved entitlement for a (principal, capability) pair.
// Bounded(0) means categorically forbidden; it is distinct from Disabled
// (not configured) even though both deny.
type Limit struct {
	Kind LimitKind
	N    int
}

func Disabled() Limit  { return Limit{Kind: LimitDisabled} }
func Unlimited() Limit { return Limit{Kind: LimitUnlimited} }
func Bounded(n int) Limit {
	if n < 0 {
		n = 0
	}
	return Limit{Kind: LimitBounded, N: n}
}

func (l Limit) IsDisabled() bool  { return l.Kind == LimitDisabled }
func (l Limit) IsUnlimited() bool { return l.Kind == LimitUnlimited }

// Denies reports whether the limit forbids the capability regardless of usage.
func (l Limit) Denies() bool {
	return l.Kind == LimitDisabled || (l.Kind == LimitBounded && l.N == 0)
}

// Remaining returns the quota left for the given usage, nil for Unlimited.
func (l Limit) Remaining(used int) *int {
	if l.Kind != LimitBounded {
		return nil
	}
	left := l.N - used
	if left < 0 {
		left = 0
	}
	return &left
}

// MarshalJSON renders "disabled", "unlimited" or the bound.
func (l Limit) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case LimitUnlimited:
		return json.Marshal("unlimited")
	case LimitBounded:
		return json.Marshal(l.N)
	default:
		return json.Marshal("disabled")
	}
}

// UnmarshalJSON accepts every historical limit encoding:
//
//	false          -> disabled
//	true           -> unlimited
//	-1             -> unlimited
//	n >= 0         -> bounded(n)
//	"disabled"     -> disabled
//	"unlimited"    -> unlimited
func (l *Limit) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*l = Unlimited()
		} else {
			*l = Disabled()
		}
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n < 0 {
			*l = Unlimited()
		} else {
			*l = Bounded(n)
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case string(LimitDisabled):
			*l = Disabled()
		case string(LimitUnlimited):
			*l = Unlimited()
		default:
			return fmt.Errorf("unknown limit value %q", s)
		}
		return nil
	}

	return fmt.Errorf("unsupported limit encoding: %s", string(data))
}

// CapabilityLimit is one entry of a plan's limit table: either a uniform limit
// or a map keyed by counterparty role.
type CapabilityLimit struct {
	Uniform *Limit
	ByRole  map[UserRole]Limit
}

// ForRole selects the applicable limit. A uniform entry applies regardless of
// the counterparty (legacy numeric-only shape); a role-keyed entry requires a
// role and denies when the role is absent or unlisted.
func (cl CapabilityLimit) ForRole(role *UserRole) Limit {
	if cl.Uniform != nil {
		return *cl.Uniform
	}
	if role == nil {
		return Disabled()
	}
	if limit, ok := cl.ByRole[*role]; ok {
		return limit
	}
	return Disabled()
}

func (cl *CapabilityLimit) UnmarshalJSON(data []byte) error {
	// Role-keyed object form first; scalar forms fall through to Limit.
	var byRole map[UserRole]Limit
	if err := json.Unmarshal(data, &byRole); err == nil {
		cl.ByRole = byRole
		cl.Uniform = nil
		return nil
	}

	var limit Limit
	if err := json.Unmarshal(data, &limit); err != nil {
		return err
	}
	cl.Uniform = &limit
	cl.ByRole = nil
	return nil
}

func (cl CapabilityLimit) MarshalJSON() ([]byte, error) {
	if cl.Uniform != nil {
		return json.Marshal(*cl.Uniform)
	}
	return json.Marshal(cl.ByRole)
}

// PlanLimits is the parsed form of a plan's nested limit table.
// Missing capabilities resolve to Disabled.
type PlanLimits map[Capability]CapabilityLimit

// Resolve returns the limit for a capability and optional counterparty role.
func (pl PlanLimits) Resolve(capability Capability, role *UserRole) Limit {
	entry, ok := pl[capability]
	if !ok {
		return Disabled()
	}
	return entry.ForRole(role)
}

// UniformLimit is a convenience constructor for seeding and tests.
func UniformLimit(l Limit) CapabilityLimit {
	return CapabilityLimit{Uniform: &l}
}

// RoleLimit is a convenience constructor for role-keyed entries.
func RoleLimit(byRole map[UserRole]Limit) CapabilityLimit {
	return CapabilityLimit{ByRole: byRole}
}
