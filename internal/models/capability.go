package models

// Capability is a named, quota-governed action.
type Capability string

const (
	CapabilityUnlockContact Capability = "unlock_contact"
	CapabilityPostJob       Capability = "post_job"
	CapabilityApplyJob      Capability = "apply_job"
	CapabilitySaveProfile   Capability = "save_profile"

	// CapabilityBookingDiscount is a value-style entry: Bounded(n) means an
	// n-percent discount on timeslot prices. It is never usage-counted.
	CapabilityBookingDiscount Capability = "booking_discount"
)

// QuotaWindow is the range usage is counted over.
type QuotaWindow string

const (
	WindowMonthly  QuotaWindow = "monthly"
	WindowLifetime QuotaWindow = "lifetime"
)

type capabilityDef struct {
	Window    QuotaWindow
	RoleKeyed bool // limit entries may differ per counterparty role
}

var capabilityDefs = map[Capability]capabilityDef{
	CapabilityUnlockContact:   {Window: WindowMonthly, RoleKeyed: true},
	CapabilityPostJob:         {Window: WindowMonthly, RoleKeyed: false},
	CapabilityApplyJob:        {Window: WindowMonthly, RoleKeyed: false},
	CapabilitySaveProfile:     {Window: WindowLifetime, RoleKeyed: false},
	CapabilityBookingDiscount: {Window: WindowLifetime, RoleKeyed: false},
}

func (c Capability) Valid() bool {
	_, ok := capabilityDefs[c]
	return ok
}

func (c Capability) Window() QuotaWindow {
	if def, ok := capabilityDefs[c]; ok {
		return def.Window
	}
	return WindowMonthly
}

func (c Capability) RoleKeyed() bool {
	if def, ok := capabilityDefs[c]; ok {
		return def.RoleKeyed
	}
	return false
}
