package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Plan is a subscription plan. Limits holds the nested per-capability limit
// table as JSON; ParseLimits turns it into typed PlanLimits.
type Plan struct {
	BaseModel
	Name     string   `gorm:"not null;uniqueIndex"`
	Role     UserRole `gorm:"type:varchar(20);index"` // which role the plan targets
	Tier     int      `gorm:"not null;default:0"`     // priority rank, higher wins
	Price    float64  `gorm:"not null"`
	Currency string   `gorm:"default:'INR'"`
	Duration string   `gorm:"not null"` // "monthly", "yearly"
	Limits   datatypes.JSON
	IsActive bool `gorm:"default:true"`
}

func (p *Plan) ParseLimits() (PlanLimits, error) {
	if len(p.Limits) == 0 {
		return PlanLimits{}, nil
	}
	var limits PlanLimits
	if err := json.Unmarshal(p.Limits, &limits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal limits of plan %s: %w", p.Name, err)
	}
	return limits, nil
}

// MustLimitsJSON serializes a limit table for seeding; panics on failure since
// it only runs with literal inputs.
func MustLimitsJSON(limits PlanLimits) datatypes.JSON {
	raw, err := json.Marshal(limits)
	if err != nil {
		panic(err)
	}
	return datatypes.JSON(raw)
}

// PlanEnrollment ties a user to a plan.
// At most one enrollment counts as active for entitlement purposes; overlaps
// are broken by plan tier, not recency.
type PlanEnrollment struct {
	BaseModel
	UserID      string           `gorm:"not null;index"`
	PlanID      string           `gorm:"not null;index"`
	Status      EnrollmentStatus `gorm:"default:'active'"`
	StartDate   time.Time
	EndDate     time.Time
	AutoRenew   bool `gorm:"default:true"`
	CancelledAt *time.Time

	Plan Plan `gorm:"foreignKey:PlanID"`
}

// ActiveAt applies the lazy-expiry rule: a stored "active" status past its
// end date is not active.
func (e *PlanEnrollment) ActiveAt(now time.Time) bool {
	return e.Status == EnrollmentStatusActive && e.EndDate.After(now)
}
