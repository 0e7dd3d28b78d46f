package services

import (
	"net/http"
	"time"

	"workhub_backend/internal/models"
	"workhub_backend/internal/repositories"
	"workhub_backend/pkg/apperrors"
)

// freeTierDefaults is the platform's fixed FREE-tier limit table. It is
// hard-coded, not stored per-plan: principals without an active enrollment
// fall back to it, and capabilities missing from it resolve to Disabled.
var freeTierDefaults = models.PlanLimits{
	models.CapabilityPostJob:     models.UniformLimit(models.Bounded(1)),
	models.CapabilityApplyJob:    models.UniformLimit(models.Bounded(3)),
	models.CapabilitySaveProfile: models.UniformLimit(models.Bounded(10)),
}

type EntitlementService interface {
	// Resolve returns the limit the principal's active plan grants for the
	// capability, optionally narrowed by the counterparty's role.
	Resolve(userID string, capability models.Capability, counterpartyRole *models.UserRole) (models.Limit, error)

	// ActivePlan returns the plan backing the winning enrollment, nil when the
	// principal is on the free tier.
	ActivePlan(userID string) (*models.Plan, error)

	// BookingDiscountPercent reads the booking_discount entry of the active
	// plan; 0 when absent or non-bounded.
	BookingDiscountPercent(userID string) (int, error)
}

type entitlementService struct {
	planRepo repositories.PlanRepository
	now      func() time.Time
}

func NewEntitlementService(planRepo repositories.PlanRepository) EntitlementService {
	return &entitlementService{
		planRepo: planRepo,
		now:      time.Now,
	}
}

// activeEnrollment applies the lazy-expiry rule and the tie-break: when a
// principal has several concurrently active enrollments, the highest plan
// tier wins, never recency.
func (s *entitlementService) activeEnrollment(userID string) (*models.PlanEnrollment, error) {
	now := s.now()

	enrollments, err := s.planRepo.FindActiveEnrollments(userID, now)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "entitlement",
			"Failed to load enrollments", http.StatusInternalServerError)
	}

	var winner *models.PlanEnrollment
	for i := range enrollments {
		e := &enrollments[i]
		if !e.ActiveAt(now) {
			continue
		}
		if winner == nil || e.Plan.Tier > winner.Plan.Tier {
			winner = e
		}
	}
	return winner, nil
}

func (s *entitlementService) Resolve(userID string, capability models.Capability, counterpartyRole *models.UserRole) (models.Limit, error) {
	if !capability.Valid() {
		return models.Disabled(), apperrors.ErrInvalidOperation("entitlement",
			"Unknown capability: "+string(capability))
	}

	enrollment, err := s.activeEnrollment(userID)
	if err != nil {
		return models.Disabled(), err
	}

	if enrollment == nil {
		return freeTierDefaults.Resolve(capability, counterpartyRole), nil
	}

	limits, err := enrollment.Plan.ParseLimits()
	if err != nil {
		return models.Disabled(), apperrors.InternalError(err)
	}

	return limits.Resolve(capability, counterpartyRole), nil
}

func (s *entitlementService) ActivePlan(userID string) (*models.Plan, error) {
	enrollment, err := s.activeEnrollment(userID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, nil
	}
	return &enrollment.Plan, nil
}

func (s *entitlementService) BookingDiscountPercent(userID string) (int, error) {
	limit, err := s.Resolve(userID, models.CapabilityBookingDiscount, nil)
	if err != nil {
		return 0, err
	}
	if limit.Kind != models.LimitBounded {
		return 0, nil
	}
	if limit.N > 100 {
		return 100, nil
	}
	return limit.N, nil
}
