package services

import (
	"encoding/json"
	"time"

	"workhub_backend/internal/logger"
	"workhub_backend/internal/models"
	"workhub_backend/internal/repositories"
	"workhub_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

// QuotaDecision is the allow/deny outcome plus remaining-quota reporting.
// Remaining is nil for Unlimited.
type QuotaDecision struct {
	Allowed   bool         `json:"allowed"`
	Limit     models.Limit `json:"limit"`
	Used      int          `json:"used"`
	Remaining *int         `json:"remaining"`
}

type QuotaService interface {
	// Check composes entitlement resolution with live usage counting. It is
	// read-only and evaluated fresh per request: usage changes the moment a
	// qualifying action is recorded, so nothing here may be cached.
	Check(userID string, capability models.Capability, counterpartyRole *models.UserRole) (*QuotaDecision, error)

	// Enforce is Check plus the error mapping middleware and use-cases want:
	// Forbidden for Disabled/Bounded(0), QuotaExceeded for an exhausted
	// Bounded(n).
	Enforce(userID string, capability models.Capability, counterpartyRole *models.UserRole) (*QuotaDecision, error)

	// RecordUsage appends the usage event. Callers invoke it only after the
	// guarded action succeeded, so denied or failed actions never consume
	// quota. Two requests racing past Check just under the limit can overshoot
	// it by one; that is an accepted property of this design, not a bug to
	// lock away.
	RecordUsage(userID string, capability models.Capability, counterpartyRole *models.UserRole, metadata map[string]interface{}) error
}

type quotaService struct {
	entitlements EntitlementService
	usageRepo    repositories.UsageRepository
	now          func() time.Time
}

func NewQuotaService(entitlements EntitlementService, usageRepo repositories.UsageRepository) QuotaService {
	return &quotaService{
		entitlements: entitlements,
		usageRepo:    usageRepo,
		now:          time.Now,
	}
}

// windowStart returns the first instant of the current calendar month for
// monthly capabilities, or the zero time for lifetime ones.
func windowStart(capability models.Capability, now time.Time) time.Time {
	if capability.Window() == models.WindowLifetime {
		return time.Time{}
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

func (s *quotaService) Check(userID string, capability models.Capability, counterpartyRole *models.UserRole) (*QuotaDecision, error) {
	limit, err := s.entitlements.Resolve(userID, capability, counterpartyRole)
	if err != nil {
		return nil, err
	}

	role := counterpartyRole
	if !capability.RoleKeyed() {
		role = nil
	}

	used, err := s.usageRepo.CountSince(userID, capability, windowStart(capability, s.now()), role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	decision := &QuotaDecision{
		Limit:     limit,
		Used:      int(used),
		Remaining: limit.Remaining(int(used)),
	}

	switch {
	case limit.Denies():
		decision.Allowed = false
	case limit.IsUnlimited():
		decision.Allowed = true
	default:
		decision.Allowed = int(used) < limit.N
	}

	return decision, nil
}

func (s *quotaService) Enforce(userID string, capability models.Capability, counterpartyRole *models.UserRole) (*QuotaDecision, error) {
	decision, err := s.Check(userID, capability, counterpartyRole)
	if err != nil {
		return nil, err
	}

	if !decision.Allowed {
		if decision.Limit.Denies() {
			return decision, apperrors.ErrCapabilityForbidden.WithDetails(decision)
		}
		return decision, apperrors.ErrQuotaExceeded.WithDetails(decision)
	}

	return decision, nil
}

func (s *quotaService) RecordUsage(userID string, capability models.Capability, counterpartyRole *models.UserRole, metadata map[string]interface{}) error {
	if !capability.Valid() {
		return apperrors.ErrInvalidOperation("entitlement", "Unknown capability: "+string(capability))
	}

	event := &models.UsageEvent{
		UserID:     userID,
		Capability: capability,
	}

	if capability.RoleKeyed() && counterpartyRole != nil {
		role := *counterpartyRole
		event.CounterpartyRole = &role
	}

	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			logger.Warn("dropping unmarshalable usage metadata", "capability", capability, "error", err)
		} else {
			event.Metadata = datatypes.JSON(raw)
		}
	}

	if err := s.usageRepo.Append(event); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
