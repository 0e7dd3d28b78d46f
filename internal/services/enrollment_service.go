package services

import (
	"time"

	"workhub_backend/internal/models"
	"workhub_backend/internal/repositories"
	"workhub_backend/pkg/apperrors"
)

type EnrollmentService interface {
	GetPlans(role *models.UserRole) ([]models.Plan, error)
	GetPlan(id string) (*models.Plan, error)

	// Subscribe records an enrollment for a plan the user has already paid
	// for. Payment collection happens upstream; this only books the fact.
	Subscribe(userID, planID string) (*models.PlanEnrollment, error)

	MyEnrollments(userID string) ([]models.PlanEnrollment, error)
	Cancel(userID string) error

	// ExpireStale flips active enrollments past their end date to expired.
	// Resolution does not depend on it; it keeps reporting queries honest.
	ExpireStale(now time.Time) (int64, error)
}

type enrollmentService struct {
	planRepo repositories.PlanRepository
	now      func() time.Time
}

func NewEnrollmentService(planRepo repositories.PlanRepository) EnrollmentService {
	return &enrollmentService{
		planRepo: planRepo,
		now:      time.Now,
	}
}

func (s *enrollmentService) GetPlans(role *models.UserRole) ([]models.Plan, error) {
	var (
		plans []models.Plan
		err   error
	)
	if role != nil {
		plans, err = s.planRepo.FindPlansByRole(*role)
	} else {
		plans, err = s.planRepo.FindActivePlans()
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plans, nil
}

func (s *enrollmentService) GetPlan(id string) (*models.Plan, error) {
	plan, err := s.planRepo.FindPlanByID(id)
	if err != nil {
		if err == repositories.ErrPlanNotFound {
			return nil, apperrors.ErrNotFound(err, "Plan not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

// calculateEndDate maps a plan duration onto a concrete expiry.
func calculateEndDate(start time.Time, duration string) time.Time {
	switch duration {
	case "yearly":
		return start.AddDate(1, 0, 0)
	case "quarterly":
		return start.AddDate(0, 3, 0)
	default: // monthly
		return start.AddDate(0, 1, 0)
	}
}

func (s *enrollmentService) Subscribe(userID, planID string) (*models.PlanEnrollment, error) {
	plan, err := s.GetPlan(planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, apperrors.ErrInvalidOperation("plans", "Plan is no longer offered")
	}

	now := s.now()
	enrollment := &models.PlanEnrollment{
		UserID:    userID,
		PlanID:    plan.ID,
		Status:    models.EnrollmentStatusActive,
		StartDate: now,
		EndDate:   calculateEndDate(now, plan.Duration),
	}

	if err := s.planRepo.CreateEnrollment(enrollment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	enrollment.Plan = *plan
	return enrollment, nil
}

func (s *enrollmentService) MyEnrollments(userID string) ([]models.PlanEnrollment, error) {
	enrollments, err := s.planRepo.FindEnrollmentsByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return enrollments, nil
}

func (s *enrollmentService) Cancel(userID string) error {
	err := s.planRepo.CancelEnrollment(userID)
	if err != nil {
		if err == repositories.ErrEnrollmentNotFound {
			return apperrors.ErrNotFound(err, "No active enrollment to cancel")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *enrollmentService) ExpireStale(now time.Time) (int64, error) {
	return s.planRepo.MarkExpiredEnrollments(now)
}
