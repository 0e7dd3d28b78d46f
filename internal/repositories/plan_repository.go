package repositories

import (
	"errors"
	"time"

	"workhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPlanNotFound       = errors.New("plan not found")
	ErrEnrollmentNotFound = errors.New("plan enrollment not found")
)

type PlanRepository interface {
	CreatePlan(plan *models.Plan) error
	FindPlanByID(id string) (*models.Plan, error)
	FindPlanByName(name string) (*models.Plan, error)
	FindActivePlans() ([]models.Plan, error)
	FindPlansByRole(role models.UserRole) ([]models.Plan, error)

	CreateEnrollment(enrollment *models.PlanEnrollment) error
	FindEnrollmentsByUser(userID string) ([]models.PlanEnrollment, error)
	FindActiveEnrollments(userID string, now time.Time) ([]models.PlanEnrollment, error)
	CancelEnrollment(userID string) error
	MarkExpiredEnrollments(now time.Time) (int64, error)
}

type PlanRepositoryImpl struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &PlanRepositoryImpl{db: db}
}

func (r *PlanRepositoryImpl) CreatePlan(plan *models.Plan) error {
	return r.db.Create(plan).Error
}

func (r *PlanRepositoryImpl) FindPlanByID(id string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) FindPlanByName(name string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.Where("name = ?", name).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) FindActivePlans() ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.Where("is_active = ?", true).Order("tier ASC, price ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepositoryImpl) FindPlansByRole(role models.UserRole) ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.Where("is_active = ? AND role = ?", true, role).
		Order("tier ASC, price ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepositoryImpl) CreateEnrollment(enrollment *models.PlanEnrollment) error {
	return r.db.Create(enrollment).Error
}

func (r *PlanRepositoryImpl) FindEnrollmentsByUser(userID string) ([]models.PlanEnrollment, error) {
	var enrollments []models.PlanEnrollment
	err := r.db.Preload("Plan").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&enrollments).Error
	return enrollments, err
}

// FindActiveEnrollments returns enrollments that are active under the
// lazy-expiry rule: stored status active AND end date in the future. Stale
// "active" rows past their end date are excluded here, not relied on to have
// been swept.
func (r *PlanRepositoryImpl) FindActiveEnrollments(userID string, now time.Time) ([]models.PlanEnrollment, error) {
	var enrollments []models.PlanEnrollment
	err := r.db.Preload("Plan").
		Where("user_id = ? AND status = ? AND end_date > ?", userID, models.EnrollmentStatusActive, now).
		Find(&enrollments).Error
	return enrollments, err
}

func (r *PlanRepositoryImpl) CancelEnrollment(userID string) error {
	result := r.db.Model(&models.PlanEnrollment{}).
		Where("user_id = ? AND status = ?", userID, models.EnrollmentStatusActive).
		Updates(map[string]interface{}{
			"status":       models.EnrollmentStatusCancelled,
			"cancelled_at": time.Now(),
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEnrollmentNotFound
	}
	return nil
}

// MarkExpiredEnrollments flips stale active rows to expired. Purely
// housekeeping: entitlement resolution never depends on this sweep.
func (r *PlanRepositoryImpl) MarkExpiredEnrollments(now time.Time) (int64, error) {
	result := r.db.Model(&models.PlanEnrollment{}).
		Where("status = ? AND end_date < ?", models.EnrollmentStatusActive, now).
		Updates(map[string]interface{}{
			"status":     models.EnrollmentStatusExpired,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
