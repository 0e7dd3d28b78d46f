package database

import (
	"workhub_backend/internal/logger"
	"workhub_backend/internal/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults on BaseModel need the extension.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Plan{},
		&models.PlanEnrollment{},
		&models.UsageEvent{},
		&models.Slot{},
		&models.Booking{},
		&models.Job{},
		&models.JobApplication{},
		&models.PointsTransaction{},
	)
}

// SeedPlans inserts the default plan catalog if it is missing. Existing plans
// are left untouched so operators can tune limits in place.
func SeedPlans(db *gorm.DB) error {
	plans := defaultPlans()

	for i := range plans {
		plan := &plans[i]

		var count int64
		if err := db.Model(&models.Plan{}).Where("name = ?", plan.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(plan).Error; err != nil {
			return err
		}
		logger.Info("seeded plan", "name", plan.Name, "role", plan.Role, "tier", plan.Tier)
	}
	return nil
}

func defaultPlans() []models.Plan {
	return []models.Plan{
		{
			Name:     "worker_pro",
			Role:     models.UserRoleWorker,
			Tier:     1,
			Price:    299,
			Duration: "monthly",
			Limits: models.MustLimitsJSON(models.PlanLimits{
				models.CapabilityApplyJob:        models.UniformLimit(models.Unlimited()),
				models.CapabilitySaveProfile:     models.UniformLimit(models.Bounded(100)),
				models.CapabilityBookingDiscount: models.UniformLimit(models.Bounded(5)),
			}),
			IsActive: true,
		},
		{
			Name:     "employer_starter",
			Role:     models.UserRoleEmployer,
			Tier:     1,
			Price:    499,
			Duration: "monthly",
			Limits: models.MustLimitsJSON(models.PlanLimits{
				models.CapabilityPostJob: models.UniformLimit(models.Bounded(10)),
				models.CapabilityUnlockContact: models.RoleLimit(map[models.UserRole]models.Limit{
					models.UserRoleWorker:    models.Bounded(30),
					models.UserRoleAssistant: models.Bounded(10),
				}),
			}),
			IsActive: true,
		},
		{
			Name:     "employer_elite",
			Role:     models.UserRoleEmployer,
			Tier:     2,
			Price:    1999,
			Duration: "monthly",
			Limits: models.MustLimitsJSON(models.PlanLimits{
				models.CapabilityPostJob: models.UniformLimit(models.Unlimited()),
				models.CapabilityUnlockContact: models.RoleLimit(map[models.UserRole]models.Limit{
					models.UserRoleWorker:     models.Unlimited(),
					models.UserRoleAssistant:  models.Unlimited(),
					models.UserRoleContractor: models.Bounded(50),
				}),
				models.CapabilityBookingDiscount: models.UniformLimit(models.Bounded(10)),
			}),
			IsActive: true,
		},
		{
			Name:     "contractor_pro",
			Role:     models.UserRoleContractor,
			Tier:     1,
			Price:    799,
			Duration: "monthly",
			Limits: models.MustLimitsJSON(models.PlanLimits{
				models.CapabilityPostJob:     models.UniformLimit(models.Bounded(25)),
				models.CapabilitySaveProfile: models.UniformLimit(models.Unlimited()),
				models.CapabilityUnlockContact: models.RoleLimit(map[models.UserRole]models.Limit{
					models.UserRoleWorker: models.Bounded(100),
				}),
				models.CapabilityBookingDiscount: models.UniformLimit(models.Bounded(15)),
			}),
			IsActive: true,
		},
	}
}
