package repositories

import (
	"time"

	"workhub_backend/internal/models"

	"gorm.io/gorm"
)

type UsageRepository interface {
	Append(event *models.UsageEvent) error
	CountSince(userID string, capability models.Capability, windowStart time.Time, counterpartyRole *models.UserRole) (int64, error)
}

type UsageRepositoryImpl struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &UsageRepositoryImpl{db: db}
}

// Append inserts an immutable usage event. Events are never updated or
// deleted.
func (r *UsageRepositoryImpl) Append(event *models.UsageEvent) error {
	return r.db.Create(event).Error
}

// CountSince aggregates live over the event log. No cached counter exists to
// drift out of sync with the events.
func (r *UsageRepositoryImpl) CountSince(userID string, capability models.Capability, windowStart time.Time, counterpartyRole *models.UserRole) (int64, error) {
	query := r.db.Model(&models.UsageEvent{}).
		Where("user_id = ? AND capability = ? AND created_at >= ?", userID, capability, windowStart)

	if counterpartyRole != nil {
		query = query.Where("counterparty_role = ?", *counterpartyRole)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}
