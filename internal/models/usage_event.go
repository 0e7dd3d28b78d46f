package models

import (
	"time"

	"gorm.io/datatypes"
)

// UsageEvent is an immutable record of a principal exercising a capability.
// Usage is always derived by counting these rows, never kept in a separate
// mutable counter, so counts cannot drift from the underlying events.
type UsageEvent struct {
	ID               string         `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID           string         `gorm:"type:uuid;not null;index:idx_usage_user_cap"`
	Capability       Capability     `gorm:"type:varchar(50);not null;index:idx_usage_user_cap"`
	CounterpartyRole *UserRole      `gorm:"type:varchar(20)"`
	Metadata         datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP;index"`
}

func (UsageEvent) TableName() string {
	return "usage_events"
}
