package models

// User is the authenticated principal: identity, role and the reward-points
// balance. PointsBalance is mutated only through the points repository's
// guarded updates and never goes below zero.
type User struct {
	BaseModel
	Email         string     `gorm:"uniqueIndex;not null"`
	PasswordHash  string     `gorm:"not null" json:"-"`
	Name          string     `gorm:"not null"`
	Phone         string     `gorm:"type:varchar(32)"`
	Role          UserRole   `gorm:"type:varchar(20);not null;index"`
	Status        UserStatus `gorm:"type:varchar(20);default:'active'"`
	PointsBalance int64      `gorm:"not null;default:0"`
}
