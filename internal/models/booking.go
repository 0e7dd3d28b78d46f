package models

import "time"

// Booking is created only as the result of a successful slot allocation; its
// TimeslotID always points at a timeslot currently booked by the same user.
type Booking struct {
	BaseModel
	UserID      string  `gorm:"type:uuid;not null;index"`
	OwnerID     string  `gorm:"type:uuid;not null;index"`
	TimeslotID  string  `gorm:"type:uuid;not null"`
	Amount      float64 `gorm:"not null"`
	PointsUsed  int64   `gorm:"not null;default:0"`
	Status      BookingStatus `gorm:"type:varchar(20);default:'confirmed'"`
	ConfirmedAt *time.Time
	CancelledAt *time.Time
}
