package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Timeslot is one bookable entry inside a Slot document. Entries are addressed
// by ID, never by position, so owners can add and remove slots without
// invalidating bookings.
type Timeslot struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Price     float64   `json:"price"`
	IsBooked  bool      `json:"is_booked"`
	BookedBy  string    `json:"booked_by,omitempty"`
}

// Slot is the per-owner timeslot document: one row per resource owner, the
// timeslot list embedded as JSON. Within one document at most one booking may
// hold a given timeslot ID while is_booked is true.
type Slot struct {
	BaseModel
	OwnerID   string         `gorm:"type:uuid;not null;uniqueIndex"`
	Timeslots datatypes.JSON `gorm:"type:jsonb"`
}

func (s *Slot) ParseTimeslots() ([]Timeslot, error) {
	if len(s.Timeslots) == 0 {
		return nil, nil
	}
	var slots []Timeslot
	if err := json.Unmarshal(s.Timeslots, &slots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal timeslots of slot %s: %w", s.ID, err)
	}
	return slots, nil
}

func (s *Slot) SetTimeslots(slots []Timeslot) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("failed to marshal timeslots: %w", err)
	}
	s.Timeslots = datatypes.JSON(raw)
	return nil
}

// FindTimeslot returns the index of the timeslot with the given ID, or -1.
func FindTimeslot(slots []Timeslot, timeslotID string) int {
	for i := range slots {
		if slots[i].ID == timeslotID {
			return i
		}
	}
	return -1
}
