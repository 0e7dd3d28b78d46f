package repositories

import (
	"errors"

	"workhub_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSlotNotFound     = errors.New("slot document not found")
	ErrTimeslotNotFound = errors.New("timeslot not found")
)

type SlotRepository interface {
	FindByOwner(ownerID string) (*models.Slot, error)
	Create(slot *models.Slot) error
	ReplaceTimeslots(ownerID string, timeslots []models.Timeslot) (*models.Slot, error)
}

type SlotRepositoryImpl struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &SlotRepositoryImpl{db: db}
}

func (r *SlotRepositoryImpl) FindByOwner(ownerID string) (*models.Slot, error) {
	var slot models.Slot
	err := r.db.Where("owner_id = ?", ownerID).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (r *SlotRepositoryImpl) Create(slot *models.Slot) error {
	return r.db.Create(slot).Error
}

// ReplaceTimeslots lets an owner maintain their timeslot list. Booked entries
// are preserved: an owner cannot drop or unbook a timeslot that a booking
// still references. The slot row is locked like in Allocate, so a booking
// committing between this read and write cannot be merged away.
func (r *SlotRepositoryImpl) ReplaceTimeslots(ownerID string, timeslots []models.Timeslot) (*models.Slot, error) {
	var updated *models.Slot

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var slot models.Slot
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("owner_id = ?", ownerID).First(&slot).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			// First write creates the document.
			slot = models.Slot{OwnerID: ownerID}
			if err := slot.SetTimeslots(timeslots); err != nil {
				return err
			}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
			updated = &slot
			return nil
		}

		existing, err := slot.ParseTimeslots()
		if err != nil {
			return err
		}

		merged := make([]models.Timeslot, 0, len(timeslots))
		seen := make(map[string]bool, len(timeslots))
		for _, ts := range timeslots {
			if idx := models.FindTimeslot(existing, ts.ID); idx >= 0 && existing[idx].IsBooked {
				// Keep the booked state authoritative.
				ts.IsBooked = true
				ts.BookedBy = existing[idx].BookedBy
			} else {
				ts.IsBooked = false
				ts.BookedBy = ""
			}
			merged = append(merged, ts)
			seen[ts.ID] = true
		}
		for _, ts := range existing {
			if ts.IsBooked && !seen[ts.ID] {
				merged = append(merged, ts)
			}
		}

		if err := slot.SetTimeslots(merged); err != nil {
			return err
		}
		if err := tx.Model(&slot).Update("timeslots", slot.Timeslots).Error; err != nil {
			return err
		}
		updated = &slot
		return nil
	})

	if err != nil {
		return nil, err
	}
	return updated, nil
}
