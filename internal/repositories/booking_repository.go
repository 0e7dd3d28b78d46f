package repositories

import (
	"errors"
	"math"
	"time"

	"workhub_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrTimeslotTaken   = errors.New("timeslot already booked")
	ErrAmountMismatch  = errors.New("booking amount does not match the computed price")
)

type BookingRepository interface {
	Allocate(userID, ownerID, timeslotID string, amount float64, discountPct int, pointsUsed int64) (*models.Booking, error)
	Reschedule(userID, bookingID, newTimeslotID string) (*models.Booking, error)
	FindByID(id string) (*models.Booking, error)
	FindByUser(userID string) ([]models.Booking, error)
}

type BookingRepositoryImpl struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &BookingRepositoryImpl{db: db}
}

// DiscountedPrice applies a plan's booking discount percentage, rounded to
// the nearest paisa.
func DiscountedPrice(price float64, discountPct int) float64 {
	if discountPct <= 0 {
		return price
	}
	if discountPct > 100 {
		discountPct = 100
	}
	return math.Round(price*float64(100-discountPct)) / 100
}

func amountMatches(given, expected float64) bool {
	return math.Abs(given-expected) < 0.005
}

// Allocate assigns a timeslot to exactly one requester. The slot row is
// locked for the duration of the transaction, so two concurrent requests
// cannot both observe "not booked": one commits, the other sees the booked
// flag and gets ErrTimeslotTaken. The slot update and the booking insert
// commit together or not at all; a failure after the flag is set cannot
// leave a phantom occupied slot.
func (r *BookingRepositoryImpl) Allocate(userID, ownerID, timeslotID string, amount float64, discountPct int, pointsUsed int64) (*models.Booking, error) {
	var booking *models.Booking

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var slot models.Slot
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("owner_id = ?", ownerID).First(&slot).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return err
		}

		timeslots, err := slot.ParseTimeslots()
		if err != nil {
			return err
		}

		idx := models.FindTimeslot(timeslots, timeslotID)
		if idx < 0 {
			return ErrTimeslotNotFound
		}
		if timeslots[idx].IsBooked {
			return ErrTimeslotTaken
		}

		expected := DiscountedPrice(timeslots[idx].Price, discountPct)
		if !amountMatches(amount, expected) {
			return ErrAmountMismatch
		}

		timeslots[idx].IsBooked = true
		timeslots[idx].BookedBy = userID
		if err := slot.SetTimeslots(timeslots); err != nil {
			return err
		}
		if err := tx.Model(&slot).Update("timeslots", slot.Timeslots).Error; err != nil {
			return err
		}

		now := time.Now()
		b := &models.Booking{
			UserID:      userID,
			OwnerID:     ownerID,
			TimeslotID:  timeslotID,
			Amount:      expected,
			PointsUsed:  pointsUsed,
			Status:      models.BookingStatusConfirmed,
			ConfirmedAt: &now,
		}
		if err := tx.Create(b).Error; err != nil {
			return err
		}

		booking = b
		return nil
	})

	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Reschedule frees the old timeslot and occupies the new one in a single
// transaction. If the new timeslot is taken the transaction aborts whole:
// the old timeslot stays booked by the original user and the booking is
// unchanged. "Free then fail" cannot happen.
func (r *BookingRepositoryImpl) Reschedule(userID, bookingID, newTimeslotID string) (*models.Booking, error) {
	var updated *models.Booking

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", bookingID, userID).First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		var slot models.Slot
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("owner_id = ?", booking.OwnerID).First(&slot).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return err
		}

		timeslots, err := slot.ParseTimeslots()
		if err != nil {
			return err
		}

		oldIdx := models.FindTimeslot(timeslots, booking.TimeslotID)
		newIdx := models.FindTimeslot(timeslots, newTimeslotID)
		if oldIdx < 0 || newIdx < 0 {
			return ErrTimeslotNotFound
		}

		if newIdx != oldIdx && timeslots[newIdx].IsBooked {
			return ErrTimeslotTaken
		}

		timeslots[oldIdx].IsBooked = false
		timeslots[oldIdx].BookedBy = ""
		timeslots[newIdx].IsBooked = true
		timeslots[newIdx].BookedBy = userID

		if err := slot.SetTimeslots(timeslots); err != nil {
			return err
		}
		if err := tx.Model(&slot).Update("timeslots", slot.Timeslots).Error; err != nil {
			return err
		}

		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"timeslot_id": newTimeslotID,
			"updated_at":  time.Now(),
		}).Error; err != nil {
			return err
		}

		booking.TimeslotID = newTimeslotID
		updated = &booking
		return nil
	})

	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *BookingRepositoryImpl) FindByID(id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) FindByUser(userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}
