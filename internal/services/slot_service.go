package services

import (
	"workhub_backend/internal/models"
	"workhub_backend/internal/repositories"
	"workhub_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type SlotService interface {
	// GetTimeslots returns the owner's full timeslot list, booked flags
	// included. An owner without a slot document has an empty list, not a 404.
	GetTimeslots(ownerID string) ([]models.Timeslot, error)

	// UpsertTimeslots replaces the owner's offered timeslots. Booked entries
	// survive the replace; they cannot be dropped or unbooked from here.
	UpsertTimeslots(ownerID string, timeslots []models.Timeslot) ([]models.Timeslot, error)
}

type slotService struct {
	slotRepo repositories.SlotRepository
}

func NewSlotService(slotRepo repositories.SlotRepository) SlotService {
	return &slotService{slotRepo: slotRepo}
}

func (s *slotService) GetTimeslots(ownerID string) ([]models.Timeslot, error) {
	slot, err := s.slotRepo.FindByOwner(ownerID)
	if err != nil {
		if err == repositories.ErrSlotNotFound {
			return []models.Timeslot{}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	timeslots, err := slot.ParseTimeslots()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return timeslots, nil
}

func (s *slotService) UpsertTimeslots(ownerID string, timeslots []models.Timeslot) ([]models.Timeslot, error) {
	seen := make(map[string]bool, len(timeslots))
	for i := range timeslots {
		ts := &timeslots[i]
		if ts.ID == "" {
			ts.ID = uuid.NewString()
		}
		if seen[ts.ID] {
			return nil, apperrors.ValidationError("Duplicate timeslot id: " + ts.ID)
		}
		seen[ts.ID] = true

		if !ts.EndTime.After(ts.StartTime) {
			return nil, apperrors.ValidationError("Timeslot end must be after start")
		}
		if ts.Price < 0 {
			return nil, apperrors.ValidationError("Timeslot price cannot be negative")
		}
	}

	slot, err := s.slotRepo.ReplaceTimeslots(ownerID, timeslots)
	if err != nil {
		return nil, apperrors.ErrInternal(err, "slots")
	}

	merged, err := slot.ParseTimeslots()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return merged, nil
}
