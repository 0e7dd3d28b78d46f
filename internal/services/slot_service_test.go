package services

import (
	"testing"
	"time"

	"workhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertTimeslotsValidation(t *testing.T) {
	t.Parallel()
	svc := NewSlotService(&fakeSlotRepo{store: newFakeSlotStore()})

	start := testNow.Add(24 * time.Hour)

	_, err := svc.UpsertTimeslots("owner-1", []models.Timeslot{
		{ID: "ts-1", StartTime: start, EndTime: start.Add(-time.Hour), Price: 100},
	})
	assert.Error(t, err, "end before start")

	_, err = svc.UpsertTimeslots("owner-1", []models.Timeslot{
		{ID: "ts-1", StartTime: start, EndTime: start.Add(time.Hour), Price: -1},
	})
	assert.Error(t, err, "negative price")

	_, err = svc.UpsertTimeslots("owner-1", []models.Timeslot{
		{ID: "ts-1", StartTime: start, EndTime: start.Add(time.Hour), Price: 100},
		{ID: "ts-1", StartTime: start, EndTime: start.Add(time.Hour), Price: 100},
	})
	assert.Error(t, err, "duplicate ids")
}

func TestUpsertTimeslotsAssignsIDsAndStripsBookedFlags(t *testing.T) {
	t.Parallel()
	svc := NewSlotService(&fakeSlotRepo{store: newFakeSlotStore()})

	start := testNow.Add(24 * time.Hour)
	timeslots, err := svc.UpsertTimeslots("owner-1", []models.Timeslot{
		{StartTime: start, EndTime: start.Add(time.Hour), Price: 100, IsBooked: true, BookedBy: "intruder"},
	})
	require.NoError(t, err)
	require.Len(t, timeslots, 1)
	assert.NotEmpty(t, timeslots[0].ID)
	assert.False(t, timeslots[0].IsBooked, "clients cannot forge booked state")
	assert.Empty(t, timeslots[0].BookedBy)
}

func TestUpsertTimeslotsPreservesBookedEntries(t *testing.T) {
	t.Parallel()
	store := newFakeSlotStore()
	svc := NewSlotService(&fakeSlotRepo{store: store})
	bookings := &fakeBookingRepo{store: store}

	start := testNow.Add(24 * time.Hour)
	_, err := svc.UpsertTimeslots("owner-1", []models.Timeslot{
		{ID: "ts-1", StartTime: start, EndTime: start.Add(time.Hour), Price: 100},
		{ID: "ts-2", StartTime: start.Add(time.Hour), EndTime: start.Add(2 * time.Hour), Price: 100},
	})
	require.NoError(t, err)

	_, err = bookings.Allocate("user-1", "owner-1", "ts-1", 100, 0, 0)
	require.NoError(t, err)

	// The owner drops both slots; the booked one survives anyway.
	timeslots, err := svc.UpsertTimeslots("owner-1", nil)
	require.NoError(t, err)
	require.Len(t, timeslots, 1)
	assert.Equal(t, "ts-1", timeslots[0].ID)
	assert.True(t, timeslots[0].IsBooked)
	assert.Equal(t, "user-1", timeslots[0].BookedBy)
}

// A booking that lands while the owner's replace is between its read and its
// write must not be merged away. Both sides hold the same row lock, so the
// allocation has to wait for the replace to commit and then books against the
// fresh list instead of being overwritten by a stale merge.
func TestUpsertTimeslotsSerializesWithAllocation(t *testing.T) {
	t.Parallel()
	store := newFakeSlotStore()
	repo := &fakeSlotRepo{store: store}
	svc := NewSlotService(repo)
	bookings := &fakeBookingRepo{store: store}

	start := testNow.Add(24 * time.Hour)
	offered := []models.Timeslot{
		{ID: "ts-1", StartTime: start, EndTime: start.Add(time.Hour), Price: 100},
		{ID: "ts-2", StartTime: start.Add(time.Hour), EndTime: start.Add(2 * time.Hour), Price: 100},
	}
	_, err := svc.UpsertTimeslots("owner-1", offered)
	require.NoError(t, err)

	var allocErr error
	allocDone := make(chan struct{})
	repo.betweenReadAndWrite = func() {
		repo.betweenReadAndWrite = nil
		go func() {
			_, allocErr = bookings.Allocate("user-1", "owner-1", "ts-1", 100, 0, 0)
			close(allocDone)
		}()
		select {
		case <-allocDone:
			t.Error("allocation went through while the replace still held the slot row")
		case <-time.After(50 * time.Millisecond):
		}
	}

	replaced, err := svc.UpsertTimeslots("owner-1", offered)
	require.NoError(t, err)
	require.Len(t, replaced, 2)

	<-allocDone
	require.NoError(t, allocErr)

	final, err := svc.GetTimeslots("owner-1")
	require.NoError(t, err)
	idx := models.FindTimeslot(final, "ts-1")
	require.GreaterOrEqual(t, idx, 0)
	assert.True(t, final[idx].IsBooked, "booking concurrent with the replace must survive it")
	assert.Equal(t, "user-1", final[idx].BookedBy)
}

func TestGetTimeslotsMissingOwnerIsEmpty(t *testing.T) {
	t.Parallel()
	svc := NewSlotService(&fakeSlotRepo{store: newFakeSlotStore()})

	timeslots, err := svc.GetTimeslots("nobody")
	require.NoError(t, err)
	assert.Empty(t, timeslots)
}
