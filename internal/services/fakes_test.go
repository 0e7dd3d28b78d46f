package services

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"workhub_backend/internal/config"
	"workhub_backend/internal/logger"
	"workhub_backend/internal/models"
	"workhub_backend/internal/repositories"
)

func TestMain(m *testing.M) {
	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Points.RupeeRate = 10
	cfg.Points.CapPercent = 50
	config.AppConfig = cfg

	logger.Init("development")
	os.Exit(m.Run())
}

// In-memory repository fakes. The booking and points fakes reproduce the
// atomicity guarantees of the real implementations (single writer per slot
// document, conditional balance decrement) so concurrency behavior can be
// exercised without a database.

type fakePlanRepo struct {
	mu          sync.Mutex
	plans       map[string]*models.Plan
	enrollments []models.PlanEnrollment
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[string]*models.Plan)}
}

func (f *fakePlanRepo) CreatePlan(plan *models.Plan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if plan.ID == "" {
		plan.ID = fmt.Sprintf("plan-%d", len(f.plans)+1)
	}
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakePlanRepo) FindPlanByID(id string) (*models.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	plan, ok := f.plans[id]
	if !ok {
		return nil, repositories.ErrPlanNotFound
	}
	return plan, nil
}

func (f *fakePlanRepo) FindPlanByName(name string) (*models.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.plans {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, repositories.ErrPlanNotFound
}

func (f *fakePlanRepo) FindActivePlans() ([]models.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Plan
	for _, p := range f.plans {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) FindPlansByRole(role models.UserRole) ([]models.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Plan
	for _, p := range f.plans {
		if p.IsActive && p.Role == role {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) CreateEnrollment(enrollment *models.PlanEnrollment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if enrollment.ID == "" {
		enrollment.ID = fmt.Sprintf("enr-%d", len(f.enrollments)+1)
	}
	if plan, ok := f.plans[enrollment.PlanID]; ok {
		enrollment.Plan = *plan
	}
	f.enrollments = append(f.enrollments, *enrollment)
	return nil
}

func (f *fakePlanRepo) FindEnrollmentsByUser(userID string) ([]models.PlanEnrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PlanEnrollment
	for _, e := range f.enrollments {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) FindActiveEnrollments(userID string, now time.Time) ([]models.PlanEnrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PlanEnrollment
	for _, e := range f.enrollments {
		if e.UserID == userID && e.Status == models.EnrollmentStatusActive && e.EndDate.After(now) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) CancelEnrollment(userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cancelled := false
	now := time.Now()
	for i := range f.enrollments {
		if f.enrollments[i].UserID == userID && f.enrollments[i].Status == models.EnrollmentStatusActive {
			f.enrollments[i].Status = models.EnrollmentStatusCancelled
			f.enrollments[i].CancelledAt = &now
			cancelled = true
		}
	}
	if !cancelled {
		return repositories.ErrEnrollmentNotFound
	}
	return nil
}

func (f *fakePlanRepo) MarkExpiredEnrollments(now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for i := range f.enrollments {
		if f.enrollments[i].Status == models.EnrollmentStatusActive && f.enrollments[i].EndDate.Before(now) {
			f.enrollments[i].Status = models.EnrollmentStatusExpired
			n++
		}
	}
	return n, nil
}

type fakeUsageRepo struct {
	mu     sync.Mutex
	events []models.UsageEvent
}

func (f *fakeUsageRepo) Append(event *models.UsageEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := *event
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	f.events = append(f.events, e)
	return nil
}

func (f *fakeUsageRepo) CountSince(userID string, capability models.Capability, windowStart time.Time, counterpartyRole *models.UserRole) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, e := range f.events {
		if e.UserID != userID || e.Capability != capability {
			continue
		}
		if e.CreatedAt.Before(windowStart) {
			continue
		}
		if counterpartyRole != nil {
			if e.CounterpartyRole == nil || *e.CounterpartyRole != *counterpartyRole {
				continue
			}
		}
		count++
	}
	return count, nil
}

type fakePointsRepo struct {
	mu           sync.Mutex
	balances     map[string]int64
	transactions []models.PointsTransaction
	failAudit    bool
}

func newFakePointsRepo() *fakePointsRepo {
	return &fakePointsRepo{balances: make(map[string]int64)}
}

func (f *fakePointsRepo) GetBalance(userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	balance, ok := f.balances[userID]
	if !ok {
		return 0, repositories.ErrUserNotFound
	}
	return balance, nil
}

func (f *fakePointsRepo) TryDecrement(userID string, points int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	balance, ok := f.balances[userID]
	if !ok || balance < points {
		return false, nil
	}
	f.balances[userID] = balance - points
	return true, nil
}

func (f *fakePointsRepo) Increment(userID string, points int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.balances[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	f.balances[userID] += points
	return nil
}

func (f *fakePointsRepo) AppendTransaction(tx *models.PointsTransaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAudit {
		return fmt.Errorf("audit store unavailable")
	}
	f.transactions = append(f.transactions, *tx)
	return nil
}

func (f *fakePointsRepo) FindTransactionsByUser(userID string) ([]models.PointsTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PointsTransaction
	for _, tx := range f.transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

// fakeSlotStore backs both the slot and booking fakes so allocations and
// owner updates contend on the same documents, like rows in one database.
type fakeSlotStore struct {
	mu       sync.Mutex
	rowLocks map[string]*sync.Mutex
	slots    map[string][]models.Timeslot // ownerID -> timeslots
	bookings map[string]*models.Booking
	nextID   int
}

func newFakeSlotStore() *fakeSlotStore {
	return &fakeSlotStore{
		rowLocks: make(map[string]*sync.Mutex),
		slots:    make(map[string][]models.Timeslot),
		bookings: make(map[string]*models.Booking),
	}
}

// lockRow stands in for SELECT ... FOR UPDATE on a slot document: every
// writer touching the same owner's row holds this mutex for the length of
// its transaction, so replaces and allocations serialize like they do
// against the real repositories.
func (s *fakeSlotStore) lockRow(ownerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rowLocks[ownerID]
	if !ok {
		l = &sync.Mutex{}
		s.rowLocks[ownerID] = l
	}
	return l
}

type fakeSlotRepo struct {
	store *fakeSlotStore

	// betweenReadAndWrite, when set, runs after ReplaceTimeslots has read the
	// existing document and before it writes the merge back, with the row
	// lock held. Tests use it to interleave a concurrent writer.
	betweenReadAndWrite func()
}

func (f *fakeSlotRepo) FindByOwner(ownerID string) (*models.Slot, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	timeslots, ok := f.store.slots[ownerID]
	if !ok {
		return nil, repositories.ErrSlotNotFound
	}
	slot := &models.Slot{OwnerID: ownerID}
	if err := slot.SetTimeslots(timeslots); err != nil {
		return nil, err
	}
	return slot, nil
}

func (f *fakeSlotRepo) Create(slot *models.Slot) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	timeslots, err := slot.ParseTimeslots()
	if err != nil {
		return err
	}
	f.store.slots[slot.OwnerID] = timeslots
	return nil
}

func (f *fakeSlotRepo) ReplaceTimeslots(ownerID string, timeslots []models.Timeslot) (*models.Slot, error) {
	row := f.store.lockRow(ownerID)
	row.Lock()
	defer row.Unlock()

	f.store.mu.Lock()
	existing := append([]models.Timeslot(nil), f.store.slots[ownerID]...)
	f.store.mu.Unlock()

	if f.betweenReadAndWrite != nil {
		f.betweenReadAndWrite()
	}

	merged := make([]models.Timeslot, 0, len(timeslots))
	seen := make(map[string]bool, len(timeslots))
	for _, ts := range timeslots {
		if idx := models.FindTimeslot(existing, ts.ID); idx >= 0 && existing[idx].IsBooked {
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

	f.store.mu.Lock()
	f.store.slots[ownerID] = merged
	f.store.mu.Unlock()

	slot := &models.Slot{OwnerID: ownerID}
	if err := slot.SetTimeslots(merged); err != nil {
		return nil, err
	}
	return slot, nil
}

type fakeBookingRepo struct {
	store *fakeSlotStore
}

func (f *fakeBookingRepo) Allocate(userID, ownerID, timeslotID string, amount float64, discountPct int, pointsUsed int64) (*models.Booking, error) {
	row := f.store.lockRow(ownerID)
	row.Lock()
	defer row.Unlock()

	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	timeslots, ok := f.store.slots[ownerID]
	if !ok {
		return nil, repositories.ErrSlotNotFound
	}
	idx := models.FindTimeslot(timeslots, timeslotID)
	if idx < 0 {
		return nil, repositories.ErrTimeslotNotFound
	}
	if timeslots[idx].IsBooked {
		return nil, repositories.ErrTimeslotTaken
	}

	expected := repositories.DiscountedPrice(timeslots[idx].Price, discountPct)
	if amount < expected-0.005 || amount > expected+0.005 {
		return nil, repositories.ErrAmountMismatch
	}

	timeslots[idx].IsBooked = true
	timeslots[idx].BookedBy = userID

	f.store.nextID++
	now := time.Now()
	booking := &models.Booking{
		UserID:      userID,
		OwnerID:     ownerID,
		TimeslotID:  timeslotID,
		Amount:      expected,
		PointsUsed:  pointsUsed,
		Status:      models.BookingStatusConfirmed,
		ConfirmedAt: &now,
	}
	booking.ID = fmt.Sprintf("booking-%d", f.store.nextID)
	f.store.bookings[booking.ID] = booking
	return booking, nil
}

func (f *fakeBookingRepo) Reschedule(userID, bookingID, newTimeslotID string) (*models.Booking, error) {
	f.store.mu.Lock()
	booking, ok := f.store.bookings[bookingID]
	if !ok || booking.UserID != userID {
		f.store.mu.Unlock()
		return nil, repositories.ErrBookingNotFound
	}
	ownerID := booking.OwnerID
	f.store.mu.Unlock()

	row := f.store.lockRow(ownerID)
	row.Lock()
	defer row.Unlock()

	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	timeslots, ok := f.store.slots[ownerID]
	if !ok {
		return nil, repositories.ErrSlotNotFound
	}
	oldIdx := models.FindTimeslot(timeslots, booking.TimeslotID)
	newIdx := models.FindTimeslot(timeslots, newTimeslotID)
	if oldIdx < 0 || newIdx < 0 {
		return nil, repositories.ErrTimeslotNotFound
	}
	if newIdx != oldIdx && timeslots[newIdx].IsBooked {
		return nil, repositories.ErrTimeslotTaken
	}

	timeslots[oldIdx].IsBooked = false
	timeslots[oldIdx].BookedBy = ""
	timeslots[newIdx].IsBooked = true
	timeslots[newIdx].BookedBy = userID
	booking.TimeslotID = newTimeslotID
	return booking, nil
}

func (f *fakeBookingRepo) FindByID(id string) (*models.Booking, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	booking, ok := f.store.bookings[id]
	if !ok {
		return nil, repositories.ErrBookingNotFound
	}
	return booking, nil
}

func (f *fakeBookingRepo) FindByUser(userID string) ([]models.Booking, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []models.Booking
	for _, b := range f.store.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeMail struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeMail) Send(to, subject, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to+": "+subject)
	return nil
}
