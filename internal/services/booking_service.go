package services

import (
	"fmt"

	"workhub_backend/internal/email"
	"workhub_backend/internal/logger"
	"workhub_backend/internal/models"
	"workhub_backend/internal/repositories"
	"workhub_backend/pkg/apperrors"
)

// CheckoutResult is the outcome of a paid booking: the booking itself plus
// what the points redemption actually contributed.
type CheckoutResult struct {
	Booking        *models.Booking `json:"booking"`
	PointsRedeemed int64           `json:"pointsRedeemed"`
	AmountDue      float64         `json:"amountDue"`
}

type BookingService interface {
	// Allocate books a timeslot for the user at the plan-discounted price.
	Allocate(userID, ownerID, timeslotID string, amount float64) (*models.Booking, error)

	// Checkout is Allocate with points redemption folded in: points are spent
	// first, and refunded if the allocation then fails for any reason.
	Checkout(userID, ownerID, timeslotID string, amount float64, redeemPoints int64) (*CheckoutResult, error)

	// Reschedule moves a booking to another of the owner's timeslots. The swap
	// is atomic: if the target is taken, the original timeslot stays booked.
	Reschedule(userID, bookingID, newTimeslotID string) (*models.Booking, error)

	MyBookings(userID string) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo  repositories.BookingRepository
	slotRepo     repositories.SlotRepository
	userRepo     repositories.UserRepository
	entitlements EntitlementService
	points       PointsService
	mail         email.Provider
}

func NewBookingService(
	bookingRepo repositories.BookingRepository,
	slotRepo repositories.SlotRepository,
	userRepo repositories.UserRepository,
	entitlements EntitlementService,
	points PointsService,
	mail email.Provider,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		userRepo:     userRepo,
		entitlements: entitlements,
		points:       points,
		mail:         mail,
	}
}

// mapBookingErr translates repository sentinels into the error classes the
// API exposes. Only aborted transactions come back as Internal, so only those
// are safe to retry.
func mapBookingErr(err error) error {
	switch {
	case apperrors.Is(err, repositories.ErrSlotNotFound),
		apperrors.Is(err, repositories.ErrTimeslotNotFound):
		return apperrors.ErrNotFound(err, "Timeslot not found")
	case apperrors.Is(err, repositories.ErrBookingNotFound):
		return apperrors.ErrNotFound(err, "Booking not found")
	case apperrors.Is(err, repositories.ErrTimeslotTaken):
		return apperrors.ErrConflict(err, "booking", "Timeslot is already booked")
	case apperrors.Is(err, repositories.ErrAmountMismatch):
		return apperrors.ValidationError("Amount does not match the current price for this timeslot")
	default:
		return apperrors.ErrInternal(err, "booking")
	}
}

func (s *bookingService) Allocate(userID, ownerID, timeslotID string, amount float64) (*models.Booking, error) {
	discountPct, err := s.entitlements.BookingDiscountPercent(userID)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.Allocate(userID, ownerID, timeslotID, amount, discountPct, 0)
	if err != nil {
		return nil, mapBookingErr(err)
	}

	go s.sendConfirmation(booking)
	return booking, nil
}

func (s *bookingService) Checkout(userID, ownerID, timeslotID string, amount float64, redeemPoints int64) (*CheckoutResult, error) {
	discountPct, err := s.entitlements.BookingDiscountPercent(userID)
	if err != nil {
		return nil, err
	}

	redemption := &RedeemResult{AmountDue: amount}
	if redeemPoints > 0 {
		reference := fmt.Sprintf("booking:%s:%s", ownerID, timeslotID)
		redemption, err = s.points.Redeem(userID, amount, redeemPoints, reference)
		if err != nil {
			return nil, err
		}
	}

	booking, err := s.bookingRepo.Allocate(userID, ownerID, timeslotID, amount, discountPct, redemption.PointsRedeemed)
	if err != nil {
		// The points left the balance before the slot was locked; give them
		// back so a failed checkout costs the user nothing.
		if redemption.PointsRedeemed > 0 {
			reference := fmt.Sprintf("booking-failed:%s:%s", ownerID, timeslotID)
			if refundErr := s.points.Refund(userID, redemption.PointsRedeemed, reference); refundErr != nil {
				logger.Error("failed to refund points after aborted checkout",
					"user_id", userID, "points", redemption.PointsRedeemed, "error", refundErr)
			}
		}
		return nil, mapBookingErr(err)
	}

	go s.sendConfirmation(booking)

	return &CheckoutResult{
		Booking:        booking,
		PointsRedeemed: redemption.PointsRedeemed,
		AmountDue:      booking.Amount - float64(redemption.RupeeValue),
	}, nil
}

func (s *bookingService) Reschedule(userID, bookingID, newTimeslotID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.Reschedule(userID, bookingID, newTimeslotID)
	if err != nil {
		return nil, mapBookingErr(err)
	}
	return booking, nil
}

func (s *bookingService) MyBookings(userID string) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return bookings, nil
}

// sendConfirmation runs off the request path; a mail failure never affects
// the booking.
func (s *bookingService) sendConfirmation(booking *models.Booking) {
	user, err := s.userRepo.FindByID(booking.UserID)
	if err != nil {
		logger.Warn("skipping booking confirmation email", "booking_id", booking.ID, "error", err)
		return
	}

	subject := "Your booking is confirmed"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your booking <b>%s</b> is confirmed. Amount: %.2f INR, points used: %d.</p>",
		user.Name, booking.ID, booking.Amount, booking.PointsUsed,
	)
	if err := s.mail.Send(user.Email, subject, body); err != nil {
		logger.Warn("booking confirmation email failed", "booking_id", booking.ID, "error", err)
	}
}
