package handlers

import (
	"net/http"

	"workhub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	*BaseHandler
	bookingService services.BookingService
}

func NewBookingHandler(base *BaseHandler, bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{BaseHandler: base, bookingService: bookingService}
}

type checkoutRequest struct {
	OwnerID      string  `json:"ownerId" binding:"required" validate:"required,uuid"`
	TimeslotID   string  `json:"timeslotId" binding:"required" validate:"required"`
	Amount       float64 `json:"amount" binding:"required" validate:"required,gt=0"`
	RedeemPoints int64   `json:"redeemPoints" validate:"gte=0"`
}

// Checkout books a timeslot, optionally spending reward points against the
// price. A lost race on the timeslot returns 409 and leaves the points
// balance untouched.
func (h *BookingHandler) Checkout(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req checkoutRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	result, err := h.bookingService.Checkout(userID, req.OwnerID, req.TimeslotID, req.Amount, req.RedeemPoints)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type rescheduleRequest struct {
	NewTimeslotID string `json:"newTimeslotId" binding:"required" validate:"required"`
}

func (h *BookingHandler) Reschedule(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	bookingID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	var req rescheduleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.Reschedule(userID, bookingID, req.NewTimeslotID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) MyBookings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.MyBookings(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
