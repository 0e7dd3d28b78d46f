package handlers

import (
	"net/http"

	"workhub_backend/internal/models"
	"workhub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	*BaseHandler
	slotService services.SlotService
}

func NewSlotHandler(base *BaseHandler, slotService services.SlotService) *SlotHandler {
	return &SlotHandler{BaseHandler: base, slotService: slotService}
}

func (h *SlotHandler) GetTimeslots(c *gin.Context) {
	ownerID, ok := h.RequireParam(c, "ownerId")
	if !ok {
		return
	}

	timeslots, err := h.slotService.GetTimeslots(ownerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeslots": timeslots})
}

type upsertTimeslotsRequest struct {
	Timeslots []models.Timeslot `json:"timeslots" binding:"required" validate:"required,dive"`
}

// UpsertTimeslots replaces the caller's offered timeslots.
func (h *SlotHandler) UpsertTimeslots(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req upsertTimeslotsRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	timeslots, err := h.slotService.UpsertTimeslots(userID, req.Timeslots)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeslots": timeslots})
}
