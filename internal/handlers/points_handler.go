package handlers

import (
	"net/http"

	"workhub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type PointsHandler struct {
	*BaseHandler
	pointsService services.PointsService
}

func NewPointsHandler(base *BaseHandler, pointsService services.PointsService) *PointsHandler {
	return &PointsHandler{BaseHandler: base, pointsService: pointsService}
}

func (h *PointsHandler) Balance(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	balance, err := h.pointsService.Balance(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

func (h *PointsHandler) History(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	transactions, err := h.pointsService.History(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
