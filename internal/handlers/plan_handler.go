package handlers

import (
	"net/http"

	"workhub_backend/internal/models"
	"workhub_backend/internal/services"
	"workhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	*BaseHandler
	enrollmentService  services.EnrollmentService
	entitlementService services.EntitlementService
	quotaService       services.QuotaService
}

func NewPlanHandler(
	base *BaseHandler,
	enrollmentService services.EnrollmentService,
	entitlementService services.EntitlementService,
	quotaService services.QuotaService,
) *PlanHandler {
	return &PlanHandler{
		BaseHandler:        base,
		enrollmentService:  enrollmentService,
		entitlementService: entitlementService,
		quotaService:       quotaService,
	}
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	var role *models.UserRole
	if roleStr := c.Query("role"); roleStr != "" {
		r := models.UserRole(roleStr)
		role = &r
	}

	plans, err := h.enrollmentService.GetPlans(role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	plan, err := h.enrollmentService.GetPlan(planID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

type subscribeRequest struct {
	PlanID string `json:"planId" binding:"required" validate:"required,uuid"`
}

func (h *PlanHandler) Subscribe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req subscribeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	enrollment, err := h.enrollmentService.Subscribe(userID, req.PlanID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

func (h *PlanHandler) MyEnrollments(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	enrollments, err := h.enrollmentService.MyEnrollments(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrollments": enrollments})
}

func (h *PlanHandler) CancelEnrollment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.enrollmentService.Cancel(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// MyPlan returns the plan backing the caller's winning enrollment, or null on
// the free tier.
func (h *PlanHandler) MyPlan(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	plan, err := h.entitlementService.ActivePlan(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// CheckEntitlement reports the caller's current standing for a capability
// without consuming anything.
func (h *PlanHandler) CheckEntitlement(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	capabilityStr, ok := h.RequireParam(c, "capability")
	if !ok {
		return
	}

	capability := models.Capability(capabilityStr)
	if !capability.Valid() {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unknown capability: "+capabilityStr))
		return
	}

	var role *models.UserRole
	if roleStr := c.Query("counterpartyRole"); roleStr != "" {
		r := models.UserRole(roleStr)
		role = &r
	}

	decision, err := h.quotaService.Check(userID, capability, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, decision)
}
