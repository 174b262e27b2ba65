package controllers

import (
	"github.com/gin-gonic/gin"

	"hostelhub/internal/models/request_models"
	"hostelhub/internal/services"
	"hostelhub/pkg/utils"
)

type SubscriptionController struct {
	subscriptionService services.SubscriptionServiceInterface
}

func NewSubscriptionController(subscriptionService services.SubscriptionServiceInterface) *SubscriptionController {
	return &SubscriptionController{subscriptionService: subscriptionService}
}

// GetMine godoc
// @Summary Subscription of my hostel
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Hostel ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/owner/hostels/{id}/subscription [get]
func (s *SubscriptionController) GetMine(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	hostelID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	sub, err := s.subscriptionService.GetForOwner(c.Request.Context(), ownerID, hostelID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, sub, "Subscription fetched successfully")
}

// Get godoc
// @Summary Subscription of a hostel
// @Tags Admin
// @Produce json
// @Param id path string true "Hostel ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/hostels/{id}/subscription [get]
func (s *SubscriptionController) Get(c *gin.Context) {
	hostelID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	sub, err := s.subscriptionService.Get(c.Request.Context(), hostelID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, sub, "Subscription fetched successfully")
}

// Activate godoc
// @Summary Activate or renew a subscription
// @Description Starts today and runs for the given number of months
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Hostel ID"
// @Param request body request_models.ActivateSubscriptionRequest true "Payment details"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/hostels/{id}/subscription/activate [post]
func (s *SubscriptionController) Activate(c *gin.Context) {
	hostelID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.ActivateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.BindingError(err))
		return
	}

	sub, err := s.subscriptionService.Activate(c.Request.Context(), hostelID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, sub, "Subscription activated")
}

// Cancel godoc
// @Summary Cancel a subscription
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Hostel ID"
// @Param request body request_models.CancelSubscriptionRequest false "Notes"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/hostels/{id}/subscription/cancel [post]
func (s *SubscriptionController) Cancel(c *gin.Context) {
	hostelID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.CancelSubscriptionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.HandleServiceError(c, utils.BindingError(err))
			return
		}
	}

	sub, err := s.subscriptionService.Cancel(c.Request.Context(), hostelID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, sub, "Subscription cancelled")
}

// ExpireStale godoc
// @Summary Expire lapsed subscriptions
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/subscriptions/expire [post]
func (s *SubscriptionController) ExpireStale(c *gin.Context) {
	n, err := s.subscriptionService.ExpireStale(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"expired": n}, "Subscriptions expired")
}
