package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hostelhub/internal/models/request_models"
	"hostelhub/internal/models/response_models"
	"hostelhub/internal/services"
	"hostelhub/pkg/utils"
)

type AdminPlacementController struct {
	placementService services.PlacementServiceInterface
	planService      services.PlacementPlanServiceInterface
	clock            utils.Clock
}

func NewAdminPlacementController(
	placementService services.PlacementServiceInterface,
	planService services.PlacementPlanServiceInterface,
	clock utils.Clock,
) *AdminPlacementController {
	return &AdminPlacementController{
		placementService: placementService,
		planService:      planService,
		clock:            clock,
	}
}

// ListRequests godoc
// @Summary List placement requests
// @Tags Admin
// @Produce json
// @Param status query string false "pending | approved | rejected | expired"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/placements [get]
func (a *AdminPlacementController) ListRequests(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}

	result, err := a.placementService.ListRequests(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Placement requests fetched successfully")
}

// GetRequest godoc
// @Summary Get a placement request
// @Tags Admin
// @Produce json
// @Param id path string true "Placement request ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/placements/{id} [get]
func (a *AdminPlacementController) GetRequest(c *gin.Context) {
	requestID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := a.placementService.GetRequest(c.Request.Context(), requestID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Placement request fetched successfully")
}

// Review godoc
// @Summary Approve or reject a placement request
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Placement request ID"
// @Param request body request_models.ReviewPlacementRequest true "Decision"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/placements/{id}/review [post]
func (a *AdminPlacementController) Review(c *gin.Context) {
	reviewerID, ok := callerID(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.ReviewPlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.BindingError(err))
		return
	}

	result, err := a.placementService.Review(c.Request.Context(), requestID, reviewerID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Placement request reviewed")
}

// Sweep godoc
// @Summary Expire finished placements
// @Description Runs the expiry sweep now, or for the instant given in "at"
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.SweepRequest false "Optional sweep instant"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/placements/sweep [post]
func (a *AdminPlacementController) Sweep(c *gin.Context) {
	var req request_models.SweepRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.HandleServiceError(c, utils.BindingError(err))
			return
		}
	}

	at := a.clock.Now()
	if req.At != "" {
		parsed, err := time.Parse(time.RFC3339, req.At)
		if err != nil {
			utils.HandleServiceError(c, utils.NewValidationError("at", "must be RFC3339"))
			return
		}
		at = parsed.UTC()
	}

	n, err := a.placementService.Sweep(c.Request.Context(), at)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.SweepResult{At: at, Transitions: n}, "Sweep completed")
}

// HostelHistory godoc
// @Summary Featured history of a hostel
// @Tags Admin
// @Produce json
// @Param id path string true "Hostel ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/hostels/{id}/placement-history [get]
func (a *AdminPlacementController) HostelHistory(c *gin.Context) {
	hostelID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	rows, err := a.placementService.ListHistory(c.Request.Context(), hostelID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, rows, "Placement history fetched successfully")
}

// ListPlans godoc
// @Summary List all placement plans
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/plans [get]
func (a *AdminPlacementController) ListPlans(c *gin.Context) {
	plans, err := a.planService.ListPlans(c.Request.Context(), false)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// CreatePlan godoc
// @Summary Create a placement plan
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.CreatePlanRequest true "Plan"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/plans [post]
func (a *AdminPlacementController) CreatePlan(c *gin.Context) {
	var req request_models.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.BindingError(err))
		return
	}

	plan, err := a.planService.CreatePlan(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, plan, "Plan created successfully")
}

// UpdatePlan godoc
// @Summary Edit a placement plan
// @Description Only plans that no request references can be edited
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body request_models.UpdatePlanRequest true "Changes"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/plans/{id} [put]
func (a *AdminPlacementController) UpdatePlan(c *gin.Context) {
	planID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.BindingError(err))
		return
	}

	plan, err := a.planService.UpdatePlan(c.Request.Context(), planID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plan, "Plan updated successfully")
}

// SetPlanActive godoc
// @Summary Activate or deactivate a plan
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body request_models.SetPlanActiveRequest true "Flag"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/plans/{id}/active [patch]
func (a *AdminPlacementController) SetPlanActive(c *gin.Context) {
	planID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.SetPlanActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.BindingError(err))
		return
	}

	plan, err := a.planService.SetPlanActive(c.Request.Context(), planID, *req.IsActive)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plan, "Plan updated successfully")
}

// DeletePlan godoc
// @Summary Delete an unused plan
// @Tags Admin
// @Param id path string true "Plan ID"
// @Success 204
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/plans/{id} [delete]
func (a *AdminPlacementController) DeletePlan(c *gin.Context) {
	planID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := a.planService.DeletePlan(c.Request.Context(), planID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
