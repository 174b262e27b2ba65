package controllers

import (
	"github.com/gin-gonic/gin"

	"hostelhub/internal/models/request_models"
	"hostelhub/internal/services"
	"hostelhub/pkg/utils"
)

// PlacementController serves hostel owners and the public plan catalog.
type PlacementController struct {
	placementService services.PlacementServiceInterface
	planService      services.PlacementPlanServiceInterface
}

func NewPlacementController(placementService services.PlacementServiceInterface, planService services.PlacementPlanServiceInterface) *PlacementController {
	return &PlacementController{
		placementService: placementService,
		planService:      planService,
	}
}

// ListActivePlans godoc
// @Summary List placement plans
// @Description Active featured-placement plans available for purchase
// @Tags Placements
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /api/plans [get]
func (p *PlacementController) ListActivePlans(c *gin.Context) {
	plans, err := p.planService.ListPlans(c.Request.Context(), true)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// Submit godoc
// @Summary Request a featured placement
// @Description Submit a pending placement request for one of the caller's hostels
// @Tags Placements
// @Accept json
// @Produce json
// @Param request body request_models.SubmitPlacementRequest true "Placement request"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/owner/placements [post]
func (p *PlacementController) Submit(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req request_models.SubmitPlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.BindingError(err))
		return
	}

	created, err := p.placementService.Submit(c.Request.Context(), ownerID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, created, "Placement request submitted")
}

// ListMine godoc
// @Summary List my placement requests
// @Tags Placements
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/owner/placements [get]
func (p *PlacementController) ListMine(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}

	result, err := p.placementService.ListOwnerRequests(c.Request.Context(), ownerID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Placement requests fetched successfully")
}

// GetMine godoc
// @Summary Get one of my placement requests
// @Tags Placements
// @Produce json
// @Param id path string true "Placement request ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/owner/placements/{id} [get]
func (p *PlacementController) GetMine(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := p.placementService.GetOwnerRequest(c.Request.Context(), ownerID, requestID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Placement request fetched successfully")
}

// MyHostelHistory godoc
// @Summary Featured history of my hostel
// @Tags Placements
// @Produce json
// @Param id path string true "Hostel ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/owner/hostels/{id}/placement-history [get]
func (p *PlacementController) MyHostelHistory(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	hostelID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	rows, err := p.placementService.ListOwnerHistory(c.Request.Context(), ownerID, hostelID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, rows, "Placement history fetched successfully")
}
