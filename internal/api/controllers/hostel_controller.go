package controllers

import (
	"github.com/gin-gonic/gin"

	"hostelhub/internal/models/request_models"
	"hostelhub/internal/services"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/utils"
)

type HostelController struct {
	hostelService    services.HostelServiceInterface
	placementService services.PlacementServiceInterface
	analyticsService services.AnalyticsServiceInterface
	log              logger.Interface
}

func NewHostelController(
	hostelService services.HostelServiceInterface,
	placementService services.PlacementServiceInterface,
	analyticsService services.AnalyticsServiceInterface,
	log logger.Interface,
) *HostelController {
	return &HostelController{
		hostelService:    hostelService,
		placementService: placementService,
		analyticsService: analyticsService,
		log:              log.Named("hostel_controller"),
	}
}

// ListFeatured godoc
// @Summary Featured hostels
// @Description Verified, active hostels currently flagged as featured
// @Tags Hostels
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Router /api/hostels/featured [get]
func (h *HostelController) ListFeatured(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}

	result, err := h.hostelService.ListFeatured(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Featured hostels fetched successfully")
}

// GetHostel godoc
// @Summary Hostel details
// @Description Returns the public listing and records a view
// @Tags Hostels
// @Produce json
// @Param id path string true "Hostel ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/hostels/{id} [get]
func (h *HostelController) GetHostel(c *gin.Context) {
	hostelID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	hostel, err := h.hostelService.GetHostel(c.Request.Context(), hostelID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	// A failed view record must not hide the listing.
	if err := h.analyticsService.RecordView(c.Request.Context(), hostelID, optionalCallerID(c), c.ClientIP(), c.Request.UserAgent()); err != nil {
		h.log.Warnw("failed to record hostel view", "hostel_id", hostelID, "error", err)
	}

	utils.RespondSuccess(c, hostel, "Hostel fetched successfully")
}

// RevealContact godoc
// @Summary Reveal hostel contact details
// @Tags Hostels
// @Produce json
// @Param id path string true "Hostel ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/hostels/{id}/contact [post]
func (h *HostelController) RevealContact(c *gin.Context) {
	hostelID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	details, err := h.analyticsService.RevealContact(c.Request.Context(), hostelID, optionalCallerID(c), c.ClientIP())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, details, "Contact details fetched successfully")
}

// FeaturedStatus godoc
// @Summary Featured status of a hostel
// @Description Cached flag alongside the status derived from approved windows
// @Tags Hostels
// @Produce json
// @Param id path string true "Hostel ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/hostels/{id}/featured-status [get]
func (h *HostelController) FeaturedStatus(c *gin.Context) {
	hostelID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	status, err := h.placementService.FeaturedStatus(c.Request.Context(), hostelID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, status, "Featured status fetched successfully")
}

// CreateHostel godoc
// @Summary Register a hostel
// @Tags Hostels
// @Accept json
// @Produce json
// @Param request body request_models.CreateHostelRequest true "Hostel"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/owner/hostels [post]
func (h *HostelController) CreateHostel(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req request_models.CreateHostelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.BindingError(err))
		return
	}

	hostel, err := h.hostelService.CreateHostel(c.Request.Context(), ownerID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, hostel, "Hostel created successfully")
}

// ListMine godoc
// @Summary My hostels
// @Tags Hostels
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/owner/hostels [get]
func (h *HostelController) ListMine(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	hostels, err := h.hostelService.ListMine(c.Request.Context(), ownerID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, hostels, "Hostels fetched successfully")
}

type verifyHostelRequest struct {
	Verified *bool `json:"verified" binding:"required"`
}

// Verify godoc
// @Summary Mark a hostel verified or unverified
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Hostel ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/hostels/{id}/verify [patch]
func (h *HostelController) Verify(c *gin.Context) {
	hostelID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req verifyHostelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.BindingError(err))
		return
	}

	hostel, err := h.hostelService.SetVerified(c.Request.Context(), hostelID, *req.Verified)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, hostel, "Hostel updated successfully")
}
