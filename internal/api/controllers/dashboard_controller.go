package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hostelhub/internal/models/response_models"
	"hostelhub/internal/services"
	"hostelhub/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardService
	currency         string
	clock            utils.Clock
}

func NewDashboardController(dashboardService services.DashboardService, currency string, clock utils.Clock) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		currency:         currency,
		clock:            clock,
	}
}

// GetDashboard godoc
// @Summary Get dashboard report
// @Description Request and subscription counts, featured revenue by plan, top featured hostels and recent approvals
// @Tags Admin
// @Produce json
// @Param start    query string false "RFC3339 start (e.g. 2026-10-01T00:00:00Z)"
// @Param end      query string false "RFC3339 end   (e.g. 2026-10-19T23:59:59Z)"
// @Param last_days query int   false "Relative lookback in days (mutually exclusive with start/end). Default 30"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/dashboard [get]
func (p *DashboardController) GetDashboard(c *gin.Context) {
	var (
		start, end time.Time
		err        error
	)

	startStr := c.Query("start")
	endStr := c.Query("end")
	lastDaysStr := c.Query("last_days")

	if lastDaysStr != "" && (startStr != "" || endStr != "") {
		utils.RespondError(c, http.StatusBadRequest, "provide either last_days or start/end (not both)")
		return
	}

	switch {
	case lastDaysStr != "":
		d, convErr := strconv.Atoi(lastDaysStr)
		if convErr != nil || d <= 0 {
			utils.RespondError(c, http.StatusBadRequest, "last_days must be a positive integer")
			return
		}
		end = p.clock.Now()
		start = end.AddDate(0, 0, -d)

	default:
		if startStr != "" {
			start, err = time.Parse(time.RFC3339, startStr)
			if err != nil {
				utils.RespondError(c, http.StatusBadRequest, "start must be RFC3339 (e.g. 2026-10-01T00:00:00Z)")
				return
			}
		}
		if endStr != "" {
			end, err = time.Parse(time.RFC3339, endStr)
			if err != nil {
				utils.RespondError(c, http.StatusBadRequest, "end must be RFC3339 (e.g. 2026-10-19T23:59:59Z)")
				return
			}
		}
	}

	report, svcErr := p.dashboardService.BuildDashboard(c.Request.Context(), response_models.TimeRange{Start: start, End: end}, p.currency)
	if svcErr != nil {
		utils.HandleServiceError(c, svcErr)
		return
	}

	utils.RespondSuccess(c, report, "Dashboard data fetched successfully")
}
