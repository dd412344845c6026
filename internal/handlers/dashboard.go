// internal/handlers/dashboard.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/services"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/utils"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GET /dashboard
func (h *DashboardHandler) GetStats(c *gin.Context) {
	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	uid, ok := userID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	stats, err := h.dashboardService.GetStats(aid, uid, operatorTier(c))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, stats)
}
