package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Service *service.DashboardService
}

func NewDashboardController(svc *service.DashboardService) *DashboardController {
	return &DashboardController{Service: svc}
}

// @Summary Platform counters for the admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/dashboard [get]
func (c *DashboardController) Summary(ctx *gin.Context) {
	summary, err := c.Service.Summary()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
