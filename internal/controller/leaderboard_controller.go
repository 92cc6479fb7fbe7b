package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	Service *service.LeaderboardService
}

func NewLeaderboardController(svc *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{Service: svc}
}

// @Summary Top submitted attempts for a test
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Test ID"
// @Param limit query int false "Number of entries" default(10)
// @Success 200 {object} util.Response
// @Router /api/tests/{id}/leaderboard [get]
func (c *LeaderboardController) Get(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	entries, err := c.Service.Rank(ctx.Param("id"), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
