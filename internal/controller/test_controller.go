package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	Service  *service.TestService
	Attempts *service.AttemptService
}

func NewTestController(svc *service.TestService, attempts *service.AttemptService) *TestController {
	return &TestController{Service: svc, Attempts: attempts}
}

// @Summary Create a test with its questions
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.TestReq true "Test definition"
// @Success 201 {object} util.Response
// @Router /api/admin/tests [post]
func (c *TestController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.CreateTest(user.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, test)
}

// @Summary Get a test with correct answers
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Test ID"
// @Success 200 {object} util.Response
// @Router /api/admin/tests/{id} [get]
func (c *TestController) Get(ctx *gin.Context) {
	test, questions, err := c.Service.GetTestWithQuestions(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"test": test, "questions": questions})
}

// @Summary List tests
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response
// @Router /api/tests [get]
func (c *TestController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	tests, total, err := c.Service.ListTests(page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": tests, "total": total})
}

// @Summary Update a test, optionally replacing its question set
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Test ID"
// @Param body body service.TestReq true "Fields to update"
// @Success 200 {object} util.Response
// @Router /api/admin/tests/{id} [put]
func (c *TestController) Update(ctx *gin.Context) {
	var req service.TestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.UpdateTest(ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// @Summary Delete a test and its questions
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Test ID"
// @Success 200 {object} util.Response
// @Router /api/admin/tests/{id} [delete]
func (c *TestController) Delete(ctx *gin.Context) {
	if err := c.Service.DeleteTest(ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Aggregate attempt statistics for a test
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Test ID"
// @Success 200 {object} util.Response
// @Router /api/admin/tests/{id}/stats [get]
func (c *TestController) Stats(ctx *gin.Context) {
	stats, err := c.Attempts.Stats(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
