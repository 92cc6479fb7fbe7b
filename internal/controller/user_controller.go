package controller

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Service *service.UserService
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{Service: svc}
}

// @Summary List user accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param search query string false "Name or email filter"
// @Success 200 {object} util.Response
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	search := ctx.Query("search")

	users, total, err := c.Service.ListUsers(page, limit, search)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": users, "total": total})
}

type setDisabledReq struct {
	Disabled *bool `json:"disabled" binding:"required"`
}

// @Summary Enable or disable a user account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body setDisabledReq true "Disabled flag"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/disabled [put]
func (c *UserController) SetDisabled(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	var req setDisabledReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.SetDisabled(uint(id), *req.Disabled); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type grantSubscriptionReq struct {
	Plan model.SubscriptionPlan `json:"plan" binding:"required,oneof=monthly yearly"`
}

// @Summary Grant a subscription to a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body grantSubscriptionReq true "Plan"
// @Success 201 {object} util.Response
// @Router /api/admin/users/{id}/subscriptions [post]
func (c *UserController) GrantSubscription(ctx *gin.Context) {
	admin := util.GetUserFromContext(ctx)
	if admin == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	var req grantSubscriptionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.Service.GrantSubscription(uint(id), admin.UserID, req.Plan)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, sub)
}

type accessRequestReq struct {
	Message string `json:"message"`
}

// @Summary Request subscription access
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body accessRequestReq true "Optional message to the reviewer"
// @Success 201 {object} util.Response
// @Router /api/access-requests [post]
func (c *UserController) RequestAccess(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req accessRequestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	request, err := c.Service.RequestAccess(user.UserID, req.Message)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, request)
}

// @Summary List access requests
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved or rejected"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response
// @Router /api/admin/access-requests [get]
func (c *UserController) ListRequests(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	status := model.AccessRequestStatus(ctx.Query("status"))

	requests, total, err := c.Service.ListRequests(status, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": requests, "total": total})
}

type reviewRequestReq struct {
	Approve *bool `json:"approve" binding:"required"`
}

// @Summary Approve or reject an access request
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body reviewRequestReq true "Review decision"
// @Success 200 {object} util.Response
// @Router /api/admin/access-requests/{id}/review [put]
func (c *UserController) ReviewRequest(ctx *gin.Context) {
	admin := util.GetUserFromContext(ctx)
	if admin == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid request id")
		return
	}

	var req reviewRequestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	request, err := c.Service.ReviewRequest(uint(id), admin.UserID, *req.Approve)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, request)
}

// @Summary List the authenticated user's subscriptions
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/subscriptions [get]
func (c *UserController) MySubscriptions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	subs, err := c.Service.ListSubscriptions(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}
