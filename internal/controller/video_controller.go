package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type VideoController struct {
	Service *service.VideoService
}

func NewVideoController(svc *service.VideoService) *VideoController {
	return &VideoController{Service: svc}
}

// @Summary Upload a video
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Video file"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param courseId formData int false "Course ID"
// @Success 201 {object} util.Response
// @Router /api/admin/videos [post]
func (c *VideoController) Upload(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}
	courseID, _ := strconv.ParseUint(ctx.PostForm("courseId"), 10, 64)

	video, err := c.Service.UploadVideo(ctx.Request.Context(), user.UserID, uint(courseID), title, ctx.PostForm("description"), file)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, video)
}

// @Summary Get a video
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Success 200 {object} util.Response
// @Router /api/videos/{id} [get]
func (c *VideoController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid video id")
		return
	}

	video, err := c.Service.GetVideo(user.UserID, user.Role, uint(id))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, video)
}

// @Summary List videos
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param courseId query int false "Course filter"
// @Success 200 {object} util.Response
// @Router /api/videos [get]
func (c *VideoController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	courseID, _ := strconv.ParseUint(ctx.Query("courseId"), 10, 64)

	videos, total, err := c.Service.ListVideos(page, limit, uint(courseID))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": videos, "total": total})
}

// @Summary Delete a video
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Success 200 {object} util.Response
// @Router /api/admin/videos/{id} [delete]
func (c *VideoController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid video id")
		return
	}

	if err := c.Service.DeleteVideo(ctx.Request.Context(), uint(id)); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
