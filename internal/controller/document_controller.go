package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type DocumentController struct {
	Service *service.DocumentService
}

func NewDocumentController(svc *service.DocumentService) *DocumentController {
	return &DocumentController{Service: svc}
}

// @Summary Upload a document
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Document file"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param courseId formData int false "Course ID"
// @Success 201 {object} util.Response
// @Router /api/admin/documents [post]
func (c *DocumentController) Upload(ctx *gin.Context) {
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

	doc, err := c.Service.UploadDocument(ctx.Request.Context(), user.UserID, uint(courseID), title, ctx.PostForm("description"), file)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, doc)
}

// @Summary Get a document
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} util.Response
// @Router /api/documents/{id} [get]
func (c *DocumentController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid document id")
		return
	}

	doc, err := c.Service.GetDocument(user.UserID, user.Role, uint(id))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, doc)
}

// @Summary List documents
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param courseId query int false "Course filter"
// @Success 200 {object} util.Response
// @Router /api/documents [get]
func (c *DocumentController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	courseID, _ := strconv.ParseUint(ctx.Query("courseId"), 10, 64)

	docs, total, err := c.Service.ListDocuments(page, limit, uint(courseID))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": docs, "total": total})
}

// @Summary Delete a document
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} util.Response
// @Router /api/admin/documents/{id} [delete]
func (c *DocumentController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid document id")
		return
	}

	if err := c.Service.DeleteDocument(ctx.Request.Context(), uint(id)); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
