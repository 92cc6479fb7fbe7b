package service

import (
	"context"
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"
)

type DocumentService struct {
	Documents *repository.DocumentRepository
	Courses   *CourseService
	Storage   *StorageService
}

func NewDocumentService(docs *repository.DocumentRepository, courses *CourseService, storage *StorageService) *DocumentService {
	return &DocumentService{Documents: docs, Courses: courses, Storage: storage}
}

// UploadDocument stores the file through the configured storage provider
// and records its metadata.
func (s *DocumentService) UploadDocument(ctx context.Context, uploaderID uint, courseID uint, title, description string, file *multipart.FileHeader) (*model.Document, error) {
	if courseID != 0 {
		if _, err := s.Courses.GetCourse(courseID); err != nil {
			return nil, err
		}
	}

	ext := filepath.Ext(file.Filename)
	filename := "documents/" + time.Now().Format("20060102150405") + "-" +
		strings.ReplaceAll(file.Filename, " ", "-")

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	url, err := s.Storage.Upload(ctx, filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		Title:       title,
		Description: description,
		CourseID:    courseID,
		URL:         url,
		Format:      strings.TrimPrefix(ext, "."),
		Size:        file.Size,
		UploaderID:  uploaderID,
	}
	if err := s.Documents.Create(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDocument records a view and enforces the course's premium gate.
func (s *DocumentService) GetDocument(userID uint, role model.UserRole, id uint) (*model.Document, error) {
	doc, err := s.Documents.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrDocumentNotFound
		}
		return nil, err
	}

	ok, err := s.Courses.CanAccess(userID, role, doc.CourseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrPermissionDenied
	}

	if err := s.Documents.IncrementViewCount(id); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) ListDocuments(page, limit int, courseID uint) ([]model.Document, int64, error) {
	return s.Documents.List(page, limit, courseID)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id uint) error {
	doc, err := s.Documents.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrDocumentNotFound
		}
		return err
	}

	if name, ok := strings.CutPrefix(doc.URL, "/uploads/"); ok {
		_ = s.Storage.Delete(ctx, name)
	}
	return s.Documents.Delete(id)
}
