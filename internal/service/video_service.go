package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type VideoService struct {
	Videos  *repository.VideoRepository
	Courses *CourseService
	Storage *StorageService
	Cfg     *config.Config
}

func NewVideoService(videos *repository.VideoRepository, courses *CourseService, storage *StorageService, cfg *config.Config) *VideoService {
	return &VideoService{Videos: videos, Courses: courses, Storage: storage, Cfg: cfg}
}

// UploadVideo saves the upload to a temp file first so ffprobe and the
// thumbnail extractor can read it, then pushes video and thumbnail through
// the storage provider.
func (s *VideoService) UploadVideo(ctx context.Context, uploaderID uint, courseID uint, title, description string, file *multipart.FileHeader) (*model.Video, error) {
	if courseID != 0 {
		if _, err := s.Courses.GetCourse(courseID); err != nil {
			return nil, err
		}
	}

	ext := filepath.Ext(file.Filename)
	videoFilename := "videos/" + time.Now().Format("20060102150405") + "-" +
		strings.ReplaceAll(file.Filename, " ", "-")

	tempDir := filepath.Join(s.Cfg.Storage.LocalPath, "temp")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, err
	}
	videoPath := filepath.Join(tempDir, fmt.Sprintf("upload_%d%s", time.Now().UnixNano(), ext))
	defer os.Remove(videoPath)

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := os.Create(videoPath)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, err
	}
	dst.Close()

	videoURL, err := s.Storage.UploadFile(ctx, videoFilename, videoPath, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	thumbnailURL := s.generateThumbnail(ctx, videoPath, file.Filename, ext)

	var duration float64
	format := strings.TrimPrefix(ext, ".")
	if info, err := util.GetVideoInfo(videoPath); err != nil {
		logger.Log.Warn("video probe failed", zap.String("file", file.Filename), zap.Error(err))
	} else {
		duration = info.Duration
		if info.Format != "" {
			format = info.Format
		}
	}

	video := &model.Video{
		Title:       title,
		Description: description,
		CourseID:    courseID,
		URL:         videoURL,
		Duration:    duration,
		Format:      format,
		Size:        file.Size,
		Thumbnail:   thumbnailURL,
		UploaderID:  uploaderID,
	}
	if err := s.Videos.Create(video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) generateThumbnail(ctx context.Context, videoPath, originalName, ext string) string {
	thumbnailFilename := "thumbnails/" + time.Now().Format("20060102150405") + "-" +
		strings.ReplaceAll(strings.TrimSuffix(originalName, ext), " ", "-") + ".jpg"

	thumbnailDir := filepath.Join(s.Cfg.Storage.LocalPath, "temp")
	thumbnailPath := filepath.Join(thumbnailDir, filepath.Base(thumbnailFilename))
	defer os.Remove(thumbnailPath)

	if err := util.GenerateThumbnail(videoPath, thumbnailPath, 3); err != nil {
		logger.Log.Error("thumbnail generation failed", zap.Error(err))
		return s.Storage.GetURL("thumbnails/default-video-thumbnail.jpg")
	}

	url, err := s.Storage.UploadFile(ctx, thumbnailFilename, thumbnailPath, "image/jpeg")
	if err != nil {
		logger.Log.Error("thumbnail upload failed", zap.Error(err))
		return s.Storage.GetURL("thumbnails/default-video-thumbnail.jpg")
	}
	return url
}

// GetVideo records a view and enforces the course's premium gate.
func (s *VideoService) GetVideo(userID uint, role model.UserRole, id uint) (*model.Video, error) {
	video, err := s.Videos.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrVideoNotFound
		}
		return nil, err
	}

	ok, err := s.Courses.CanAccess(userID, role, video.CourseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrPermissionDenied
	}

	if err := s.Videos.IncrementViewCount(id); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) ListVideos(page, limit int, courseID uint) ([]model.Video, int64, error) {
	return s.Videos.List(page, limit, courseID)
}

func (s *VideoService) DeleteVideo(ctx context.Context, id uint) error {
	video, err := s.Videos.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrVideoNotFound
		}
		return err
	}

	if name, ok := strings.CutPrefix(video.URL, "/uploads/"); ok {
		_ = s.Storage.Delete(ctx, name)
	}
	return s.Videos.Delete(id)
}
