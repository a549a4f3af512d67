package service

import (
	"course_companion_backend/internal/model"
	"course_companion_backend/internal/repository"
	"course_companion_backend/internal/util"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"gorm.io/gorm"
)

type ContentService struct {
	ContentRepo *repository.ContentRepository
	Storage     *StorageService
}

func NewContentService(contentRepo *repository.ContentRepository, storage *StorageService) *ContentService {
	return &ContentService{
		ContentRepo: contentRepo,
		Storage:     storage,
	}
}

type CreateContentReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ContentType string `json:"contentType"`
	Body        string `json:"body"`
	OrderIndex  int    `json:"orderIndex"`
}

func (s *ContentService) Create(creatorID string, req *CreateContentReq) (*model.Content, error) {
	content := &model.Content{
		Title:       req.Title,
		Description: req.Description,
		ContentType: req.ContentType,
		Body:        req.Body,
		OrderIndex:  req.OrderIndex,
		CreatorID:   creatorID,
	}
	if content.ContentType == "" {
		content.ContentType = "lesson"
	}
	if err := s.ContentRepo.Create(content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *ContentService) GetByID(id string) (*model.Content, error) {
	content, err := s.ContentRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrContentNotFound
	}
	return content, err
}

func (s *ContentService) List(page, limit int, publishedOnly bool) ([]model.Content, int64, error) {
	return s.ContentRepo.List(page, limit, publishedOnly)
}

func (s *ContentService) Publish(id string) error {
	content, err := s.GetByID(id)
	if err != nil {
		return err
	}
	content.IsPublished = true
	return s.ContentRepo.Update(content)
}

func (s *ContentService) Delete(id string) error {
	return s.ContentRepo.Delete(id)
}

// UploadAttachment 校验并保存课程附件，返回可访问的 URL
func (s *ContentService) UploadAttachment(ctx context.Context, contentID, filename string, reader io.ReadSeeker, size int64) (string, error) {
	content, err := s.GetByID(contentID)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(filename)
	allowed := false
	for _, e := range util.AllowedAttachmentExtensions {
		if e == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", errors.New("file extension not allowed: " + ext)
	}

	mimeType, err := util.ValidateMimeType(reader, []string{util.MimeImage, util.MimePDF, util.MimeText})
	if err != nil {
		return "", err
	}
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("content/%s/%d%s", contentID, time.Now().UnixNano(), ext)
	url, err := s.Storage.Upload(ctx, objectName, reader, size, mimeType)
	if err != nil {
		return "", err
	}

	content.FileURL = url
	if err := s.ContentRepo.Update(content); err != nil {
		return "", err
	}
	return url, nil
}
