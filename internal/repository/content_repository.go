package repository

import (
	"course_companion_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) Create(content *model.Content) error {
	return r.DB.Create(content).Error
}

func (r *ContentRepository) FindByID(id string) (*model.Content, error) {
	var content model.Content
	err := r.DB.First(&content, "id = ?", id).Error
	return &content, err
}

func (r *ContentRepository) Update(content *model.Content) error {
	return r.DB.Save(content).Error
}

func (r *ContentRepository) Delete(id string) error {
	return r.DB.Delete(&model.Content{}, "id = ?", id).Error
}

func (r *ContentRepository) List(page, limit int, publishedOnly bool) ([]model.Content, int64, error) {
	query := r.DB.Model(&model.Content{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contents []model.Content
	offset := (page - 1) * limit
	err := query.Order("order_index asc, created_at desc").
		Offset(offset).Limit(limit).
		Find(&contents).Error
	return contents, total, err
}
