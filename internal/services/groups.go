package services

import (
	"context"
	"fmt"
	"yatube/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

// List 按标题排序返回所有分组
func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.WithContext(ctx).Order("title ASC").Find(&groups).Error
	return groups, err
}

func (s *GroupService) Create(ctx context.Context, form GroupForm) (*models.Group, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("slug = ?", form.Slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, validation.Errors{
			"slug": validation.NewError("validation_slug_taken", "Группа с таким Путь уже существует."),
		}
	}

	group := models.Group{Title: form.Title, Slug: form.Slug, Description: form.Description}
	if err := s.db.WithContext(ctx).Create(&group).Error; err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return &group, nil
}

// Delete removes the group. Its posts stay and lose their group.
func (s *GroupService) Delete(ctx context.Context, slug string) error {
	group, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(group).Error; err != nil {
		return fmt.Errorf("delete group %s: %w", slug, err)
	}
	return nil
}
