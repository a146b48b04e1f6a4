package services

import (
	"context"
	"fmt"
	"yatube/internal/models"

	"gorm.io/gorm"
)

// FollowService 关注/取消关注
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow subscribes user to author. Following yourself or following twice
// changes nothing.
func (s *FollowService) Follow(ctx context.Context, user, author *models.User) error {
	if user.ID == author.ID {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", user.ID, author.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		authorID := author.ID
		if err := tx.Omit("User", "Author").Create(&models.Follow{UserID: user.ID, AuthorID: &authorID}).Error; err != nil {
			return fmt.Errorf("create follow: %w", err)
		}
		return nil
	})
}

// Unfollow removes the pair if it exists.
func (s *FollowService) Unfollow(ctx context.Context, user, author *models.User) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", user.ID, author.ID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// FollowCounts returns how many authors userID follows and how many users follow it.
func (s *FollowService) FollowCounts(ctx context.Context, userID uint) (following, followers int64, err error) {
	if err = s.db.WithContext(ctx).Model(&models.Follow{}).Where("user_id = ?", userID).Count(&following).Error; err != nil {
		return
	}
	err = s.db.WithContext(ctx).Model(&models.Follow{}).Where("author_id = ?", userID).Count(&followers).Error
	return
}
