package services

import (
	"context"
	"errors"
	"fmt"
	"yatube/internal/models"
	"yatube/internal/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// newestFirst is the ordering of every post and comment listing.
const newestFirst = "created_at DESC, id DESC"

// PostFilter narrows a post listing. Zero values mean no restriction.
type PostFilter struct {
	GroupID  uint
	AuthorID uint
}

func (f PostFilter) scope(tx *gorm.DB) *gorm.DB {
	if f.GroupID != 0 {
		tx = tx.Where("group_id = ?", f.GroupID)
	}
	if f.AuthorID != 0 {
		tx = tx.Where("user_id = ?", f.AuthorID)
	}
	return tx
}

// PostService 帖子与评论的读写
type PostService struct {
	db      *gorm.DB
	storage Storage
	perPage int
}

func NewPostService(db *gorm.DB, storage Storage, perPage int) *PostService {
	return &PostService{db: db, storage: storage, perPage: perPage}
}

// List returns one page of posts, newest first, with author and group loaded.
func (s *PostService) List(ctx context.Context, filter PostFilter, page string) (*utils.Page[models.Post], error) {
	return s.paginate(ctx, filter.scope, page)
}

// ListFollowed returns posts written by authors userID follows.
func (s *PostService) ListFollowed(ctx context.Context, userID uint, page string) (*utils.Page[models.Post], error) {
	return s.paginate(ctx, func(tx *gorm.DB) *gorm.DB {
		followed := s.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", userID)
		return tx.Where("user_id IN (?)", followed)
	}, page)
}

func (s *PostService) paginate(ctx context.Context, scope func(*gorm.DB) *gorm.DB, raw string) (*utils.Page[models.Post], error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	page := utils.NewPage[models.Post](total, s.perPage, raw)
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Scopes(scope).
		Preload("User").Preload("Group").
		Order(newestFirst).
		Limit(page.PerPage).
		Offset(page.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	page.Items = posts
	return page, nil
}

func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("User").Preload("Group").First(&post, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// Recent returns the newest posts without paging, for feeds and the sitemap.
func (s *PostService) Recent(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Group").
		Order(newestFirst).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("recent posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", authorID).Count(&count).Error
	return count, err
}

// checkGroup turns an unknown group id into a field error.
func (s *PostService) checkGroup(ctx context.Context, groupID *uint) error {
	if groupID == nil {
		return nil
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("id = ?", *groupID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return validation.Errors{
			"group": validation.NewError("validation_group_invalid", "Выберите корректный вариант. Вашего варианта нет среди допустимых значений."),
		}
	}
	return nil
}

func (s *PostService) validate(ctx context.Context, form *PostForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	return s.checkGroup(ctx, form.GroupID)
}

// storeImage saves the upload and returns its key, "" when there is none.
func (s *PostService) storeImage(ctx context.Context, upload *Upload) (string, error) {
	if upload == nil {
		return "", nil
	}
	format, err := imageFormat(upload.Data)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	key := ImageKey(format)
	if err := s.storage.Save(ctx, key, upload.Data, ImageContentType(format)); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return key, nil
}

// Create 发布新帖子，创建时间由服务端设置
func (s *PostService) Create(ctx context.Context, author *models.User, form PostForm) (*models.Post, error) {
	if err := s.validate(ctx, &form); err != nil {
		return nil, err
	}
	key, err := s.storeImage(ctx, form.Image)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		Text:    form.Text,
		UserID:  author.ID,
		GroupID: form.GroupID,
		Image:   key,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	log.Debug().Uint("post_id", post.ID).Str("author", author.Username).Msg("post created")
	return s.Get(ctx, post.ID)
}

// Update rewrites text, group and image. Authorship is checked by the caller.
// A form without an image keeps the current one.
func (s *PostService) Update(ctx context.Context, post *models.Post, form PostForm) (*models.Post, error) {
	if err := s.validate(ctx, &form); err != nil {
		return nil, err
	}
	image := post.Image
	if form.Image != nil {
		key, err := s.storeImage(ctx, form.Image)
		if err != nil {
			return nil, err
		}
		image = key
	}

	err := s.db.WithContext(ctx).Model(&models.Post{ID: post.ID}).Updates(map[string]interface{}{
		"text":     form.Text,
		"group_id": form.GroupID,
		"image":    image,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update post %d: %w", post.ID, err)
	}
	return s.Get(ctx, post.ID)
}

// Delete removes the post, its comments and its image.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	if post.HasImage() {
		if err := s.storage.Delete(ctx, post.Image); err != nil {
			log.Warn().Err(err).Str("key", post.Image).Msg("failed to remove post image")
		}
	}
	return nil
}

// Comments 按时间倒序返回帖子的评论
func (s *PostService) Comments(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order(newestFirst).
		Find(&comments).Error
	return comments, err
}

func (s *PostService) AddComment(ctx context.Context, post *models.Post, author *models.User, form CommentForm) (*models.Comment, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	comment := models.Comment{
		PostID: post.ID,
		UserID: author.ID,
		Text:   form.Text,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.User = *author
	return &comment, nil
}

// IsValidationError reports whether err carries field messages for a form.
func IsValidationError(err error) (validation.Errors, bool) {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}
