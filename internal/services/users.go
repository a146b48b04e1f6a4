package services

import (
	"context"
	"errors"
	"fmt"
	"yatube/internal/models"
	"yatube/internal/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// Register 创建新用户
func (s *UserService) Register(ctx context.Context, form SignupForm) (*models.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	_, err := s.GetByUsername(ctx, form.Username)
	switch {
	case err == nil:
		return nil, validation.Errors{
			"username": validation.NewError("validation_username_taken", "Пользователь с таким именем уже существует."),
		}
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		Username:  form.Username,
		Email:     form.Email,
		Password:  hash,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
