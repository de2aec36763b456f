package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codebliss/internal/apperror"
	"codebliss/internal/models"

	"gorm.io/gorm"
)

const (
	MsgAccountTaken      = "This username or email address is already in use. Please try a different one."
	MsgAccountNotFound   = "We couldn't find an account with that username or email address."
	MsgInvalidCredential = "There seems to be a problem with your login credentials. Please try again."
)

type SignupDTO struct {
	Name     string
	Username string
	Email    string
	Password string
}

type UserService struct {
	db     *gorm.DB
	tokens *TokenService
}

func NewUserService(db *gorm.DB, tokens *TokenService) *UserService {
	return &UserService{
		db:     db,
		tokens: tokens,
	}
}

// Signup registers a new account. Username and email are compared in
// their normalised (lower case) form.
func (s *UserService) Signup(ctx context.Context, dto SignupDTO) (*models.User, error) {
	user := &models.User{
		Name:     dto.Name,
		Username: dto.Username,
		Email:    dto.Email,
	}
	user.Normalize()

	var existing models.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", user.Username, user.Email).
		First(&existing).Error
	if err == nil {
		return nil, apperror.Conflict(MsgAccountTaken)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user.SetPassword(dto.Password)
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Signin resolves identifier as username or email and returns the user
// along with a freshly signed access token.
func (s *UserService) Signin(ctx context.Context, identifier, password string) (*models.User, string, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))

	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperror.NotFound(MsgAccountNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.VerifyPassword(password) {
		return nil, "", apperror.Unauthorized(MsgInvalidCredential)
	}

	token, err := s.tokens.Issue(&user)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return &user, token, nil
}

// FindByID returns NotFound when the user does not exist.
func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound(MsgAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// Profile is FindByID for an already authenticated caller: a missing user
// at this point is an internal failure, not a 404.
func (s *UserService) Profile(ctx context.Context, id string) (*models.User, error) {
	user, err := s.FindByID(ctx, id)
	if apperror.IsKind(err, apperror.KindNotFound) {
		return nil, apperror.Internal(err)
	}
	return user, err
}
