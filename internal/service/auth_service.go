package service

import (
	"context"
	"errors"
	"strings"

	"hubtrack/internal/dto"
	"hubtrack/internal/entity"
	"hubtrack/internal/repository"
	"hubtrack/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// dummyPasswordHash is compared against when the email is unknown so a
// login failure takes the same time either way.
const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type AuthService struct {
	users        repository.UserRepository
	passwordHash PasswordHasher
	accessTokens AccessTokenIssuer
}

type AuthResult struct {
	Token string
	User  *entity.User
}

func NewAuthService(
	users repository.UserRepository,
	passwordHash PasswordHasher,
	accessTokens AccessTokenIssuer,
) *AuthService {
	return &AuthService{
		users:        users,
		passwordHash: passwordHash,
		accessTokens: accessTokens,
	}
}

func (s *AuthService) Register(ctx context.Context, input dto.RegisterRequest) (*AuthResult, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: &hash,
		Role:         entity.UserRoleUser,
		IsActive:     true,
		Metadata:     datatypes.JSONMap{},
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = &name
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the existence check and
		// trip the unique index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}

	token, _, err := s.accessTokens.IssueAccessToken(*user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, input dto.LoginRequest) (*AuthResult, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		return nil, ErrInvalidCredentials
	}
	if !s.passwordHash.Verify(*user.PasswordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.accessTokens.IssueAccessToken(*user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
