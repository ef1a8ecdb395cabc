package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"membroBack/internal/models"
	"membroBack/internal/repositories"
	"membroBack/utils"
)

type UserService struct {
	UserRepo     *repositories.UserRepository
	TokenManager *utils.Manager
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

var validRoles = map[string]bool{
	models.RoleAdmin:   true,
	models.RoleManager: true,
	models.RoleUser:    true,
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return models.User{}, models.NewValidationError("name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return models.User{}, models.NewValidationError("email is required")
	}
	if len(req.Password) < 6 {
		return models.User{}, models.NewValidationError("password must be at least 6 characters")
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !validRoles[role] {
		return models.User{}, models.NewValidationError("role must be admin, manager or user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.UserRepo.CreateUser(ctx, models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hash),
		Role:     role,
		CenterID: req.CenterID,
		Active:   true,
	})
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.Tokens, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.Tokens{}, models.ErrInvalidCredentials
		}
		return models.Tokens{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.Tokens{}, models.ErrInvalidCredentials
	}

	if err := s.UserRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return models.Tokens{}, err
	}

	return s.issueTokens(ctx, user.ID, user.Role)
}

// Refresh exchanges a valid refresh token for a new token pair. The session
// row is rewritten with the new refresh token, invalidating the old one.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (models.Tokens, error) {
	session, err := s.UserRepo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return models.Tokens{}, err
	}
	if time.Now().After(session.ExpiresAt) {
		return models.Tokens{}, models.ErrSessionNotFound
	}

	return s.issueTokens(ctx, session.UserID, session.Role)
}

func (s *UserService) Me(ctx context.Context, userID int) (models.User, error) {
	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) issueTokens(ctx context.Context, userID int, role string) (models.Tokens, error) {
	accessToken, err := s.TokenManager.NewAccessToken(userID, role, s.AccessTTL)
	if err != nil {
		return models.Tokens{}, err
	}
	refreshToken, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, err
	}

	err = s.UserRepo.CreateSession(ctx, models.Session{
		UserID:       userID,
		Role:         role,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.RefreshTTL),
	})
	if err != nil {
		return models.Tokens{}, err
	}

	return models.Tokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
