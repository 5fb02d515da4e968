package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"callcenter/internal/authz"
	"callcenter/internal/models"
	"callcenter/internal/repositories"
	"callcenter/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidUser        = errors.New("invalid user")
)

// Tokens is what a successful login or refresh hands back.
type Tokens struct {
	AccessToken     string    `json:"access_token"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
	RefreshToken    string    `json:"refresh_token"`
}

type UserService interface {
	CreateUserWithPassword(ctx context.Context, user *models.User, plainPassword string) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, roleID *int) ([]models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, *Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (*Tokens, error)
}

type userService struct {
	repo         repositories.UserRepository
	emailService EmailService
	authService  AuthService
}

func NewUserService(repo repositories.UserRepository, emailService EmailService, authService AuthService) UserService {
	return &userService{
		repo:         repo,
		emailService: emailService,
		authService:  authService,
	}
}

func (s *userService) CreateUserWithPassword(ctx context.Context, user *models.User, plainPassword string) error {
	if strings.TrimSpace(plainPassword) == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidUser)
	}
	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidUser)
	}
	if !authz.IsKnownRole(user.RoleID) {
		return fmt.Errorf("%w: unknown role_id %d", ErrInvalidUser, user.RoleID)
	}
	existing, err := s.repo.GetByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hashedPassword, err := s.authService.HashPassword(plainPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashedPassword

	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FullName); err != nil {
			// warn but do not fail creation
			log.Printf("[user][create][warn] welcome email to %s: %v", user.Email, err)
		}
	}
	return nil
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context, roleID *int) ([]models.User, error) {
	return s.repo.List(ctx, roleID)
}

func (s *userService) Login(ctx context.Context, email, password string) (*models.User, *Tokens, error) {
	email = strings.TrimSpace(email)
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || strings.TrimSpace(user.PasswordHash) == "" {
		return nil, nil, ErrInvalidCredentials
	}
	if err := s.authService.CheckPassword(strings.TrimSpace(user.PasswordHash), password); err != nil {
		log.Printf("[auth][login] bcrypt mismatch for userID=%d", user.ID)
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issue(user)
	if err != nil {
		return nil, nil, err
	}
	rtExp := time.Now().Add(s.authService.RefreshTTL())
	if err := s.repo.UpdateRefresh(ctx, user.ID, tokens.RefreshToken, rtExp); err != nil {
		return nil, nil, fmt.Errorf("store refresh token: %w", err)
	}
	return user, tokens, nil
}

// Refresh rotates the refresh token and issues a new access token.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	old := strings.TrimSpace(refreshToken)
	if old == "" {
		return nil, ErrInvalidRefresh
	}
	user, err := s.repo.GetByRefreshToken(ctx, old)
	if err != nil {
		return nil, err
	}
	if user == nil || user.RefreshExpiresAt == nil || user.RefreshRevoked {
		return nil, ErrInvalidRefresh
	}
	if time.Now().After(*user.RefreshExpiresAt) {
		return nil, ErrInvalidRefresh
	}

	newRT, err := utils.NewRefreshToken(32)
	if err != nil {
		return nil, err
	}
	rotated, err := s.repo.RotateRefresh(ctx, old, newRT, time.Now().Add(s.authService.RefreshTTL()))
	if err != nil {
		return nil, err
	}
	if rotated == nil {
		return nil, ErrInvalidRefresh
	}
	access, exp, err := s.authService.IssueAccessToken(rotated.ID, rotated.RoleID)
	if err != nil {
		return nil, err
	}
	return &Tokens{AccessToken: access, AccessExpiresAt: exp, RefreshToken: newRT}, nil
}

func (s *userService) issue(user *models.User) (*Tokens, error) {
	access, exp, err := s.authService.IssueAccessToken(user.ID, user.RoleID)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	rt, err := utils.NewRefreshToken(32)
	if err != nil {
		return nil, fmt.Errorf("new refresh token: %w", err)
	}
	return &Tokens{AccessToken: access, AccessExpiresAt: exp, RefreshToken: rt}, nil
}
