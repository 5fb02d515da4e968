package services

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"callcenter/internal/utils"
)

type AuthService interface {
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) error
	IssueAccessToken(userID int64, roleID int) (string, time.Time, error)
	RefreshTTL() time.Duration
}

type authService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(secret []byte, accessTTL, refreshTTL time.Duration) AuthService {
	return &authService{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (s *authService) HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *authService) CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *authService) IssueAccessToken(userID int64, roleID int) (string, time.Time, error) {
	return utils.NewAccessToken(s.secret, userID, roleID, s.accessTTL)
}

func (s *authService) RefreshTTL() time.Duration {
	return s.refreshTTL
}
