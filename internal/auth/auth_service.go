package auth

import (
	"context"
	"os"
	"time"

	autherrors "teampulse/internal/auth/errors"
	"teampulse/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the fixed token lifetime. Expired tokens force a re-login.
const TokenTTL = 24 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	GetMe(ctx context.Context, userID string) (user.PublicUser, error)
}

type service struct {
	users user.Repository
}

func NewService(users user.Repository) Service {
	return &service{users: users}
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Missing user and wrong password are indistinguishable on purpose.
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(u)
	if err != nil {
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return LoginResponse{
		Token: token,
		User:  u.Public(),
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (user.PublicUser, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return user.PublicUser{}, autherrors.ErrInvalidUserID
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return user.PublicUser{}, autherrors.ErrUserNotFound
	}

	return u.Public(), nil
}

func (s *service) generateToken(u *user.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"role":    u.Role,
		"team":    u.Team,
		"exp":     time.Now().Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
