package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"pollsite/config"
	"pollsite/models"
	"pollsite/repositories"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	SetRole(ctx context.Context, id uint, role models.UserRole) (*models.User, error)
	EnsureAdmin(ctx context.Context, email string) error
}

type authService struct {
	userRepo repositories.UserRepository
	jwt      config.JWTConfig
	now      func() time.Time
	logger   *slog.Logger
}

func NewAuthService(userRepo repositories.UserRepository, jwtConfig config.JWTConfig, logger *slog.Logger) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		userRepo: userRepo,
		jwt:      jwtConfig,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Check if user already exists
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, models.ErrUserExists
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// public registration never grants admin
	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleMember,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)

	return s.authResponse(user)
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

func (s *authService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// SetRole changes a user's role. Tokens already issued keep their old role
// claim until they expire.
func (s *authService) SetRole(ctx context.Context, id uint, role models.UserRole) (*models.User, error) {
	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}

	s.logger.Info("user role changed", "user_id", id, "role", role)
	return s.userRepo.GetByID(ctx, id)
}

// EnsureAdmin promotes the registered account with the given email to admin.
// It is how the first admin is created.
func (s *authService) EnsureAdmin(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if user.Role == models.RoleAdmin {
		return nil
	}

	_, err = s.SetRole(ctx, user.ID, models.RoleAdmin)
	return err
}

func (s *authService) authResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := s.now()

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(s.jwt.Expiration).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwt.Secret)
}
