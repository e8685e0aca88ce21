package repositories

import (
	"context"
	"errors"
	"log/slog"

	"pollsite/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateRole(ctx context.Context, id uint, role models.UserRole) error
}

type userRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewUserRepository(db *gorm.DB, logger *slog.Logger) UserRepository {
	return &userRepository{db: db, logger: resolveLogger(logger)}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.ErrUserExists
		}
		return logError(r.logger, "user_repo_create_failed", err, "username", user.Username)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, r.mapLookupError("user_repo_get_failed", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, r.mapLookupError("user_repo_get_by_email_failed", err)
	}
	return &user, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id uint, role models.UserRole) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("role", role)
	if result.Error != nil {
		return logError(r.logger, "user_repo_update_role_failed", result.Error, "user_id", id)
	}
	if result.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) mapLookupError(event string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrUserNotFound
	}
	return logError(r.logger, event, err)
}
