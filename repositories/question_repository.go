package repositories

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pollsite/models"

	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	GetPublishedByID(ctx context.Context, id uint, now time.Time) (*models.Question, error)
	ListPublished(ctx context.Context, now time.Time, limit int) ([]models.Question, error)
	Delete(ctx context.Context, id uint) error
}

type questionRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewQuestionRepository(db *gorm.DB, logger *slog.Logger) QuestionRepository {
	return &questionRepository{db: db, logger: resolveLogger(logger)}
}

// Create inserts the question together with any choices it carries.
func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		return logError(r.logger, "question_repo_create_failed", err)
	}
	return nil
}

func (r *questionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	err := r.withChoices(ctx).First(&question, id).Error
	if err != nil {
		return nil, r.mapLookupError("question_repo_get_failed", err, id)
	}
	return &question, nil
}

// GetPublishedByID behaves like GetByID but treats questions published after
// now as missing.
func (r *questionRepository) GetPublishedByID(ctx context.Context, id uint, now time.Time) (*models.Question, error) {
	var question models.Question
	err := r.withChoices(ctx).
		Where("publication_date <= ?", now.UTC()).
		First(&question, id).Error
	if err != nil {
		return nil, r.mapLookupError("question_repo_get_published_failed", err, id)
	}
	return &question, nil
}

func (r *questionRepository) ListPublished(ctx context.Context, now time.Time, limit int) ([]models.Question, error) {
	questions := []models.Question{}
	if limit <= 0 {
		return questions, nil
	}

	err := r.db.WithContext(ctx).
		Where("publication_date <= ?", now.UTC()).
		Order("publication_date desc").
		Order("id desc").
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, logError(r.logger, "question_repo_list_published_failed", err, "limit", limit)
	}
	return questions, nil
}

// Delete removes the question's choices and then the question itself in one
// transaction.
func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewChoiceRepository(tx, r.logger).DeleteByQuestionID(ctx, id); err != nil {
			return err
		}

		result := tx.Delete(&models.Question{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrQuestionNotFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return logError(r.logger, "question_repo_delete_failed", err, "question_id", id)
	}
	return err
}

func (r *questionRepository) withChoices(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("choices.id asc")
	})
}

func (r *questionRepository) mapLookupError(event string, err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrQuestionNotFound
	}
	return logError(r.logger, event, err, "question_id", id)
}
