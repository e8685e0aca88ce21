package repositories

import (
	"context"
	"log/slog"

	"pollsite/models"

	"gorm.io/gorm"
)

type ChoiceRepository interface {
	Create(ctx context.Context, choice *models.Choice) error
	IncrementVotes(ctx context.Context, questionID, choiceID uint, delta int) error
	DeleteByQuestionID(ctx context.Context, questionID uint) error
}

type choiceRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewChoiceRepository(db *gorm.DB, logger *slog.Logger) ChoiceRepository {
	return &choiceRepository{db: db, logger: resolveLogger(logger)}
}

func (r *choiceRepository) Create(ctx context.Context, choice *models.Choice) error {
	if err := r.db.WithContext(ctx).Create(choice).Error; err != nil {
		return logError(r.logger, "choice_repo_create_failed", err, "question_id", choice.QuestionID)
	}
	return nil
}

// IncrementVotes adds delta to the stored tally in a single UPDATE so that
// concurrent votes never overwrite each other. The question scope rejects a
// choice that belongs to another question.
func (r *choiceRepository) IncrementVotes(ctx context.Context, questionID, choiceID uint, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Choice{}).
		Where("id = ? AND question_id = ?", choiceID, questionID).
		UpdateColumn("vote_count", gorm.Expr("vote_count + ?", delta))
	if result.Error != nil {
		return logError(r.logger, "choice_repo_increment_votes_failed", result.Error,
			"question_id", questionID,
			"choice_id", choiceID,
		)
	}
	if result.RowsAffected == 0 {
		return models.ErrChoiceNotFound
	}
	return nil
}

func (r *choiceRepository) DeleteByQuestionID(ctx context.Context, questionID uint) error {
	err := r.db.WithContext(ctx).Where("question_id = ?", questionID).Delete(&models.Choice{}).Error
	if err != nil {
		return logError(r.logger, "choice_repo_delete_by_question_failed", err, "question_id", questionID)
	}
	return nil
}
