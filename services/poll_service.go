package services

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"pollsite/models"
	"pollsite/repositories"

	"github.com/spf13/cast"
)

type PollService interface {
	ListQuestions(ctx context.Context, limit int) ([]models.QuestionSummary, error)
	GetQuestion(ctx context.Context, id uint) (*models.QuestionDetail, error)
	GetResults(ctx context.Context, id uint) (*models.QuestionResults, error)
	CastVote(ctx context.Context, questionID uint, req models.VoteRequest) (*models.VoteResult, error)
	CreateQuestion(ctx context.Context, req models.CreateQuestionRequest, actor models.Actor) (*models.Question, error)
	AddChoice(ctx context.Context, questionID uint, req models.CreateChoiceRequest, actor models.Actor) (*models.Choice, error)
	DeleteQuestion(ctx context.Context, id uint, actor models.Actor) error
}

type PollServiceOptions struct {
	IndexLimit    int
	MaxIndexLimit int
	Now           func() time.Time
	Logger        *slog.Logger
}

type pollService struct {
	questionRepo  repositories.QuestionRepository
	choiceRepo    repositories.ChoiceRepository
	indexLimit    int
	maxIndexLimit int
	now           func() time.Time
	logger        *slog.Logger
}

func NewPollService(questionRepo repositories.QuestionRepository, choiceRepo repositories.ChoiceRepository, opts PollServiceOptions) PollService {
	s := &pollService{
		questionRepo:  questionRepo,
		choiceRepo:    choiceRepo,
		indexLimit:    opts.IndexLimit,
		maxIndexLimit: opts.MaxIndexLimit,
		now:           opts.Now,
		logger:        opts.Logger,
	}
	if s.indexLimit <= 0 {
		s.indexLimit = 5
	}
	if s.maxIndexLimit < s.indexLimit {
		s.maxIndexLimit = s.indexLimit
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// ListQuestions returns the latest published questions. A zero limit means
// the configured default.
func (s *pollService) ListQuestions(ctx context.Context, limit int) ([]models.QuestionSummary, error) {
	if limit == 0 {
		limit = s.indexLimit
	}
	if limit < 0 || limit > s.maxIndexLimit {
		return nil, models.ErrInvalidLimit
	}

	now := s.now()
	questions, err := s.questionRepo.ListPublished(ctx, now, limit)
	if err != nil {
		return nil, err
	}

	questions = models.ListPublished(questions, now, limit)
	summaries := make([]models.QuestionSummary, 0, len(questions))
	for _, q := range questions {
		summaries = append(summaries, models.NewQuestionSummary(q, now))
	}
	return summaries, nil
}

func (s *pollService) GetQuestion(ctx context.Context, id uint) (*models.QuestionDetail, error) {
	now := s.now()
	question, err := s.questionRepo.GetPublishedByID(ctx, id, now)
	if err != nil {
		return nil, err
	}

	detail := models.NewQuestionDetail(*question, now)
	return &detail, nil
}

func (s *pollService) GetResults(ctx context.Context, id uint) (*models.QuestionResults, error) {
	now := s.now()
	question, err := s.questionRepo.GetPublishedByID(ctx, id, now)
	if err != nil {
		return nil, err
	}

	results := models.NewQuestionResults(*question, now)
	return &results, nil
}

// CastVote records one vote for the selected choice of a published question.
func (s *pollService) CastVote(ctx context.Context, questionID uint, req models.VoteRequest) (*models.VoteResult, error) {
	question, err := s.questionRepo.GetPublishedByID(ctx, questionID, s.now())
	if err != nil {
		return nil, err
	}

	choiceID, err := parseChoiceID(req.Choice)
	if err != nil {
		return nil, models.ErrInvalidSubmission
	}

	if err := s.choiceRepo.IncrementVotes(ctx, question.ID, choiceID, 1); err != nil {
		return nil, err
	}

	s.logger.Info("vote cast", "question_id", question.ID, "choice_id", choiceID)

	return &models.VoteResult{
		QuestionID: question.ID,
		ChoiceID:   choiceID,
		ResultsURL: models.ResultsPath(question.ID),
	}, nil
}

func (s *pollService) CreateQuestion(ctx context.Context, req models.CreateQuestionRequest, actor models.Actor) (*models.Question, error) {
	question := &models.Question{
		Text:            strings.TrimSpace(req.Text),
		PublicationDate: s.now(),
		AuthorID:        models.SomeID(actor.UserID),
	}
	if req.PublicationDate != nil {
		question.PublicationDate = *req.PublicationDate
	}
	for _, text := range req.Choices {
		question.Choices = append(question.Choices, models.Choice{Text: strings.TrimSpace(text)})
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}

	s.logger.Info("question created",
		"question_id", question.ID,
		"author_id", actor.UserID,
		"choices", len(question.Choices),
	)

	return s.questionRepo.GetByID(ctx, question.ID)
}

func (s *pollService) AddChoice(ctx context.Context, questionID uint, req models.CreateChoiceRequest, actor models.Actor) (*models.Choice, error) {
	question, err := s.manageableQuestion(ctx, questionID, actor)
	if err != nil {
		return nil, err
	}

	choice := &models.Choice{
		QuestionID: question.ID,
		Text:       strings.TrimSpace(req.Text),
	}
	if err := s.choiceRepo.Create(ctx, choice); err != nil {
		return nil, err
	}
	return choice, nil
}

func (s *pollService) DeleteQuestion(ctx context.Context, id uint, actor models.Actor) error {
	question, err := s.manageableQuestion(ctx, id, actor)
	if err != nil {
		return err
	}

	if err := s.questionRepo.Delete(ctx, question.ID); err != nil {
		return err
	}

	s.logger.Info("question deleted", "question_id", question.ID, "by", actor.UserID)
	return nil
}

// manageableQuestion loads a question regardless of its publication date and
// checks that actor may change it. Questions without an author are admin-only.
func (s *pollService) manageableQuestion(ctx context.Context, id uint, actor models.Actor) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !question.OwnedBy(actor.UserID) {
		return nil, models.ErrForbidden
	}
	return question, nil
}

// parseChoiceID accepts a positive decimal integer given as a number or a
// string. Ids are bounded to 32 bits like the question id in the route.
func parseChoiceID(raw any) (uint, error) {
	switch v := raw.(type) {
	case nil, bool:
		return 0, models.ErrInvalidSubmission
	case string:
		id, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil || id == 0 {
			return 0, models.ErrInvalidSubmission
		}
		return uint(id), nil
	case float64:
		if v != math.Trunc(v) || v < 1 || v > math.MaxUint32 {
			return 0, models.ErrInvalidSubmission
		}
	}

	id, err := cast.ToUint64E(raw)
	if err != nil || id == 0 || id > math.MaxUint32 {
		return 0, models.ErrInvalidSubmission
	}
	return uint(id), nil
}
