package models

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=200"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateRoleRequest is accepted from admins only.
type UpdateRoleRequest struct {
	Role UserRole `json:"role" validate:"required,oneof=member admin"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateQuestionRequest struct {
	Text            string     `json:"text" validate:"required,max=200"`
	PublicationDate *time.Time `json:"publication_date"`
	Choices         []string   `json:"choices" validate:"dive,required,max=200"`
}

type CreateChoiceRequest struct {
	Text string `json:"text" validate:"required,max=200"`
}

// VoteRequest carries the raw selection; it may arrive as a JSON number, a
// JSON string or a form value, so it is parsed by the poll service.
type VoteRequest struct {
	Choice any `json:"choice" form:"choice"`
}

type QuestionListParams struct {
	Limit int `form:"limit" validate:"omitempty,min=1"`
}

type QuestionSummary struct {
	ID                   uint       `json:"id"`
	Text                 string     `json:"text"`
	PublicationDate      time.Time  `json:"publication_date"`
	WasPublishedRecently bool       `json:"was_published_recently"`
	PublishedAgo         string     `json:"published_ago"`
	AuthorID             OptionalID `json:"author_id"`
}

type ChoiceOption struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type ChoiceTally struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	VoteCount int    `json:"vote_count"`
}

type QuestionDetail struct {
	QuestionSummary
	Choices []ChoiceOption `json:"choices"`
}

type QuestionResults struct {
	QuestionSummary
	Choices    []ChoiceTally `json:"choices"`
	TotalVotes int           `json:"total_votes"`
}

type VoteResult struct {
	QuestionID uint   `json:"question_id"`
	ChoiceID   uint   `json:"choice_id"`
	ResultsURL string `json:"results_url"`
}

func NewQuestionSummary(q Question, now time.Time) QuestionSummary {
	return QuestionSummary{
		ID:                   q.ID,
		Text:                 q.Text,
		PublicationDate:      q.PublicationDate,
		WasPublishedRecently: q.WasPublishedRecently(now),
		PublishedAgo:         humanize.RelTime(q.PublicationDate, now, "ago", "from now"),
		AuthorID:             q.AuthorID,
	}
}

func NewQuestionDetail(q Question, now time.Time) QuestionDetail {
	detail := QuestionDetail{
		QuestionSummary: NewQuestionSummary(q, now),
		Choices:         make([]ChoiceOption, 0, len(q.Choices)),
	}
	for _, c := range q.Choices {
		detail.Choices = append(detail.Choices, ChoiceOption{ID: c.ID, Text: c.Text})
	}
	return detail
}

func NewQuestionResults(q Question, now time.Time) QuestionResults {
	results := QuestionResults{
		QuestionSummary: NewQuestionSummary(q, now),
		Choices:         make([]ChoiceTally, 0, len(q.Choices)),
	}
	for _, c := range q.Choices {
		results.Choices = append(results.Choices, ChoiceTally{ID: c.ID, Text: c.Text, VoteCount: c.VoteCount})
		results.TotalVotes += c.VoteCount
	}
	return results
}

// ResultsPath is where a voter is sent after a successful vote.
func ResultsPath(questionID uint) string {
	return fmt.Sprintf("/api/v1/polls/%d/results", questionID)
}

// Actor is the authenticated caller of a management operation.
type Actor struct {
	UserID uint
	Role   UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
