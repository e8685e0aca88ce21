package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var refNow = time.Date(2025, 1, 25, 20, 24, 0, 0, time.UTC)

func questionAt(id uint, offset time.Duration) Question {
	return Question{ID: id, Text: "q", PublicationDate: refNow.Add(offset)}
}

func TestIsPublished(t *testing.T) {
	assert.True(t, questionAt(1, -30*24*time.Hour).IsPublished(refNow))
	assert.True(t, questionAt(1, 0).IsPublished(refNow))
	assert.False(t, questionAt(1, time.Second).IsPublished(refNow))
	assert.False(t, questionAt(1, 30*24*time.Hour).IsPublished(refNow))
}

func TestWasPublishedRecently(t *testing.T) {
	tests := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{"future question", 30 * 24 * time.Hour, false},
		{"one second ahead", time.Second, false},
		{"published now", 0, true},
		{"just under a day", -(23*time.Hour + 59*time.Minute + 59*time.Second), true},
		{"exactly one day", -24 * time.Hour, true},
		{"one day and one second", -(24*time.Hour + time.Second), false},
		{"old question", -30 * 24 * time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, questionAt(1, tt.offset).WasPublishedRecently(refNow))
		})
	}
}

func TestListPublished(t *testing.T) {
	questions := []Question{
		questionAt(1, -3*time.Hour),
		questionAt(2, 2*time.Hour),
		questionAt(3, -time.Hour),
		questionAt(4, -3*time.Hour),
		questionAt(5, 0),
		questionAt(6, -48*time.Hour),
	}

	got := ListPublished(questions, refNow, 10)

	ids := make([]uint, 0, len(got))
	for _, q := range got {
		ids = append(ids, q.ID)
		assert.False(t, q.PublicationDate.After(refNow))
	}
	assert.Equal(t, []uint{5, 3, 4, 1, 6}, ids)
}

func TestListPublishedLimit(t *testing.T) {
	questions := []Question{
		questionAt(1, -time.Hour),
		questionAt(2, -2*time.Hour),
		questionAt(3, -3*time.Hour),
	}

	got := ListPublished(questions, refNow, 2)
	assert.Len(t, got, 2)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, uint(2), got[1].ID)

	assert.Empty(t, ListPublished(questions, refNow, 0))
	assert.Empty(t, ListPublished(questions, refNow, -1))
}

func TestListPublishedEmpty(t *testing.T) {
	got := ListPublished(nil, refNow, 5)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListPublishedOnlyFuture(t *testing.T) {
	got := ListPublished([]Question{questionAt(1, 30*24*time.Hour)}, refNow, 5)
	assert.Empty(t, got)
}

func TestQuestionOwnedBy(t *testing.T) {
	q := Question{AuthorID: SomeID(7)}
	assert.True(t, q.OwnedBy(7))
	assert.False(t, q.OwnedBy(8))
	assert.False(t, Question{}.OwnedBy(0))
}

func TestNewQuestionResults(t *testing.T) {
	q := questionAt(9, -2*time.Hour)
	q.Choices = []Choice{
		{ID: 1, QuestionID: 9, Text: "Not much", VoteCount: 3},
		{ID: 2, QuestionID: 9, Text: "The sky", VoteCount: 4},
	}

	results := NewQuestionResults(q, refNow)
	assert.Equal(t, 7, results.TotalVotes)
	assert.Len(t, results.Choices, 2)
	assert.True(t, results.WasPublishedRecently)
	assert.Equal(t, "2 hours ago", results.PublishedAgo)

	detail := NewQuestionDetail(q, refNow)
	assert.Equal(t, []ChoiceOption{{ID: 1, Text: "Not much"}, {ID: 2, Text: "The sky"}}, detail.Choices)
}
