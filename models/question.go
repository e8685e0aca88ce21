package models

import (
	"sort"
	"time"

	"gorm.io/gorm"
)

// RecentWindow is how far back a publication still counts as recent.
const RecentWindow = 24 * time.Hour

type Question struct {
	ID              uint       `json:"id" gorm:"primarykey"`
	Text            string     `json:"text" gorm:"size:200;not null"`
	PublicationDate time.Time  `json:"publication_date" gorm:"not null;index"`
	AuthorID        OptionalID `json:"author_id" gorm:"index"`
	Choices         []Choice   `json:"choices,omitempty" gorm:"foreignKey:QuestionID"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.PublicationDate.IsZero() {
		q.PublicationDate = time.Now()
	}
	q.PublicationDate = q.PublicationDate.UTC()
	return nil
}

// IsPublished reports whether the question is visible at now.
func (q Question) IsPublished(now time.Time) bool {
	return !q.PublicationDate.After(now)
}

// WasPublishedRecently reports whether now-RecentWindow <= publication <= now.
// Both bounds are inclusive and a future publication is never recent.
func (q Question) WasPublishedRecently(now time.Time) bool {
	return q.IsPublished(now) && !q.PublicationDate.Before(now.Add(-RecentWindow))
}

// ListPublished returns at most limit questions published at now, newest
// first, with ties ordered by descending id.
func ListPublished(questions []Question, now time.Time, limit int) []Question {
	if limit <= 0 {
		return []Question{}
	}

	published := make([]Question, 0, len(questions))
	for _, q := range questions {
		if q.IsPublished(now) {
			published = append(published, q)
		}
	}

	sort.SliceStable(published, func(i, j int) bool {
		a, b := published[i], published[j]
		if !a.PublicationDate.Equal(b.PublicationDate) {
			return a.PublicationDate.After(b.PublicationDate)
		}
		return a.ID > b.ID
	})

	if len(published) > limit {
		published = published[:limit]
	}
	return published
}

// OwnedBy reports whether userID is the question's author.
func (q Question) OwnedBy(userID uint) bool {
	return q.AuthorID.Is(userID)
}
