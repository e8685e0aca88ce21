package models

import "time"

type Choice struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	QuestionID uint      `json:"question_id" gorm:"not null;index"`
	Text       string    `json:"text" gorm:"size:200;not null"`
	VoteCount  int       `json:"vote_count" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at"`
}
