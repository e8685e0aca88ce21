package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is the kind shared by every lookup that misses, including
// questions that exist but are not yet published.
var ErrNotFound = errors.New("not found")

var (
	ErrQuestionNotFound = fmt.Errorf("question %w", ErrNotFound)
	ErrChoiceNotFound   = fmt.Errorf("choice %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)

	ErrInvalidSubmission  = errors.New("invalid submission")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidLimit       = errors.New("limit out of range")
)

// NoChoiceSelectedMessage is shown back to the voter when a vote carries no
// usable choice.
const NoChoiceSelectedMessage = "You didn't select a choice."
