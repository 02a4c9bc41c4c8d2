package quiz

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("quiz not found")
	ErrSubmissionNotFound = errors.New("submission not found")
)

type Store interface {
	PutQuiz(ctx context.Context, q Quiz) error
	// GetQuiz is student-safe: answer keys are stripped.
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	// GetQuizAdmin returns the full quiz including answer keys, for grading
	// and authoring.
	GetQuizAdmin(ctx context.Context, id string) (Quiz, error)

	SaveSubmission(ctx context.Context, sub Submission) error
	GetSubmission(ctx context.Context, id string) (Submission, error)

	SaveRating(ctx context.Context, r Rating) error
}
