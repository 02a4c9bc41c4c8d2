package quiz

import "time"

// Question types.
const (
	TypeMCQ             = "mcq"
	TypeMultipleCorrect = "multiple_correct"
	TypeTrueFalse       = "true_false"
	TypeFillBlank       = "fill_blank"
)

// Difficulties. Informational only; scoring ignores them.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// AnswerKey is the graded answer of a question. Exactly one field is
// meaningful, selected by the question type: Choice for mcq, Choices for
// multiple_correct, Truth for true_false, Text for fill_blank. A zero key
// never matches any submitted answer.
type AnswerKey struct {
	Choice  *int
	Choices []int
	Truth   *bool
	Text    *string
}

func IndexKey(i int) AnswerKey      { return AnswerKey{Choice: &i} }
func IndicesKey(ix []int) AnswerKey { return AnswerKey{Choices: ix} }
func TruthKey(b bool) AnswerKey     { return AnswerKey{Truth: &b} }
func TextKey(s string) AnswerKey    { return AnswerKey{Text: &s} }

// Empty reports whether the key carries no answer at all.
func (k AnswerKey) Empty() bool {
	return k.Choice == nil && k.Choices == nil && k.Truth == nil && k.Text == nil
}

// Value returns the key's wire representation, or nil when empty.
func (k AnswerKey) Value() interface{} {
	switch {
	case k.Choice != nil:
		return *k.Choice
	case k.Choices != nil:
		return k.Choices
	case k.Truth != nil:
		return *k.Truth
	case k.Text != nil:
		return *k.Text
	}
	return nil
}

// Question is one generated quiz item. Prompt is never empty for questions
// produced by this module; Options is set only for choice types.
type Question struct {
	ID          string
	Type        string
	Difficulty  string
	Prompt      string
	Options     []string
	Answer      AnswerKey // never exposed to students before submission
	Explanation string
	Topic       string
}

// Redacted returns a copy safe to serve to students: the answer key is
// cleared, so the "correct" field is omitted from its JSON form.
func (q Question) Redacted() Question {
	q.Answer = AnswerKey{}
	return q
}

// Quiz is a stored question set together with the material it was built from.
type Quiz struct {
	ID         string
	Title      string
	CreatedAt  time.Time
	Settings   Settings
	Questions  []Question
	SourceText string
}

// Submission is one scored attempt at a quiz. Details holds the serialized
// per-question outcome list exactly as it was returned to the student.
type Submission struct {
	ID          string
	QuizID      string
	StudentName string
	SubmittedAt time.Time
	Answers     map[string]interface{}
	Score       float64
	Accuracy    float64
	Details     []byte
}

// Rating is one 1-5 star rating of a question, addressed by its position in
// the quiz.
type Rating struct {
	ID          string
	QuizID      string
	QuestionIdx int
	Rating      int
	CreatedAt   time.Time
}
