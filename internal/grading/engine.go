package grading

import (
	"math"
	"strings"

	"github.com/quizforge/quizforge/internal/quiz"
)

// Detail is the per-question outcome of one submission.
type Detail struct {
	ID            string      `json:"id"`
	Type          string      `json:"type"`
	Prompt        string      `json:"prompt"`
	Correct       bool        `json:"correct"`
	CorrectAnswer interface{} `json:"correct_answer"`
	StudentAnswer interface{} `json:"student_answer"`
	Explanation   string      `json:"explanation"`
}

// Result is the aggregate outcome of scoring one submission. Score equals
// the number of correct answers; Accuracy is a percentage, 0 when the quiz
// is empty.
type Result struct {
	Total    int      `json:"total"`
	Correct  int      `json:"correct"`
	Score    int      `json:"score"`
	Accuracy float64  `json:"accuracy"`
	Details  []Detail `json:"details"`
}

// Strategy checks a single question against the submitted answer. It
// returns whether the answer is correct plus the echoed expected and
// submitted values for the detail record.
type Strategy interface {
	Check(q quiz.Question, answer interface{}) (correct bool, correctAnswer, studentAnswer interface{})
}

// Evaluator routes by question type to the matching Strategy. Unknown types
// are never marked correct; both values are echoed back for diagnostics.
type Evaluator struct {
	strategies map[string]Strategy
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		strategies: map[string]Strategy{
			quiz.TypeMCQ:             mcqStrategy{},
			quiz.TypeMultipleCorrect: multipleCorrectStrategy{},
			quiz.TypeTrueFalse:       trueFalseStrategy{},
			quiz.TypeFillBlank:       fillBlankStrategy{},
		},
	}
}

// Evaluate scores a submission against a question set. Answers are keyed by
// question ID; a missing key counts as "no answer". It never fails: absent
// or malformed answers score incorrect.
func (e *Evaluator) Evaluate(questions []quiz.Question, answers map[string]interface{}) Result {
	res := Result{Total: len(questions), Details: make([]Detail, 0, len(questions))}
	for _, q := range questions {
		answer := answers[q.ID]
		d := Detail{ID: q.ID, Type: q.Type, Prompt: q.Prompt, Explanation: q.Explanation}
		if s, ok := e.strategies[q.Type]; ok {
			d.Correct, d.CorrectAnswer, d.StudentAnswer = s.Check(q, answer)
		} else {
			d.CorrectAnswer = q.Answer.Value()
			d.StudentAnswer = answer
		}
		if d.Correct {
			res.Correct++
		}
		res.Details = append(res.Details, d)
	}
	res.Score = res.Correct
	if res.Total > 0 {
		res.Accuracy = float64(res.Correct) / float64(res.Total) * 100.0
	}
	return res
}

// --- Strategies ---

type mcqStrategy struct{}

func (mcqStrategy) Check(q quiz.Question, answer interface{}) (bool, interface{}, interface{}) {
	idx, ok := asInt(answer)
	if !ok {
		return false, q.Answer.Value(), answer
	}
	correct := q.Answer.Choice != nil && idx == *q.Answer.Choice
	return correct, q.Answer.Value(), idx
}

type multipleCorrectStrategy struct{}

func (multipleCorrectStrategy) Check(q quiz.Question, answer interface{}) (bool, interface{}, interface{}) {
	want := intSet(q.Answer.Choices)
	got, submitted := asIntSlice(answer)
	gotSet := intSet(got)
	// exact set equality only: partial overlap never counts
	correct := submitted && len(gotSet) > 0 && setEqual(gotSet, want)
	key := q.Answer.Choices
	if key == nil {
		key = []int{}
	}
	return correct, key, got
}

type trueFalseStrategy struct{}

func (trueFalseStrategy) Check(q quiz.Question, answer interface{}) (bool, interface{}, interface{}) {
	b, ok := answer.(bool)
	if !ok {
		// absent or non-boolean: recorded as unanswered, never coerced
		return false, q.Answer.Value(), nil
	}
	correct := q.Answer.Truth != nil && b == *q.Answer.Truth
	return correct, q.Answer.Value(), b
}

type fillBlankStrategy struct{}

func (fillBlankStrategy) Check(q quiz.Question, answer interface{}) (bool, interface{}, interface{}) {
	raw, _ := answer.(string)
	got := strings.ToLower(strings.TrimSpace(raw))
	want := ""
	if q.Answer.Text != nil {
		want = strings.ToLower(strings.TrimSpace(*q.Answer.Text))
	}
	correct := got != "" && want != "" && got == want
	return correct, q.Answer.Value(), raw
}

// --- helpers ---

// asInt accepts the integer shapes a JSON decode or a direct Go caller can
// produce. Fractional floats are not integers.
func asInt(v interface{}) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if t == math.Trunc(t) {
			return int(t), true
		}
	}
	return 0, false
}

// asIntSlice reports both the normalized indices and whether the submitted
// value was a list at all.
func asIntSlice(v interface{}) ([]int, bool) {
	switch t := v.(type) {
	case []int:
		return t, true
	case []interface{}:
		out := make([]int, 0, len(t))
		for _, e := range t {
			if i, ok := asInt(e); ok {
				out = append(out, i)
			}
		}
		return out, true
	default:
		return []int{}, false
	}
}

func intSet(ix []int) map[int]struct{} {
	m := make(map[int]struct{}, len(ix))
	for _, i := range ix {
		m[i] = struct{}{}
	}
	return m
}

func setEqual(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
