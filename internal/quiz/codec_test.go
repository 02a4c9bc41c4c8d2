package quiz_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/quizforge/quizforge/internal/quiz"
)

func TestQuestionWireShape(t *testing.T) {
	q := quiz.Question{
		ID:          "q1",
		Type:        quiz.TypeMCQ,
		Difficulty:  quiz.DifficultyEasy,
		Prompt:      "Pick one",
		Options:     []string{"a", "b"},
		Answer:      quiz.IndexKey(1),
		Explanation: "because",
		Topic:       "General",
	}
	b, err := json.Marshal(q)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"correct":1`) {
		t.Errorf("mcq correct not a bare index: %s", b)
	}

	var back quiz.Question
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.Answer.Choice == nil || *back.Answer.Choice != 1 {
		t.Errorf("round trip lost answer key: %+v", back.Answer)
	}
}

func TestRedactedQuestionOmitsCorrect(t *testing.T) {
	q := quiz.Question{
		ID:     "q1",
		Type:   quiz.TypeTrueFalse,
		Prompt: "The sky is blue.",
		Answer: quiz.TruthKey(false),
	}
	b, err := json.Marshal(q.Redacted())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "correct") {
		t.Errorf("redacted question leaks the answer key: %s", b)
	}
}

func TestRedactedFalseKeyStillSerializes(t *testing.T) {
	// a true_false key of false must survive marshaling un-redacted
	q := quiz.Question{ID: "q1", Type: quiz.TypeTrueFalse, Prompt: "x", Answer: quiz.TruthKey(false)}
	b, err := json.Marshal(q)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"correct":false`) {
		t.Errorf("false answer key dropped: %s", b)
	}
}

func TestUnmarshalMalformedFieldsAreLenient(t *testing.T) {
	raw := `{"id":"q1","type":"multiple_correct","prompt":"pick","options":"bogus","correct":{"nested":true}}`
	var q quiz.Question
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		t.Fatalf("lenient decode failed: %v", err)
	}
	if q.Options != nil {
		t.Errorf("malformed options kept: %v", q.Options)
	}
	if !q.Answer.Empty() {
		t.Errorf("malformed correct kept: %+v", q.Answer)
	}
}
