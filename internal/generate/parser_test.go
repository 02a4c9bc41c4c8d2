package generate_test

import (
	"testing"

	"github.com/quizforge/quizforge/internal/generate"
	"github.com/quizforge/quizforge/internal/quiz"
)

func TestParseLLMOutputNoArray(t *testing.T) {
	for _, raw := range []string{
		"",
		"no json here",
		"]backwards[",
		"{\"prompt\": \"x\", \"type\": \"mcq\"}",
	} {
		if got := generate.ParseLLMOutput(raw); len(got) != 0 {
			t.Errorf("ParseLLMOutput(%q) = %d questions, want 0", raw, len(got))
		}
	}
}

func TestParseLLMOutputMissingRequiredKeys(t *testing.T) {
	if got := generate.ParseLLMOutput(`[{"foo": 1}]`); len(got) != 0 {
		t.Fatalf("expected no questions, got %d", len(got))
	}
	// one valid element among invalid ones survives
	raw := `[{"foo": 1}, {"prompt": "Pick one", "type": "mcq", "options": ["a","b"], "correct": 1}, {"type": "mcq"}]`
	got := generate.ParseLLMOutput(raw)
	if len(got) != 1 {
		t.Fatalf("expected 1 question, got %d", len(got))
	}
	if got[0].Prompt != "Pick one" {
		t.Errorf("prompt = %q", got[0].Prompt)
	}
	if got[0].Answer.Choice == nil || *got[0].Answer.Choice != 1 {
		t.Errorf("answer index not preserved: %+v", got[0].Answer)
	}
}

func TestParseLLMOutputFillsDefaults(t *testing.T) {
	got := generate.ParseLLMOutput(`Sure! Here is your quiz:
[{"prompt": "Water is wet.", "type": "true_false", "correct": true}]
Let me know if you need more.`)
	if len(got) != 1 {
		t.Fatalf("expected 1 question, got %d", len(got))
	}
	q := got[0]
	if q.ID == "" {
		t.Error("id not defaulted")
	}
	if q.Difficulty != quiz.DifficultyMedium {
		t.Errorf("difficulty = %q, want medium", q.Difficulty)
	}
	if q.Topic != "General" {
		t.Errorf("topic = %q, want General", q.Topic)
	}
	if q.Answer.Truth == nil || !*q.Answer.Truth {
		t.Error("boolean answer key not preserved")
	}
}

func TestParseLLMOutputMalformedCorrectIsNonMatchable(t *testing.T) {
	got := generate.ParseLLMOutput(`[{"prompt": "x", "type": "mcq", "correct": "not an index"}]`)
	if len(got) != 1 {
		t.Fatalf("expected 1 question, got %d", len(got))
	}
	if !got[0].Answer.Empty() {
		t.Errorf("malformed correct should decode to an empty key, got %+v", got[0].Answer)
	}
}

func TestParseLLMOutputInvalidJSON(t *testing.T) {
	if got := generate.ParseLLMOutput(`[{"prompt": "x", "type":`); len(got) != 0 {
		t.Fatalf("expected no questions from truncated JSON, got %d", len(got))
	}
}
