package generate

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge/internal/quiz"
)

// ParseLLMOutput extracts the first balanced-looking JSON array from raw
// model output and normalizes its elements into questions. Elements missing
// a prompt or type are dropped; missing id, difficulty, topic and
// explanation are defaulted. Any parse failure yields an empty list, which
// the orchestrator treats as "fall back to the heuristic".
func ParseLLMOutput(raw string) []quiz.Question {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end <= start {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return nil
	}
	out := make([]quiz.Question, 0, len(items))
	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			continue
		}
		if _, ok := fields["prompt"]; !ok {
			continue
		}
		if _, ok := fields["type"]; !ok {
			continue
		}
		var q quiz.Question
		if err := json.Unmarshal(item, &q); err != nil {
			continue
		}
		out = append(out, fillDefaults(q))
	}
	return out
}

func fillDefaults(q quiz.Question) quiz.Question {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.Difficulty == "" {
		q.Difficulty = quiz.DifficultyMedium
	}
	if q.Topic == "" {
		q.Topic = "General"
	}
	return q
}
