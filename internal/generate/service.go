package generate

import (
	"context"
	"log"

	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/quiz"
)

// Service orchestrates question generation: LLM backend first, heuristic
// fallback second. The two tiers are never merged.
type Service struct {
	provider llm.Provider // nil: heuristic only
}

// NewService builds an orchestrator around an optional LLM provider. Passing
// nil disables the LLM tier entirely.
func NewService(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

// Generate returns a question list for the source text. It never returns an
// empty list without having tried the heuristic tier, and never returns an
// error: provider failures and unparseable output degrade silently.
func (s *Service) Generate(ctx context.Context, sourceText string, settings quiz.Settings) []quiz.Question {
	if s.provider != nil {
		raw, err := s.provider.Generate(ctx, BuildPrompt(sourceText, settings))
		if err != nil {
			log.Printf("llm generation failed, falling back to heuristic: %v", err)
		} else if parsed := ParseLLMOutput(raw); len(parsed) > 0 {
			return parsed
		}
	}
	return Heuristic(sourceText, settings)
}
