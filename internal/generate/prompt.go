package generate

import (
	"encoding/json"
	"strings"

	"github.com/quizforge/quizforge/internal/quiz"
)

// sourceCap bounds how much source material is embedded in a generation
// prompt.
const sourceCap = 20000

// BuildPrompt produces the generation instruction for the LLM backend,
// requesting the same question schema ParseLLMOutput expects.
func BuildPrompt(sourceText string, settings quiz.Settings) string {
	sj, _ := json.Marshal(settings)
	var b strings.Builder
	b.WriteString("You are an expert educational question setter. Given the source material, generate a JSON array of questions.\n")
	b.WriteString("Each question must be an object with keys: id, type in ['mcq','multiple_correct','true_false','fill_blank'], difficulty in ['easy','medium','hard'], ")
	b.WriteString("prompt, options (array for choice types), correct (index for mcq, array of indices for multiple_correct, boolean for true_false, or string for fill_blank), explanation, topic.\n")
	b.WriteString("Adhere to the requested counts per type and difficulty. Keep prompts concise and unambiguous.\n")
	b.WriteString("Settings JSON: ")
	b.Write(sj)
	b.WriteString("\nSource material begins:\n")
	b.WriteString(truncate(sourceText, sourceCap))
	b.WriteString("\nSource material ends.")
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
