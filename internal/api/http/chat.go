package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/quiz"
)

const chatContextCap = 4000

// ChatHandler answers free-form study questions, optionally grounded in a
// quiz's source material. Provider failures degrade to a canned reply; the
// request itself never fails.
func ChatHandler(store quiz.Store, provider llm.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message string `json:"message"`
			TestID  string `json:"test_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}

		context := ""
		if req.TestID != "" {
			if q, err := store.GetQuizAdmin(r.Context(), req.TestID); err == nil {
				context = q.SourceText
			}
		}
		if req.Message == "" {
			writeJSON(w, http.StatusOK, map[string]string{"reply": "Please enter a question."})
			return
		}

		if provider == nil {
			reply := "I'm here to help. "
			if context != "" {
				reply += "Context: " + prefix(context, 200) + " ...\n"
			}
			reply += "Your question was: '" + req.Message + "'."
			writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
			return
		}

		var b strings.Builder
		b.WriteString("You are a helpful educational assistant. Answer clearly and briefly.\n")
		if context != "" {
			b.WriteString("Use this context if relevant:\n")
			b.WriteString(prefix(context, chatContextCap))
			b.WriteString("\n")
		}
		b.WriteString("User: ")
		b.WriteString(req.Message)
		b.WriteString("\nAssistant:")

		reply, err := provider.Generate(r.Context(), b.String())
		if err != nil || strings.TrimSpace(reply) == "" {
			reply = "I'm temporarily unavailable. Please try again shortly."
		}
		writeJSON(w, http.StatusOK, map[string]string{"reply": strings.TrimSpace(reply)})
	}
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
