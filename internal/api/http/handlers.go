package http

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quizforge/quizforge/internal/extract"
	"github.com/quizforge/quizforge/internal/generate"
	"github.com/quizforge/quizforge/internal/grading"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/storage"
)

const maxUploadBytes = 32 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type quizResponse struct {
	TestID    string          `json:"test_id"`
	Title     string          `json:"title"`
	Questions []quiz.Question `json:"questions"`
}

// CreateQuizHandler accepts multipart (file upload) or JSON (url / raw text)
// and responds with the generated quiz. The authoring response keeps answer
// keys; the student read path strips them.
func CreateQuizHandler(store quiz.Store, blobs storage.BlobStore, gen *generate.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			title      string
			settings   quiz.Settings
			sourceText string
			url, text  string
		)

		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
				writeError(w, http.StatusBadRequest, "bad multipart form")
				return
			}
			title = r.FormValue("title")
			if raw := r.FormValue("settings"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &settings); err != nil {
					writeError(w, http.StatusBadRequest, "bad settings json")
					return
				}
			}
			url = r.FormValue("url")
			text = r.FormValue("text")

			if f, hdr, err := r.FormFile("file"); err == nil {
				defer f.Close()
				if extract.Allowed(hdr.Filename) {
					key := "uploads/" + uuid.NewString() + "_" + filepath.Base(hdr.Filename)
					if _, err := blobs.Put(key, f); err != nil {
						writeError(w, http.StatusInternalServerError, "store upload failed")
						return
					}
					extracted, err := extract.FromFile(blobs.Path(key))
					if err != nil {
						log.Printf("extract %s: %v", key, err)
					}
					sourceText = extracted
				}
			}
		} else {
			var req struct {
				Title    string        `json:"title"`
				Settings quiz.Settings `json:"settings"`
				URL      string        `json:"url"`
				Text     string        `json:"text"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "bad json")
				return
			}
			title, settings, url, text = req.Title, req.Settings, req.URL, req.Text
		}

		if sourceText == "" && url != "" {
			extracted, err := extract.FromURL(r.Context(), url)
			if err != nil {
				log.Printf("extract url %s: %v", url, err)
			}
			sourceText = extracted
		}
		if sourceText == "" {
			sourceText = text
		}
		if sourceText == "" {
			writeError(w, http.StatusBadRequest, "no content found from file, url, or text")
			return
		}
		if title == "" {
			title = "Untitled Test"
		}

		q := quiz.Quiz{
			ID:         uuid.NewString(),
			Title:      title,
			Settings:   settings,
			Questions:  gen.Generate(r.Context(), sourceText, settings),
			SourceText: sourceText,
		}
		if err := store.PutQuiz(r.Context(), q); err != nil {
			writeError(w, http.StatusInternalServerError, "persist quiz failed")
			return
		}
		writeJSON(w, http.StatusOK, quizResponse{TestID: q.ID, Title: q.Title, Questions: q.Questions})
	}
}

// GetQuizHandler serves the student view: answer keys stripped.
func GetQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "testID")
		q, err := store.GetQuiz(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "test not found")
			return
		}
		writeJSON(w, http.StatusOK, quizResponse{TestID: q.ID, Title: q.Title, Questions: q.Questions})
	}
}

type submitResponse struct {
	SubmissionID string `json:"submission_id"`
	grading.Result
}

// SubmitHandler scores an answer map against the stored quiz and persists
// the outcome.
func SubmitHandler(store quiz.Store, evaluator *grading.Evaluator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "testID")
		var req struct {
			StudentName string                 `json:"student_name"`
			Answers     map[string]interface{} `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.StudentName == "" {
			req.StudentName = "Anonymous"
		}
		if req.Answers == nil {
			req.Answers = map[string]interface{}{}
		}

		q, err := store.GetQuizAdmin(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "test not found")
			return
		}
		result := evaluator.Evaluate(q.Questions, req.Answers)

		details, err := json.Marshal(result.Details)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "encode details failed")
			return
		}
		sub := quiz.Submission{
			ID:          uuid.NewString(),
			QuizID:      id,
			StudentName: req.StudentName,
			Answers:     req.Answers,
			Score:       float64(result.Score),
			Accuracy:    result.Accuracy,
			Details:     details,
		}
		if err := store.SaveSubmission(r.Context(), sub); err != nil {
			writeError(w, http.StatusInternalServerError, "persist submission failed")
			return
		}
		writeJSON(w, http.StatusOK, submitResponse{SubmissionID: sub.ID, Result: result})
	}
}

// RateHandler records a 1-5 rating for one question of a quiz.
func RateHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "testID")
		var req struct {
			QuestionIdx *int `json:"question_idx"`
			Rating      int  `json:"rating"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.QuestionIdx == nil || *req.QuestionIdx < 0 || req.Rating < 1 || req.Rating > 5 {
			writeError(w, http.StatusBadRequest, "invalid rating payload")
			return
		}
		if _, err := store.GetQuizAdmin(r.Context(), id); err != nil {
			writeError(w, http.StatusNotFound, "test not found")
			return
		}
		rating := quiz.Rating{
			ID:          uuid.NewString(),
			QuizID:      id,
			QuestionIdx: *req.QuestionIdx,
			Rating:      req.Rating,
		}
		if err := store.SaveRating(r.Context(), rating); err != nil {
			writeError(w, http.StatusInternalServerError, "persist rating failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// ExportHandler returns a shareable student link for a quiz.
func ExportHandler(publicURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "testID")
		base := strings.TrimSuffix(publicURL, "/")
		if base == "" {
			scheme := "http"
			if r.TLS != nil {
				scheme = "https"
			}
			base = scheme + "://" + r.Host
		}
		writeJSON(w, http.StatusOK, map[string]string{"link": base + "/test/" + id})
	}
}
