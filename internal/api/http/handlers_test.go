package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/quizforge/quizforge/internal/api/http"
	"github.com/quizforge/quizforge/internal/db"
	"github.com/quizforge/quizforge/internal/generate"
	"github.com/quizforge/quizforge/internal/grading"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/storage"
)

const sourceText = "The water cycle moves moisture between oceans, atmosphere and land continuously. " +
	"Evaporation from the surface is driven by energy arriving from the sun. " +
	"Condensation forms clouds when rising water vapour cools in the atmosphere. " +
	"Precipitation returns water to the surface as rain, snow or hail eventually."

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "api_test.db")
	dbh, err := db.Open(ctx, db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })

	store := quiz.NewSQLStore(dbh, "sqlite")
	bs, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}
	gen := generate.NewService(nil)
	evaluator := grading.NewEvaluator()

	r := chi.NewRouter()
	r.Route("/api", func(ar chi.Router) {
		ar.Post("/create_test", api.CreateQuizHandler(store, bs, gen))
		ar.Get("/test/{testID}", api.GetQuizHandler(store))
		ar.Post("/submit/{testID}", api.SubmitHandler(store, evaluator))
		ar.Post("/rate/{testID}", api.RateHandler(store))
		ar.Get("/export/{testID}", api.ExportHandler(""))
		ar.Post("/chat", api.ChatHandler(store, nil))
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createQuiz(t *testing.T, srv *httptest.Server) (string, []quiz.Question) {
	t.Helper()
	resp := postJSON(t, srv.URL+"/api/create_test", map[string]interface{}{
		"title":    "Water Cycle",
		"text":     sourceText,
		"settings": map[string]interface{}{"num_questions": 4},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status %d", resp.StatusCode)
	}
	var out struct {
		TestID    string          `json:"test_id"`
		Title     string          `json:"title"`
		Questions []quiz.Question `json:"questions"`
	}
	decode(t, resp, &out)
	if out.TestID == "" || len(out.Questions) == 0 {
		t.Fatalf("unexpected create response: %+v", out)
	}
	return out.TestID, out.Questions
}

func TestCreateQuizRejectsEmptySource(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/api/create_test", map[string]interface{}{"title": "Empty"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
}

func TestCreateQuizMultipartUpload(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("title", "Uploaded")
	fw, err := mw.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(sourceText)); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	resp, err := http.Post(srv.URL+"/api/create_test", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}
	var out struct {
		TestID    string          `json:"test_id"`
		Questions []quiz.Question `json:"questions"`
	}
	decode(t, resp, &out)
	if len(out.Questions) == 0 {
		t.Fatal("no questions generated from upload")
	}
}

func TestGetQuizMasksAnswers(t *testing.T) {
	srv := newTestServer(t)
	id, _ := createQuiz(t, srv)

	resp, err := http.Get(srv.URL + "/api/test/" + id)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var out struct {
		Questions []map[string]interface{} `json:"questions"`
	}
	decode(t, resp, &out)
	if len(out.Questions) == 0 {
		t.Fatal("no questions returned")
	}
	for _, q := range out.Questions {
		if _, leaked := q["correct"]; leaked {
			t.Errorf("student view leaks correct for %v", q["id"])
		}
	}
}

func TestGetQuizNotFound(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/test/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d, want 404", resp.StatusCode)
	}
}

func TestSubmitAllCorrect(t *testing.T) {
	srv := newTestServer(t)
	id, questions := createQuiz(t, srv)

	answers := map[string]interface{}{}
	for _, q := range questions {
		if v := q.Answer.Value(); v != nil {
			answers[q.ID] = v
		}
	}
	resp := postJSON(t, srv.URL+"/api/submit/"+id, map[string]interface{}{
		"student_name": "Ada",
		"answers":      answers,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var out struct {
		SubmissionID string  `json:"submission_id"`
		Total        int     `json:"total"`
		Correct      int     `json:"correct"`
		Accuracy     float64 `json:"accuracy"`
	}
	decode(t, resp, &out)
	if out.SubmissionID == "" {
		t.Error("missing submission_id")
	}
	if out.Total != len(questions) {
		t.Errorf("total %d, want %d", out.Total, len(questions))
	}
	if out.Correct != out.Total || out.Accuracy != 100.0 {
		t.Errorf("correct=%d/%d accuracy=%v, want all correct", out.Correct, out.Total, out.Accuracy)
	}
}

func TestSubmitNoAnswers(t *testing.T) {
	srv := newTestServer(t)
	id, questions := createQuiz(t, srv)

	resp := postJSON(t, srv.URL+"/api/submit/"+id, map[string]interface{}{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var out struct {
		Correct  int     `json:"correct"`
		Accuracy float64 `json:"accuracy"`
		Total    int     `json:"total"`
	}
	decode(t, resp, &out)
	if out.Correct != 0 || out.Accuracy != 0.0 {
		t.Errorf("correct=%d accuracy=%v, want 0 / 0", out.Correct, out.Accuracy)
	}
	if out.Total != len(questions) {
		t.Errorf("total %d, want %d", out.Total, len(questions))
	}
}

func TestRateValidation(t *testing.T) {
	srv := newTestServer(t)
	id, _ := createQuiz(t, srv)

	bad := []map[string]interface{}{
		{"question_idx": 0, "rating": 0},
		{"question_idx": 0, "rating": 6},
		{"question_idx": -1, "rating": 3},
		{"rating": 3}, // question_idx missing
	}
	for _, payload := range bad {
		resp := postJSON(t, srv.URL+"/api/rate/"+id, payload)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("payload %v: status %d, want 400", payload, resp.StatusCode)
		}
	}

	resp := postJSON(t, srv.URL+"/api/rate/"+id, map[string]interface{}{"question_idx": 0, "rating": 5})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("valid rating status %d", resp.StatusCode)
	}
	var out map[string]bool
	decode(t, resp, &out)
	if !out["ok"] {
		t.Error("expected ok=true")
	}

	resp = postJSON(t, srv.URL+"/api/rate/nope", map[string]interface{}{"question_idx": 0, "rating": 5})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown quiz: status %d, want 404", resp.StatusCode)
	}
}

func TestExportLink(t *testing.T) {
	srv := newTestServer(t)
	id, _ := createQuiz(t, srv)

	resp, err := http.Get(srv.URL + "/api/export/" + id)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]string
	decode(t, resp, &out)
	if !strings.HasSuffix(out["link"], "/test/"+id) {
		t.Errorf("link = %q", out["link"])
	}
}

func TestChatWithoutProvider(t *testing.T) {
	srv := newTestServer(t)
	id, _ := createQuiz(t, srv)

	resp := postJSON(t, srv.URL+"/api/chat", map[string]interface{}{
		"message": "What is evaporation?",
		"test_id": id,
	})
	var out map[string]string
	decode(t, resp, &out)
	if !strings.Contains(out["reply"], "What is evaporation?") {
		t.Errorf("mock reply should echo the question: %q", out["reply"])
	}

	resp = postJSON(t, srv.URL+"/api/chat", map[string]interface{}{"message": ""})
	decode(t, resp, &out)
	if out["reply"] != "Please enter a question." {
		t.Errorf("empty message reply = %q", out["reply"])
	}
}
