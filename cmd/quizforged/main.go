package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/quizforge/quizforge/internal/api/http"
	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/db"
	"github.com/quizforge/quizforge/internal/generate"
	"github.com/quizforge/quizforge/internal/grading"
	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := quiz.NewSQLStore(dbh, cfg.DBDriver)

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	provider := providerFromConfig(cfg)
	gen := generate.NewService(provider)
	evaluator := grading.NewEvaluator()

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(90 * time.Second)) // generation may wait on the LLM tier

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(ar chi.Router) {
		ar.Post("/create_test", api.CreateQuizHandler(store, bs, gen))
		ar.Get("/test/{testID}", api.GetQuizHandler(store))
		ar.Post("/submit/{testID}", api.SubmitHandler(store, evaluator))
		ar.Post("/rate/{testID}", api.RateHandler(store))
		ar.Get("/export/{testID}", api.ExportHandler(cfg.PublicURL))
		ar.Post("/chat", api.ChatHandler(store, provider))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, llm=%s)", cfg.HTTPAddr, cfg.DBDriver, llmName(cfg))
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

// providerFromConfig selects the LLM backend. Missing credentials mean no
// provider at all: generation then runs heuristic-only, it never errors at
// request time for a misconfigured backend.
func providerFromConfig(cfg config.Config) llm.Provider {
	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Printf("PREFERRED_LLM=gemini but GEMINI_API_KEY unset; using heuristic generation")
			return nil
		}
		return llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
	case "huggingface":
		if cfg.HFAPIKey == "" {
			log.Printf("PREFERRED_LLM=huggingface but HUGGINGFACE_API_KEY unset; using heuristic generation")
			return nil
		}
		return llm.NewHuggingFaceClient(cfg.HFAPIKey, cfg.HFModel, cfg.LLMTimeout)
	}
	return nil
}

func llmName(cfg config.Config) string {
	if cfg.LLMProvider == "" {
		return "heuristic"
	}
	return cfg.LLMProvider
}
