package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/alphaquiz/monthlyquiz/internal/api/http"
	"github.com/alphaquiz/monthlyquiz/internal/auth"
	"github.com/alphaquiz/monthlyquiz/internal/config"
	"github.com/alphaquiz/monthlyquiz/internal/db"
	"github.com/alphaquiz/monthlyquiz/internal/eventlog"
	"github.com/alphaquiz/monthlyquiz/internal/progress"
	"github.com/alphaquiz/monthlyquiz/internal/quizbank"
	"github.com/alphaquiz/monthlyquiz/internal/rbac"
	"github.com/alphaquiz/monthlyquiz/internal/relay"
	"github.com/alphaquiz/monthlyquiz/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	progressStore := progress.NewSQLStore(dbh)
	events := eventlog.NewRepo(dbh, cfg.SiteID)

	// --- Blob store (question banks, published assets) ---
	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}
	banks := quizbank.BlobSource{Store: bs}

	// --- Auth + relay ---
	authSvc := auth.NewService(cfg.AuthHMACSecret)
	relayClient := relay.New(cfg.RelayAccessKey)
	relayClient.Endpoint = cfg.RelayEndpoint

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public surfaces
	r.Post("/auth/login", api.LoginHandler(authSvc))
	r.Get("/auth/check", api.CheckHandler(authSvc))
	r.Get("/quiz/schedule", api.ScheduleHandler(time.Now))
	r.Get("/quiz/exam", api.ExamHandler(banks, time.Now))
	r.Get("/quizdata/{file}", api.GetBankHandler(bs))

	// Student surfaces (auth_token cookie → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.CookieMiddleware(authSvc))

		pr.With(rbac.Require("progress:save")).
			Post("/progress/save", api.SaveProgressHandler(progressStore))
		pr.With(rbac.Require("progress:load")).
			Get("/progress/load", api.LoadProgressHandler(progressStore))
		pr.With(rbac.Require("quiz:submit")).
			Post("/quiz/submit", api.SubmitHandler(banks, relayClient, events, time.Now))
	})

	// Instructor surfaces
	r.Group(func(ar chi.Router) {
		ar.Use(api.AdminBasicAuth(cfg.AdminUser, cfg.AdminPassHash))

		ar.With(rbac.Require("bank:upload")).
			Put("/quizdata/{file}", api.UploadBankHandler(bs))
		ar.With(rbac.Require("submissions:list")).
			Get("/admin/submissions", api.SubmissionsHandler(events))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
