package httpapi

import (
	"context"
	"net/http"
	"time"

	"newscaster/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Users is the account service surface the handlers need.
type Users interface {
	SignUp(ctx context.Context, username, email, password string) error
	VerifyConfirmation(ctx context.Context, email, code string) error
	Login(ctx context.Context, username, password string) (model.User, error)
	Get(ctx context.Context, username string) (model.User, error)
	UpdatePreferences(ctx context.Context, username string, prefs model.Preferences) error
	UpdatePassword(ctx context.Context, username, current, updated string) error
	AddPoints(ctx context.Context, username string, delta int) (int, error)
	Delete(ctx context.Context, username string) error
}

// News is the article cache service surface the handlers need.
type News interface {
	Refresh(ctx context.Context, username string) ([]model.Article, error)
	MarkRead(ctx context.Context, username, url string, readingTimeSeconds int) error
	Statistics(ctx context.Context, username string) (model.Statistics, error)
}

// Podcasts is the podcast service surface the handlers need.
type Podcasts interface {
	GetOrCreate(ctx context.Context, username string) ([]byte, error)
}

// Server is the HTTP front for the news and podcast services.
type Server struct {
	users    Users
	news     News
	podcasts Podcasts
}

func NewServer(users Users, news News, podcasts Podcasts) *Server {
	return &Server{users: users, news: news, podcasts: podcasts}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.Timeout(5 * time.Minute))

	mux.Post("/signup", s.handleSignUp)
	mux.Post("/verify_confirmation", s.handleVerifyConfirmation)
	mux.Post("/login", s.handleLogin)
	mux.Get("/status", s.handleStatus)

	mux.Route("/user/{username}", func(r chi.Router) {
		r.Get("/", s.handleGetUser)
		r.Put("/password", s.handleUpdatePassword)
		r.Delete("/", s.handleDeleteUser)
	})
	mux.Put("/preferences/{username}", s.handleUpdatePreferences)

	mux.Route("/news/{username}", func(r chi.Router) {
		r.Get("/", s.handleGetNews)
		r.Patch("/read", s.handleMarkRead)
		r.Get("/statistics", s.handleStatistics)
	})
	mux.Get("/podcast/{username}", s.handleGetPodcast)

	mux.Post("/points/{username}", s.handleAddPoints)
	mux.Get("/points/{username}", s.handleGetPoints)
	mux.Get("/streak/{username}", s.handleGetStreak)

	return mux
}
