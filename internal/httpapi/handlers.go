package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"newscaster/internal/ai"
	"newscaster/internal/model"
	"newscaster/internal/news"
	"newscaster/internal/podcast"
	"newscaster/internal/storage"
	"newscaster/internal/user"

	"github.com/go-chi/chi/v5"
)

const sessionCookie = "username"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, podcast.ErrNoArticles):
		status = http.StatusNotFound
	case errors.Is(err, user.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, user.ErrDuplicateUsername),
		errors.Is(err, user.ErrDuplicateEmail),
		errors.Is(err, user.ErrInvalidConfirmationCode),
		errors.Is(err, news.ErrPreferencesNotSet):
		status = http.StatusBadRequest
	case errors.Is(err, news.ErrUpstreamUnavailable),
		errors.Is(err, ai.ErrSummarization),
		errors.Is(err, ai.ErrScriptGeneration),
		errors.Is(err, ai.ErrSynthesis):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}
	if status >= 500 {
		slog.Error("httpapi: request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return false
	}
	return true
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "username, email and password are required"})
		return
	}
	if err := s.users.SignUp(r.Context(), req.Username, req.Email, req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Signup initiated. Please check your email to confirm your account."})
}

func (s *Server) handleVerifyConfirmation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.users.VerifyConfirmation(r.Context(), req.Email, req.Code); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Account confirmed successfully"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}
	u, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    u.Username,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Login successful", "username": u.Username})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		writeJSON(w, http.StatusOK, map[string]any{"isLoggedIn": false, "username": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"isLoggedIn": true, "username": c.Value})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	u, err := s.users.Get(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	prefs := model.Preferences{}
	if u.Preferences != nil {
		prefs = *u.Preferences
	}
	writeJSON(w, http.StatusOK, map[string]any{"username": u.Username, "preferences": prefs})
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	var req struct {
		Country        string `json:"country"`
		Category       string `json:"category"`
		Sources        string `json:"sources"`
		SummaryStyle   string `json:"summary_style"`
		FrequencyHours int    `json:"frequency_hours"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.FrequencyHours <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "frequency_hours must be positive"})
		return
	}
	prefs := model.Preferences{
		Country:        req.Country,
		Category:       req.Category,
		Sources:        req.Sources,
		SummaryStyle:   model.ParseStyle(req.SummaryStyle),
		FrequencyHours: req.FrequencyHours,
	}
	if err := s.users.UpdatePreferences(r.Context(), username, prefs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Preferences updated successfully"})
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.users.UpdatePassword(r.Context(), username, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if err := s.users.Delete(r.Context(), username); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User " + username + " and associated data deleted"})
}

func (s *Server) handleGetNews(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	articles, err := s.news.Refresh(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	var req struct {
		URL                string `json:"url"`
		ReadingTimeSeconds int    `json:"reading_time_seconds"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.news.MarkRead(r.Context(), username, req.URL, req.ReadingTimeSeconds); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Article marked as read", "url": req.URL})
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	stats, err := s.news.Statistics(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleGetPodcast(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	audio, err := s.podcasts.GetOrCreate(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

func (s *Server) handleAddPoints(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	var req struct {
		Points int `json:"points"`
	}
	if !decode(w, r, &req) {
		return
	}
	total, err := s.users.AddPoints(r.Context(), username, req.Points)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"username": username, "points": total})
}

func (s *Server) handleGetPoints(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	u, err := s.users.Get(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"username": username, "points": u.Points})
}

func (s *Server) handleGetStreak(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	u, err := s.users.Get(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"streak": u.Streak})
}
