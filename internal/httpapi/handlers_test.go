package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"newscaster/internal/model"
	"newscaster/internal/news"
	"newscaster/internal/podcast"
	"newscaster/internal/storage"
	"newscaster/internal/user"
)

type fakeUsers struct {
	loginErr  error
	prefsErr  error
	signupErr error
	u         model.User
}

func (f *fakeUsers) SignUp(ctx context.Context, username, email, password string) error {
	return f.signupErr
}
func (f *fakeUsers) VerifyConfirmation(ctx context.Context, email, code string) error { return nil }
func (f *fakeUsers) Login(ctx context.Context, username, password string) (model.User, error) {
	if f.loginErr != nil {
		return model.User{}, f.loginErr
	}
	return f.u, nil
}
func (f *fakeUsers) Get(ctx context.Context, username string) (model.User, error) {
	if f.u.Username != username {
		return model.User{}, storage.ErrNotFound
	}
	return f.u, nil
}
func (f *fakeUsers) UpdatePreferences(ctx context.Context, username string, prefs model.Preferences) error {
	return f.prefsErr
}
func (f *fakeUsers) UpdatePassword(ctx context.Context, username, current, updated string) error {
	return nil
}
func (f *fakeUsers) AddPoints(ctx context.Context, username string, delta int) (int, error) {
	return delta, nil
}
func (f *fakeUsers) Delete(ctx context.Context, username string) error { return nil }

type fakeNews struct {
	articles []model.Article
	err      error
}

func (f *fakeNews) Refresh(ctx context.Context, username string) ([]model.Article, error) {
	return f.articles, f.err
}
func (f *fakeNews) MarkRead(ctx context.Context, username, url string, readingTimeSeconds int) error {
	return f.err
}
func (f *fakeNews) Statistics(ctx context.Context, username string) (model.Statistics, error) {
	return model.Statistics{}, f.err
}

type fakePodcasts struct {
	audio []byte
	err   error
}

func (f *fakePodcasts) GetOrCreate(ctx context.Context, username string) ([]byte, error) {
	return f.audio, f.err
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLoginSuccessSetsCookie(t *testing.T) {
	srv := NewServer(&fakeUsers{u: model.User{Username: "alice"}}, &fakeNews{}, &fakePodcasts{})
	rec := doRequest(t, srv.Router(), http.MethodPost, "/login", map[string]string{"username": "alice", "password": "pw"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionCookie || cookies[0].Value != "alice" {
		t.Errorf("session cookie not set: %+v", cookies)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		server *Server
		method string
		path   string
		body   any
		want   int
	}{
		{
			name:   "invalid credentials",
			server: NewServer(&fakeUsers{loginErr: user.ErrInvalidCredentials}, &fakeNews{}, &fakePodcasts{}),
			method: http.MethodPost, path: "/login",
			body: map[string]string{"username": "x", "password": "y"},
			want: http.StatusUnauthorized,
		},
		{
			name:   "duplicate username",
			server: NewServer(&fakeUsers{signupErr: user.ErrDuplicateUsername}, &fakeNews{}, &fakePodcasts{}),
			method: http.MethodPost, path: "/signup",
			body: map[string]string{"username": "x", "email": "x@y.z", "password": "p"},
			want: http.StatusBadRequest,
		},
		{
			name:   "news upstream down",
			server: NewServer(&fakeUsers{}, &fakeNews{err: news.ErrUpstreamUnavailable}, &fakePodcasts{}),
			method: http.MethodGet, path: "/news/alice/",
			want: http.StatusBadGateway,
		},
		{
			name:   "preferences not set",
			server: NewServer(&fakeUsers{}, &fakeNews{err: news.ErrPreferencesNotSet}, &fakePodcasts{}),
			method: http.MethodGet, path: "/news/alice/",
			want: http.StatusBadRequest,
		},
		{
			name:   "podcast without articles",
			server: NewServer(&fakeUsers{}, &fakeNews{}, &fakePodcasts{err: podcast.ErrNoArticles}),
			method: http.MethodGet, path: "/podcast/alice",
			want: http.StatusNotFound,
		},
		{
			name:   "unknown user",
			server: NewServer(&fakeUsers{}, &fakeNews{err: storage.ErrNotFound}, &fakePodcasts{}),
			method: http.MethodGet, path: "/news/ghost/",
			want: http.StatusNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, tc.server.Router(), tc.method, tc.path, tc.body)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestGetNews(t *testing.T) {
	articles := []model.Article{{Title: "A", URL: "https://x/1"}}
	srv := NewServer(&fakeUsers{}, &fakeNews{articles: articles}, &fakePodcasts{})
	rec := doRequest(t, srv.Router(), http.MethodGet, "/news/alice/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Articles []model.Article `json:"articles"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Articles) != 1 || resp.Articles[0].Title != "A" {
		t.Errorf("unexpected articles %+v", resp.Articles)
	}
}

func TestGetPodcastServesAudio(t *testing.T) {
	audio := []byte{0xFF, 0xFB, 0x01}
	srv := NewServer(&fakeUsers{}, &fakeNews{}, &fakePodcasts{audio: audio})
	rec := doRequest(t, srv.Router(), http.MethodGet, "/podcast/alice", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("content type = %q", ct)
	}
	if !bytes.Equal(rec.Body.Bytes(), audio) {
		t.Error("audio bytes not passed through verbatim")
	}
}

func TestUpdatePreferencesValidation(t *testing.T) {
	srv := NewServer(&fakeUsers{}, &fakeNews{}, &fakePodcasts{})
	rec := doRequest(t, srv.Router(), http.MethodPut, "/preferences/alice", map[string]any{
		"sources": "bbc-news", "summary_style": "Brief", "frequency_hours": 0,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-positive frequency must be rejected, got %d", rec.Code)
	}
}

func TestStatus(t *testing.T) {
	srv := NewServer(&fakeUsers{}, &fakeNews{}, &fakePodcasts{})
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "alice"})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	var resp struct {
		IsLoggedIn bool   `json:"isLoggedIn"`
		Username   string `json:"username"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.IsLoggedIn || resp.Username != "alice" {
		t.Errorf("unexpected status %+v", resp)
	}
}
