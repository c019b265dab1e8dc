package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"newscaster/internal/auth"
	"newscaster/internal/model"
	"newscaster/internal/storage"
)

var (
	// ErrInvalidCredentials covers unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("user: invalid credentials")
	// ErrDuplicateUsername is returned when the username is taken.
	ErrDuplicateUsername = errors.New("user: username already exists")
	// ErrDuplicateEmail is returned when the email is taken.
	ErrDuplicateEmail = errors.New("user: email already exists")
	// ErrInvalidConfirmationCode is returned when the signup code does
	// not match.
	ErrInvalidConfirmationCode = errors.New("user: invalid confirmation code")
)

// Store is the slice of the document store the user service needs.
type Store interface {
	GetUser(ctx context.Context, username string) (model.User, error)
	PutUser(ctx context.Context, u model.User) error
	DeleteUser(ctx context.Context, username string) error
	UserEmailTaken(ctx context.Context, email string) (bool, error)
	GetPendingUser(ctx context.Context, email string) (model.PendingUser, error)
	PutPendingUser(ctx context.Context, p model.PendingUser) error
	DeletePendingUser(ctx context.Context, email string) error
	DeleteUserNews(ctx context.Context, username string) error
}

// PodcastInvalidator removes a user's cached podcast and its audio blob.
type PodcastInvalidator interface {
	Delete(ctx context.Context, username string) error
}

// DigestNotifier fires the best-effort digest email after login.
type DigestNotifier interface {
	MaybeSendDigest(ctx context.Context, u model.User)
}

// Sender delivers a rendered email template.
type Sender interface {
	Send(ctx context.Context, recipient, templateFile string, data any) error
}

// Service implements account lifecycle: signup with email confirmation,
// login with streak tracking, preference and password updates, points,
// and cascading account deletion.
type Service struct {
	store    Store
	podcasts PodcastInvalidator
	notifier DigestNotifier
	sender   Sender
	now      func() time.Time
}

func NewService(store Store, podcasts PodcastInvalidator, notifier DigestNotifier, sender Sender) *Service {
	return &Service{store: store, podcasts: podcasts, notifier: notifier, sender: sender, now: time.Now}
}

// SignUp records a pending user and emails them a confirmation code. No
// account exists until the code is verified.
func (s *Service) SignUp(ctx context.Context, username, email, password string) error {
	if _, err := s.store.GetUser(ctx, username); err == nil {
		return ErrDuplicateUsername
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	taken, err := s.store.UserEmailTaken(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	code, err := auth.NewConfirmationCode()
	if err != nil {
		return err
	}
	pending := model.PendingUser{
		Username:         username,
		Email:            email,
		PasswordHash:     hash,
		CreatedAt:        s.now(),
		ConfirmationCode: code,
	}
	if err := s.store.PutPendingUser(ctx, pending); err != nil {
		return err
	}
	if err := s.sender.Send(ctx, email, "confirmation.tmpl", struct{ Code string }{code}); err != nil {
		slog.Error("user: confirmation email failed", "email", email, "err", err)
	}
	return nil
}

// VerifyConfirmation promotes a pending signup to a real account when the
// code matches.
func (s *Service) VerifyConfirmation(ctx context.Context, email, code string) error {
	pending, err := s.store.GetPendingUser(ctx, email)
	if err != nil {
		return err
	}
	if pending.ConfirmationCode != code {
		return ErrInvalidConfirmationCode
	}
	u := model.User{
		Username:     pending.Username,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		CreatedAt:    pending.CreatedAt,
	}
	if err := s.store.PutUser(ctx, u); err != nil {
		return err
	}
	return s.store.DeletePendingUser(ctx, email)
}

// Login verifies credentials, updates the daily login streak and fires
// the digest gate. Digest failures never surface to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (model.User, error) {
	u, err := s.store.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}
	match, err := auth.PasswordMatches(u.PasswordHash, password)
	if err != nil {
		return model.User{}, err
	}
	if !match {
		return model.User{}, ErrInvalidCredentials
	}

	now := s.now()
	u.Streak = nextStreak(u.Streak, u.LastLogin, now)
	u.LastLogin = &now
	if err := s.store.PutUser(ctx, u); err != nil {
		return model.User{}, err
	}

	if s.notifier != nil {
		s.notifier.MaybeSendDigest(ctx, u)
	}
	return u, nil
}

// nextStreak increments on consecutive-day logins and resets after a
// missed day. Same-day logins leave it unchanged.
func nextStreak(streak int, lastLogin *time.Time, now time.Time) int {
	if lastLogin == nil {
		return streak
	}
	last := lastLogin.Truncate(24 * time.Hour)
	today := now.Truncate(24 * time.Hour)
	switch {
	case today.Equal(last.Add(24 * time.Hour)):
		return streak + 1
	case today.After(last.Add(24 * time.Hour)):
		return 0
	default:
		return streak
	}
}

// Get returns the user document.
func (s *Service) Get(ctx context.Context, username string) (model.User, error) {
	return s.store.GetUser(ctx, username)
}

// UpdatePreferences replaces the user's filter configuration and
// invalidates any cached podcast audio, since the article set it was
// generated from is about to change.
func (s *Service) UpdatePreferences(ctx context.Context, username string, prefs model.Preferences) error {
	u, err := s.store.GetUser(ctx, username)
	if err != nil {
		return err
	}
	u.Preferences = &prefs
	if err := s.store.PutUser(ctx, u); err != nil {
		return err
	}
	if err := s.podcasts.Delete(ctx, username); err != nil {
		slog.Error("user: podcast invalidation failed", "username", username, "err", err)
	}
	return nil
}

// UpdatePassword verifies the current password and replaces the hash.
func (s *Service) UpdatePassword(ctx context.Context, username, current, updated string) error {
	u, err := s.store.GetUser(ctx, username)
	if err != nil {
		return err
	}
	match, err := auth.PasswordMatches(u.PasswordHash, current)
	if err != nil {
		return err
	}
	if !match {
		return ErrInvalidCredentials
	}
	hash, err := auth.HashPassword(updated)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return s.store.PutUser(ctx, u)
}

// AddPoints adds delta to the user's points and returns the new total.
func (s *Service) AddPoints(ctx context.Context, username string, delta int) (int, error) {
	u, err := s.store.GetUser(ctx, username)
	if err != nil {
		return 0, err
	}
	u.Points += delta
	if err := s.store.PutUser(ctx, u); err != nil {
		return 0, err
	}
	return u.Points, nil
}

// Delete removes the account and everything it owns: the podcast record
// with its audio blob, the cached news document, and the user itself.
func (s *Service) Delete(ctx context.Context, username string) error {
	if _, err := s.store.GetUser(ctx, username); err != nil {
		return err
	}
	if err := s.podcasts.Delete(ctx, username); err != nil {
		return err
	}
	if err := s.store.DeleteUserNews(ctx, username); err != nil {
		return err
	}
	return s.store.DeleteUser(ctx, username)
}
