package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"newscaster/internal/model"
)

// ArticleSource supplies the user's current article set, refreshing it if
// needed.
type ArticleSource interface {
	Refresh(ctx context.Context, username string) ([]model.Article, error)
}

// Sender delivers a rendered email template.
type Sender interface {
	Send(ctx context.Context, recipient, templateFile string, data any) error
}

// Store is the slice of the document store the notifier needs to record
// the last send time.
type Store interface {
	GetUser(ctx context.Context, username string) (model.User, error)
	PutUser(ctx context.Context, u model.User) error
}

// digestData feeds the digest email template.
type digestData struct {
	Subject  string
	Username string
	Articles []model.Article
}

// Notifier emails users a periodic news digest. It runs as a best-effort
// side effect of login: every failure is logged and swallowed.
type Notifier struct {
	store    Store
	articles ArticleSource
	sender   Sender
	subject  string // fmt template, %s expands to username
	now      func() time.Time
}

func New(store Store, articles ArticleSource, sender Sender, subject string) *Notifier {
	if subject == "" {
		subject = "%s, Your News Summary"
	}
	return &Notifier{store: store, articles: articles, sender: sender, subject: subject, now: time.Now}
}

// MaybeSendDigest sends the digest if the user's configured frequency
// interval has elapsed since the last send. Called after a successful
// login; it never returns an error to the login flow.
func (n *Notifier) MaybeSendDigest(ctx context.Context, user model.User) {
	if user.Preferences == nil || user.Preferences.FrequencyHours <= 0 {
		return
	}
	now := n.now()
	if user.LastEmailSent != nil {
		elapsed := now.Sub(*user.LastEmailSent)
		if elapsed < time.Duration(user.Preferences.FrequencyHours)*time.Hour {
			return
		}
	}

	articles, err := n.articles.Refresh(ctx, user.Username)
	if err != nil {
		slog.Error("notify: refresh for digest failed", "username", user.Username, "err", err)
		return
	}
	if len(articles) == 0 {
		return
	}

	data := digestData{
		Subject:  fmt.Sprintf(n.subject, user.Username),
		Username: user.Username,
		Articles: articles,
	}
	if err := n.sender.Send(ctx, user.Email, "digest.tmpl", data); err != nil {
		slog.Error("notify: digest send failed", "username", user.Username, "err", err)
		return
	}

	// re-read before write: Refresh may have replaced nothing, but login
	// has just updated streak/lastLogin on the same document
	fresh, err := n.store.GetUser(ctx, user.Username)
	if err != nil {
		slog.Error("notify: reload user failed", "username", user.Username, "err", err)
		return
	}
	fresh.LastEmailSent = &now
	if err := n.store.PutUser(ctx, fresh); err != nil {
		slog.Error("notify: record last send failed", "username", user.Username, "err", err)
		return
	}
	slog.Info("notify: digest sent", "username", user.Username, "articles", len(articles))
}
