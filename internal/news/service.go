package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"newscaster/internal/ai"
	"newscaster/internal/model"
	"newscaster/internal/newsapi"
	"newscaster/internal/storage"
)

var (
	// ErrUpstreamUnavailable is returned when the news source answers
	// with a non-success status. Treated as "no articles", never retried.
	ErrUpstreamUnavailable = errors.New("news: upstream unavailable")
	// ErrPreferencesNotSet is returned when the user has no saved filter
	// configuration yet.
	ErrPreferencesNotSet = errors.New("news: user preferences not set")
)

// Store is the slice of the document store the news service needs.
type Store interface {
	GetUser(ctx context.Context, username string) (model.User, error)
	GetUserNews(ctx context.Context, username string) (model.UserNews, error)
	PutUserNews(ctx context.Context, n model.UserNews) error
}

// ArticleFetcher collects complete raw articles for a source list.
type ArticleFetcher interface {
	FetchComplete(ctx context.Context, sources string) ([]newsapi.RawArticle, error)
}

// Service owns the per-user article cache: it decides when cached
// articles are still fresh and refetches/re-summarizes when they are not.
type Service struct {
	store      Store
	fetcher    ArticleFetcher
	summarizer ai.Summarizer
	now        func() time.Time
}

func NewService(store Store, fetcher ArticleFetcher, summarizer ai.Summarizer) *Service {
	return &Service{store: store, fetcher: fetcher, summarizer: summarizer, now: time.Now}
}

// Refresh returns the user's current article set, refetching and
// re-summarizing only if the preferences changed since the last fetch or
// the staleness window elapsed. A preference change supersedes the time
// check. The elapsed-time comparison uses the stored snapshot's
// frequency: whenever the live preferences differ from the snapshot the
// preference branch already forces a refresh, so the snapshot value is
// the only one the time branch can coherently see.
func (s *Service) Refresh(ctx context.Context, username string) ([]model.Article, error) {
	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.Preferences == nil {
		return nil, ErrPreferencesNotSet
	}
	prefs := *user.Preferences

	doc, err := s.store.GetUserNews(ctx, username)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// first request for this user
	case err != nil:
		return nil, err
	case doc.Preferences == prefs:
		window := time.Duration(doc.Preferences.FrequencyHours) * time.Hour
		if s.now().Sub(doc.FetchedAt) < window {
			return doc.Articles, nil
		}
	}

	articles, err := s.fetchAndSummarize(ctx, prefs)
	if err != nil {
		return nil, err
	}
	fresh := model.UserNews{
		Username:    username,
		Preferences: prefs,
		FetchedAt:   s.now(),
		Articles:    articles,
	}
	if err := s.store.PutUserNews(ctx, fresh); err != nil {
		return nil, err
	}
	slog.Info("news: refreshed articles", "username", username, "count", len(articles))
	return articles, nil
}

// fetchAndSummarize builds the replacement article set. Nothing is
// persisted unless every summary succeeds.
func (s *Service) fetchAndSummarize(ctx context.Context, prefs model.Preferences) ([]model.Article, error) {
	raw, err := s.fetcher.FetchComplete(ctx, prefs.Sources)
	if err != nil {
		return nil, err
	}
	articles := make([]model.Article, 0, len(raw))
	for _, r := range raw {
		summary, err := s.summarizer.SummarizeArticle(ctx, r.Title, r.Content, prefs.SummaryStyle)
		if err != nil {
			return nil, fmt.Errorf("summarize %q: %w", r.Title, err)
		}
		articles = append(articles, model.Article{
			Title:       r.Title,
			Source:      r.Source.Name,
			Description: r.Description,
			URL:         r.URL,
			PublishedAt: r.PublishedAt,
			ImageURL:    r.URLToImage,
			Summary:     summary,
		})
	}
	return articles, nil
}

// MarkRead flags the article with the given URL as read and records the
// reading time. Other articles are left untouched.
func (s *Service) MarkRead(ctx context.Context, username, url string, readingTimeSeconds int) error {
	if _, err := s.store.GetUser(ctx, username); err != nil {
		return err
	}
	doc, err := s.store.GetUserNews(ctx, username)
	if err != nil {
		return err
	}
	for i := range doc.Articles {
		if doc.Articles[i].URL == url {
			doc.Articles[i].IsRead = true
			doc.Articles[i].ReadingTimeSeconds = readingTimeSeconds
		}
	}
	return s.store.PutUserNews(ctx, doc)
}

// Statistics reports reading progress over the user's current article set.
func (s *Service) Statistics(ctx context.Context, username string) (model.Statistics, error) {
	if _, err := s.store.GetUser(ctx, username); err != nil {
		return model.Statistics{}, err
	}
	doc, err := s.store.GetUserNews(ctx, username)
	if err != nil {
		return model.Statistics{}, err
	}
	var stats model.Statistics
	for _, a := range doc.Articles {
		if a.IsRead {
			stats.ArticlesRead++
		} else {
			stats.ArticlesLeft++
		}
		stats.ReadingTimeSeconds += a.ReadingTimeSeconds
	}
	return stats, nil
}
