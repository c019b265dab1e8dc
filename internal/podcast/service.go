package podcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"newscaster/internal/ai"
	"newscaster/internal/model"
	"newscaster/internal/storage"
)

// ErrNoArticles is returned when a podcast is requested before any
// articles have been fetched for the user.
var ErrNoArticles = errors.New("podcast: no articles for user")

// Store is the slice of the document/blob store the podcast service needs.
type Store interface {
	GetUser(ctx context.Context, username string) (model.User, error)
	GetUserNews(ctx context.Context, username string) (model.UserNews, error)
	GetPodcast(ctx context.Context, username string) (model.Podcast, error)
	PutPodcast(ctx context.Context, p model.Podcast) error
	DeletePodcast(ctx context.Context, username string) error
	PutAudio(ctx context.Context, id string, data []byte) error
	GetAudio(ctx context.Context, id string) ([]byte, error)
	DeleteAudio(ctx context.Context, id string) error
}

// Service caches at most one podcast artifact per user, content-addressed
// by the article snapshot that produced it.
type Service struct {
	store  Store
	script ai.ScriptWriter
	speech ai.SpeechSynthesizer
	now    func() time.Time
}

func NewService(store Store, script ai.ScriptWriter, speech ai.SpeechSynthesizer) *Service {
	return &Service{store: store, script: script, speech: speech, now: time.Now}
}

// GetOrCreate returns the podcast audio for the user's current article
// set. A stored record whose article snapshot deep-equals the current set
// is served verbatim with no upstream calls; otherwise the old blob and
// record are deleted and the podcast is regenerated.
func (s *Service) GetOrCreate(ctx context.Context, username string) ([]byte, error) {
	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	doc, err := s.store.GetUserNews(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoArticles
		}
		return nil, err
	}
	if len(doc.Articles) == 0 {
		return nil, ErrNoArticles
	}

	existing, err := s.store.GetPodcast(ctx, username)
	switch {
	case err == nil && model.ArticlesEqual(existing.Articles, doc.Articles):
		audio, err := s.store.GetAudio(ctx, existing.AudioID)
		if err == nil {
			return audio, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		// record without blob, fall through and rebuild
	case err == nil:
		// snapshot changed: the old blob is owned by the record, so it
		// goes first, then the record
		if err := s.store.DeleteAudio(ctx, existing.AudioID); err != nil {
			return nil, err
		}
		if err := s.store.DeletePodcast(ctx, username); err != nil {
			return nil, err
		}
	case !errors.Is(err, storage.ErrNotFound):
		return nil, err
	}

	style := model.StyleBrief
	if user.Preferences != nil {
		style = user.Preferences.SummaryStyle
	}
	script, err := s.script.PodcastScript(ctx, doc.Articles, style, username)
	if err != nil {
		return nil, err
	}
	audio, err := s.speech.Synthesize(ctx, script)
	if err != nil {
		return nil, err
	}

	record := model.Podcast{
		Username:  username,
		Articles:  doc.Articles,
		AudioID:   fmt.Sprintf("%s-%d", username, s.now().UnixNano()),
		CreatedAt: s.now(),
	}
	if err := s.store.PutAudio(ctx, record.AudioID, audio); err != nil {
		return nil, err
	}
	if err := s.store.PutPodcast(ctx, record); err != nil {
		// don't leave an unowned blob behind
		_ = s.store.DeleteAudio(ctx, record.AudioID)
		return nil, err
	}
	slog.Info("podcast: generated audio", "username", username, "bytes", len(audio))
	return audio, nil
}

// Delete removes the user's podcast record and its audio blob, if any.
// Used when preferences change and when the account is deleted.
func (s *Service) Delete(ctx context.Context, username string) error {
	existing, err := s.store.GetPodcast(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.store.DeleteAudio(ctx, existing.AudioID); err != nil {
		return err
	}
	return s.store.DeletePodcast(ctx, username)
}
