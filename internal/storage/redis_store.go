package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"newscaster/internal/model"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a document or blob does not exist.
var ErrNotFound = errors.New("storage: not found")

// pending signups expire if never confirmed
const pendingTTL = 24 * time.Hour

// RedisStore persists users, per-user news documents, podcast records and
// audio blobs as JSON documents / raw bytes keyed by username.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func userKey(username string) string {
	return fmt.Sprintf("user:%s", username)
}

func emailKey(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}

func pendingKey(email string) string {
	return fmt.Sprintf("pending:%s", email)
}

func newsKey(username string) string {
	return fmt.Sprintf("usernews:%s", username)
}

func podcastKey(username string) string {
	return fmt.Sprintf("podcast:%s", username)
}

func audioKey(id string) string {
	return fmt.Sprintf("audio:%s", id)
}

func (s *RedisStore) getJSON(ctx context.Context, key string, out any) error {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (s *RedisStore) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, b, ttl).Err()
}

// GetUser loads a confirmed user by username.
func (s *RedisStore) GetUser(ctx context.Context, username string) (model.User, error) {
	var u model.User
	if err := s.getJSON(ctx, userKey(username), &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// PutUser stores (replaces) a user document and its email index entry.
func (s *RedisStore) PutUser(ctx context.Context, u model.User) error {
	if err := s.setJSON(ctx, userKey(u.Username), u, 0); err != nil {
		return err
	}
	return s.rdb.Set(ctx, emailKey(u.Email), u.Username, 0).Err()
}

// UserEmailTaken reports whether a confirmed user already owns the email.
func (s *RedisStore) UserEmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.rdb.Get(ctx, emailKey(email)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteUser removes the user document and its email index entry. The
// caller is responsible for cascading news and podcast deletion.
func (s *RedisStore) DeleteUser(ctx context.Context, username string) error {
	u, err := s.GetUser(ctx, username)
	if err != nil {
		return err
	}
	if err := s.rdb.Del(ctx, emailKey(u.Email)).Err(); err != nil {
		return err
	}
	n, err := s.rdb.Del(ctx, userKey(username)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetPendingUser loads a signup awaiting confirmation by email.
func (s *RedisStore) GetPendingUser(ctx context.Context, email string) (model.PendingUser, error) {
	var p model.PendingUser
	if err := s.getJSON(ctx, pendingKey(email), &p); err != nil {
		return model.PendingUser{}, err
	}
	return p, nil
}

// PutPendingUser stores a signup awaiting confirmation.
func (s *RedisStore) PutPendingUser(ctx context.Context, p model.PendingUser) error {
	return s.setJSON(ctx, pendingKey(p.Email), p, pendingTTL)
}

// DeletePendingUser removes a pending signup.
func (s *RedisStore) DeletePendingUser(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, pendingKey(email)).Err()
}

// GetUserNews loads the cached article set for a user.
func (s *RedisStore) GetUserNews(ctx context.Context, username string) (model.UserNews, error) {
	var n model.UserNews
	if err := s.getJSON(ctx, newsKey(username), &n); err != nil {
		return model.UserNews{}, err
	}
	return n, nil
}

// PutUserNews replaces the cached article set for a user wholesale.
func (s *RedisStore) PutUserNews(ctx context.Context, n model.UserNews) error {
	return s.setJSON(ctx, newsKey(n.Username), n, 0)
}

// DeleteUserNews removes the cached article set for a user.
func (s *RedisStore) DeleteUserNews(ctx context.Context, username string) error {
	return s.rdb.Del(ctx, newsKey(username)).Err()
}

// GetPodcast loads the podcast record for a user.
func (s *RedisStore) GetPodcast(ctx context.Context, username string) (model.Podcast, error) {
	var p model.Podcast
	if err := s.getJSON(ctx, podcastKey(username), &p); err != nil {
		return model.Podcast{}, err
	}
	return p, nil
}

// PutPodcast stores (replaces) the podcast record for a user.
func (s *RedisStore) PutPodcast(ctx context.Context, p model.Podcast) error {
	return s.setJSON(ctx, podcastKey(p.Username), p, 0)
}

// DeletePodcast removes the podcast record for a user. It does not touch
// the audio blob; callers delete that first via DeleteAudio.
func (s *RedisStore) DeletePodcast(ctx context.Context, username string) error {
	return s.rdb.Del(ctx, podcastKey(username)).Err()
}

// PutAudio stores raw audio bytes under an opaque id.
func (s *RedisStore) PutAudio(ctx context.Context, id string, data []byte) error {
	return s.rdb.Set(ctx, audioKey(id), data, 0).Err()
}

// GetAudio loads raw audio bytes by id.
func (s *RedisStore) GetAudio(ctx context.Context, id string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, audioKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteAudio removes an audio blob by id.
func (s *RedisStore) DeleteAudio(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, audioKey(id)).Err()
}
