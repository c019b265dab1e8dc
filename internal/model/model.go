package model

import (
	"strings"
	"time"
)

// SummaryStyle selects the tone used when summarizing articles and
// writing podcast scripts.
type SummaryStyle string

const (
	StyleBrief        SummaryStyle = "Brief"
	StyleDetailed     SummaryStyle = "Detailed"
	StyleELI5         SummaryStyle = "ELI5"
	StyleHumorous     SummaryStyle = "Humorous"
	StyleStorytelling SummaryStyle = "Storytelling"
	StylePoetic       SummaryStyle = "Poetic"
	// StyleDefault is the fallback for unknown or empty style names.
	StyleDefault SummaryStyle = "Default"
)

// ParseStyle maps a user-supplied style name to a known SummaryStyle,
// falling back to StyleDefault.
func ParseStyle(s string) SummaryStyle {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brief":
		return StyleBrief
	case "detailed":
		return StyleDetailed
	case "eli5":
		return StyleELI5
	case "humorous":
		return StyleHumorous
	case "storytelling":
		return StyleStorytelling
	case "poetic":
		return StylePoetic
	default:
		return StyleDefault
	}
}

// Preferences holds a user's news filter configuration.
type Preferences struct {
	Country        string       `json:"country"`
	Category       string       `json:"category"`
	Sources        string       `json:"sources"` // comma-separated source IDs
	SummaryStyle   SummaryStyle `json:"summary_style"`
	FrequencyHours int          `json:"frequency_hours"`
}

// Article is one fetched, summarized news article.
type Article struct {
	Title              string `json:"title"`
	Source             string `json:"source"`
	Description        string `json:"description"`
	URL                string `json:"url"`
	PublishedAt        string `json:"published_at,omitempty"`
	ImageURL           string `json:"image_url,omitempty"`
	Summary            string `json:"summary"`
	IsRead             bool   `json:"is_read"`
	ReadingTimeSeconds int    `json:"reading_time_seconds"`
}

// UserNews is the per-user cached article set together with the
// preference snapshot and fetch time that produced it. The snapshot is
// what staleness decisions compare against: if the live preferences
// differ, the document is stale regardless of FetchedAt.
type UserNews struct {
	Username    string      `json:"username"`
	Preferences Preferences `json:"preferences"`
	FetchedAt   time.Time   `json:"fetched_at"`
	Articles    []Article   `json:"articles"`
}

// Podcast records the audio artifact generated from an article snapshot.
// The stored snapshot is the cache key: it is valid exactly while it
// equals the user's current UserNews.Articles. The audio blob is owned by
// this record; deleting the record must delete the blob.
type Podcast struct {
	Username  string    `json:"username"`
	Articles  []Article `json:"articles"`
	AudioID   string    `json:"audio_id"`
	CreatedAt time.Time `json:"created_at"`
}

// User is a confirmed account.
type User struct {
	Username      string       `json:"username"`
	Email         string       `json:"email"`
	PasswordHash  []byte       `json:"password_hash"`
	CreatedAt     time.Time    `json:"created_at"`
	Points        int          `json:"points"`
	Streak        int          `json:"streak"`
	LastLogin     *time.Time   `json:"last_login,omitempty"`
	LastEmailSent *time.Time   `json:"last_email_sent,omitempty"`
	Preferences   *Preferences `json:"preferences,omitempty"`
}

// PendingUser is a signup awaiting email confirmation.
type PendingUser struct {
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     []byte    `json:"password_hash"`
	CreatedAt        time.Time `json:"created_at"`
	ConfirmationCode string    `json:"confirmation_code"`
}

// Statistics summarizes a user's reading activity over the current
// article set.
type Statistics struct {
	ArticlesRead       int `json:"articles_read"`
	ArticlesLeft       int `json:"articles_left"`
	ReadingTimeSeconds int `json:"reading_time_seconds"`
}

// ArticlesEqual reports deep equality of two ordered article sets. It is
// the content-address check for podcast cache validity.
func ArticlesEqual(a, b []Article) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
