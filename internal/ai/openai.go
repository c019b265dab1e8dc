package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"newscaster/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrSummarization is returned when the summary upstream call fails.
	ErrSummarization = errors.New("ai: summarization failed")
	// ErrScriptGeneration is returned when the podcast script cannot be
	// produced, including the empty-article-list case.
	ErrScriptGeneration = errors.New("ai: script generation failed")
	// ErrSynthesis is returned when speech synthesis fails.
	ErrSynthesis = errors.New("ai: speech synthesis failed")
)

// Summarizer produces a plain-text summary for one article in the
// requested style.
type Summarizer interface {
	SummarizeArticle(ctx context.Context, title, content string, style model.SummaryStyle) (string, error)
}

// ScriptWriter composes a podcast script from an article set.
type ScriptWriter interface {
	PodcastScript(ctx context.Context, articles []model.Article, style model.SummaryStyle, username string) (string, error)
}

// SpeechSynthesizer converts script text to raw audio bytes.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// OpenAIClient implements Summarizer, ScriptWriter and SpeechSynthesizer
// on top of the OpenAI API. Summaries may be routed to a separate
// OpenAI-compatible provider via Config.SummaryBaseURL.
type OpenAIClient struct {
	chat         *openai.Client
	summary      *openai.Client
	model        string
	summaryModel string
	speechModel  openai.SpeechModel
	voice        openai.SpeechVoice
	stripper     *PreambleStripper
}

type Config struct {
	APIKey         string
	Model          string
	BaseURL        string // optional
	SummaryAPIKey  string // optional, defaults to APIKey
	SummaryModel   string // optional, defaults to Model
	SummaryBaseURL string // optional
	SpeechModel    string
	SpeechVoice    string
	// PreamblePatterns overrides DefaultPreamblePatterns when non-empty.
	PreamblePatterns []string
}

func newClient(apiKey, baseURL string) *openai.Client {
	if baseURL != "" {
		cc := openai.DefaultConfig(apiKey)
		cc.BaseURL = baseURL
		return openai.NewClientWithConfig(cc)
	}
	return openai.NewClient(apiKey)
}

func NewOpenAI(cfg Config) (*OpenAIClient, error) {
	if cfg.Model == "" {
		return nil, errors.New("ai: model must be specified")
	}
	summaryKey := cfg.SummaryAPIKey
	if summaryKey == "" {
		summaryKey = cfg.APIKey
	}
	summaryModel := cfg.SummaryModel
	if summaryModel == "" {
		summaryModel = cfg.Model
	}
	speechModel := cfg.SpeechModel
	if speechModel == "" {
		speechModel = string(openai.TTSModel1)
	}
	voice := cfg.SpeechVoice
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	stripper, err := NewPreambleStripper(cfg.PreamblePatterns)
	if err != nil {
		return nil, err
	}
	return &OpenAIClient{
		chat:         newClient(cfg.APIKey, cfg.BaseURL),
		summary:      newClient(summaryKey, cfg.SummaryBaseURL),
		model:        cfg.Model,
		summaryModel: summaryModel,
		speechModel:  openai.SpeechModel(speechModel),
		voice:        openai.SpeechVoice(voice),
		stripper:     stripper,
	}, nil
}

// SummarizeArticle sends a single-turn completion for one article and
// strips boilerplate preambles from the response.
func (o *OpenAIClient) SummarizeArticle(ctx context.Context, title, content string, style model.SummaryStyle) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	resp, err := o.summary.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.summaryModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: summaryPrompt(title, content, style)},
		},
	})
	if err != nil {
		slog.Error("openai: summarize article error", "err", err)
		return "", fmt.Errorf("%w: %v", ErrSummarization, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrSummarization)
	}
	return o.stripper.Strip(resp.Choices[0].Message.Content), nil
}

// PodcastScript requests a bounded-length completion composing the
// personalized script over the numbered article list.
func (o *OpenAIClient) PodcastScript(ctx context.Context, articles []model.Article, style model.SummaryStyle, username string) (string, error) {
	if len(articles) == 0 {
		return "", fmt.Errorf("%w: no articles", ErrScriptGeneration)
	}
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	resp, err := o.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a helpful assistant writing podcast scripts."},
			{Role: openai.ChatMessageRoleUser, Content: scriptPrompt(articles, style, username)},
		},
		MaxTokens:   400,
		Temperature: 0.7,
	})
	if err != nil {
		slog.Error("openai: podcast script error", "err", err)
		return "", fmt.Errorf("%w: %v", ErrScriptGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrScriptGeneration)
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("%w: empty script", ErrScriptGeneration)
	}
	return out, nil
}

// Synthesize converts script text to audio bytes via the speech endpoint.
func (o *OpenAIClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	resp, err := o.chat.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: o.speechModel,
		Input: text,
		Voice: o.voice,
	})
	if err != nil {
		slog.Error("openai: speech synthesis error", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	defer resp.Close()
	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	return audio, nil
}
