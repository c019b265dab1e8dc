package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NewsAPIConfig controls the news search source.
type NewsAPIConfig struct {
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	PageSize int    `mapstructure:"page_size"`
}

// OpenAIConfig controls chat completion and speech synthesis.
// SummaryBaseURL may point at any OpenAI-compatible provider used only
// for per-article summaries.
type OpenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	BaseURL        string `mapstructure:"base_url"`
	SummaryAPIKey  string `mapstructure:"summary_api_key"`
	SummaryModel   string `mapstructure:"summary_model"`
	SummaryBaseURL string `mapstructure:"summary_base_url"`
	SpeechModel    string `mapstructure:"speech_model"`
	SpeechVoice    string `mapstructure:"speech_voice"`
}

// MailConfig controls transactional email delivery.
type MailConfig struct {
	APIKey        string `mapstructure:"api_key"`
	Sender        string `mapstructure:"sender"`
	DigestSubject string `mapstructure:"digest_subject"` // %s expands to username
}

// Config is the top-level configuration structure.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Redis   RedisConfig   `mapstructure:"redis"`
	NewsAPI NewsAPIConfig `mapstructure:"newsapi"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Mail    MailConfig    `mapstructure:"mail"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.NewsAPI.BaseURL == "" {
		c.NewsAPI.BaseURL = "https://newsapi.org/v2"
	}
	if c.NewsAPI.PageSize == 0 {
		c.NewsAPI.PageSize = 10
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-3.5-turbo"
	}
	if c.OpenAI.SummaryAPIKey == "" {
		c.OpenAI.SummaryAPIKey = c.OpenAI.APIKey
	}
	if c.OpenAI.SummaryModel == "" {
		c.OpenAI.SummaryModel = c.OpenAI.Model
	}
	if c.OpenAI.SpeechModel == "" {
		c.OpenAI.SpeechModel = "tts-1"
	}
	if c.OpenAI.SpeechVoice == "" {
		c.OpenAI.SpeechVoice = "alloy"
	}
	if c.Mail.DigestSubject == "" {
		c.Mail.DigestSubject = "%s, Your News Summary"
	}
}
