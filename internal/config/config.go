package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application-wide configuration populated from environment variables.
type Config struct {
	Port string

	OpenAIAPIKey string
	STTModel     string
	ChatModel    string

	TTSBackend        string // google | elevenlabs
	GoogleCredentials string
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string

	STTTimeout  time.Duration
	ChatTimeout time.Duration
	TTSTimeout  time.Duration

	HistoryTokenWarn int

	AudioSink   string // none | file | s3
	AudioDir    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string

	TelegramBotToken string
	AdminChatID      int64

	RateLimitPerMin int
}

// Load reads .env (if present) and the environment, applying defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	p := parser{getenv: getenv}

	cfg := &Config{
		Port:              p.str("PORT", "8080"),
		OpenAIAPIKey:      p.str("OPENAI_API_KEY", ""),
		STTModel:          p.str("OPENAI_STT_MODEL", "whisper-1"),
		ChatModel:         p.str("OPENAI_CHAT_MODEL", "gpt-3.5-turbo"),
		TTSBackend:        p.str("TTS_BACKEND", "google"),
		GoogleCredentials: p.str("GOOGLE_APPLICATION_CREDENTIALS", ""),
		ElevenLabsAPIKey:  p.str("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoiceID: p.str("ELEVENLABS_VOICE_ID", ""),
		STTTimeout:        p.duration("STT_TIMEOUT", 60*time.Second),
		ChatTimeout:       p.duration("CHAT_TIMEOUT", 120*time.Second),
		TTSTimeout:        p.duration("TTS_TIMEOUT", 60*time.Second),
		HistoryTokenWarn:  p.integer("HISTORY_TOKEN_WARN", 12000),
		AudioSink:         p.str("AUDIO_SINK", "none"),
		AudioDir:          p.str("AUDIO_DIR", "audio"),
		S3Endpoint:        p.str("S3_ENDPOINT", ""),
		S3AccessKey:       p.str("S3_ACCESS_KEY", ""),
		S3SecretKey:       p.str("S3_SECRET_KEY", ""),
		S3Bucket:          p.str("S3_BUCKET", ""),
		S3Region:          p.str("S3_REGION", ""),
		TelegramBotToken:  p.str("TELEGRAM_BOT_TOKEN", ""),
		AdminChatID:       int64(p.integer("ADMIN_CHAT_ID", 0)),
		RateLimitPerMin:   p.integer("RATE_LIMIT_PER_MIN", 30),
	}

	if p.err != nil {
		return nil, p.err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	if c.OpenAIAPIKey == "" {
		errs = append(errs, errors.New("OPENAI_API_KEY is not set"))
	}

	switch c.TTSBackend {
	case "google":
	case "elevenlabs":
		if c.ElevenLabsAPIKey == "" {
			errs = append(errs, errors.New("ELEVENLABS_API_KEY is not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown TTS_BACKEND %q", c.TTSBackend))
	}

	switch c.AudioSink {
	case "none", "file":
	case "s3":
		if c.S3Endpoint == "" || c.S3Bucket == "" {
			errs = append(errs, errors.New("S3_ENDPOINT and S3_BUCKET are required for AUDIO_SINK=s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUDIO_SINK %q", c.AudioSink))
	}

	if c.TelegramBotToken != "" && c.AdminChatID == 0 {
		errs = append(errs, errors.New("ADMIN_CHAT_ID is required with TELEGRAM_BOT_TOKEN"))
	}

	return errors.Join(errs...)
}

type parser struct {
	getenv func(string) string
	err    error
}

func (p *parser) str(key, def string) string {
	if v := p.getenv(key); v != "" {
		return v
	}
	return def
}

func (p *parser) integer(key string, def int) int {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.err = errors.Join(p.err, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.err = errors.Join(p.err, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}
