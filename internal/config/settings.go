package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings is the static configuration of the process. It is loaded once at
// startup and passed to the components that need it; nothing mutates it
// afterwards.
type Settings struct {
	IsProd   bool
	LogLevel slog.Level

	ListenAddr string
	AuthToken  string //empty disables bearer auth

	LLMProvider   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string

	SlackBotToken string
	SlackChannel  string
	SlackAPIURL   string

	RedisAddr             string
	RedisPassword         string
	FallbackToMemoryStore bool

	TempDir             string
	QuestionConcurrency int
	ExternalCallTimeout time.Duration
}

// ErrMissingEnv is returned by Load when a required variable is absent.
var ErrMissingEnv = errors.New("missing environment variables")

// Load reads an optional .env file and then the process environment.
func Load() (*Settings, error) {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds Settings from any lookup function, os.LookupEnv in production.
func FromLookup(lookup func(string) (string, bool)) (*Settings, error) {
	get := func(key string, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	s := &Settings{
		IsProd:                strings.EqualFold(get("APP_ENV", ""), "prod"),
		ListenAddr:            get("LISTEN_ADDR", ServerListenAddr),
		AuthToken:             get("AUTH_TOKEN", ""),
		LLMProvider:           strings.ToLower(get("LLM_PROVIDER", ProviderOpenAI)),
		OpenAIAPIKey:          get("OPENAI_API_KEY", ""),
		OpenAIModel:           get("OPENAI_MODEL", OpenAIModelName),
		OpenAIBaseURL:         get("OPENAI_BASE_URL", ""),
		GeminiAPIKey:          get("GEMINI_API_KEY", ""),
		GeminiModel:           get("GEMINI_MODEL", GeminiModelName),
		SlackBotToken:         get("SLACK_BOT_TOKEN", ""),
		SlackChannel:          get("SLACK_CHANNEL", ""),
		SlackAPIURL:           get("SLACK_API_URL", ""),
		RedisAddr:             get("REDIS_ADDR", RedisAddr),
		RedisPassword:         get("REDIS_PASSWORD", ""),
		FallbackToMemoryStore: FALLBACK_REDIS_TO_INTERNALSTORE,
		TempDir:               get("TEMP_DIR", ""),
		QuestionConcurrency:   QuestionConcurrency,
		ExternalCallTimeout:   ExternalCallTimeout,
	}

	s.LogLevel = LOG_LEVEL_DEV
	if s.IsProd {
		s.LogLevel = LOG_LEVEL_PROD
	}
	if lvl := get("LOG_LEVEL", ""); lvl != "" {
		if err := s.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", lvl, err)
		}
	}

	if v := get("QUESTION_CONCURRENCY", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid QUESTION_CONCURRENCY %q", v)
		}
		s.QuestionConcurrency = n
	}

	if v := get("EXTERNAL_CALL_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid EXTERNAL_CALL_TIMEOUT %q", v)
		}
		s.ExternalCallTimeout = d
	}

	if v := get("FALLBACK_TO_MEMORY_STORE", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FALLBACK_TO_MEMORY_STORE %q", v)
		}
		s.FallbackToMemoryStore = b
	}

	var missing []string
	switch s.LLMProvider {
	case ProviderOpenAI:
		if s.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	case ProviderGemini:
		if s.GeminiAPIKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", s.LLMProvider)
	}
	if s.SlackBotToken == "" {
		missing = append(missing, "SLACK_BOT_TOKEN")
	}
	if s.SlackChannel == "" {
		missing = append(missing, "SLACK_CHANNEL")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	return s, nil
}
