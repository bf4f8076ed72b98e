package config

import (
	"log/slog"
	"time"
)

type contextKey string

const (
	TRACE_ID_KEY contextKey = "traceId"

	LOG_LEVEL_PROD = slog.LevelInfo
	LOG_LEVEL_DEV  = slog.LevelDebug

	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, it falls back to an internal in-memory store

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//serverTimeouts
	//write timeout has to cover every model call of a request
	ReadTimeout            = 30 * time.Second
	WriteTimeout           = 5 * time.Minute
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":8000"

	//uploads
	MaxUploadSize      = 32 << 20 //32mb
	TemporaryDataDir   = "temporary_data"
	UploadRoute        = "/upload_pdf/"
	PageExtractTimeout = 10 * time.Second

	//llm
	ProviderOpenAI                = "openai"
	ProviderGemini                = "gemini"
	ExternalCallTimeout           = 30 * time.Second
	OpenAIModelName               = "gpt-4o-mini"
	GeminiModelName               = "gemini-2.5-flash-lite-preview-09-2025"
	ModelTemperature      float64 = 0
	AnswerMaxTokens       int64   = 100
	ConfidenceMaxTokens   int64   = 10
	ModelContext                  = "You are a helpful assistant."

	//questions answered in parallel for one request
	QuestionConcurrency = 4

	//slack
	SlackMessageHeader = "Q&A Results:\n"

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisRunStore = 0

	RedisRunStoreTTL = 24 * time.Hour
)
