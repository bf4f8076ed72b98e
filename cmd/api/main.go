// @title           Document Q&A API
// @version         1.0
// @description     Upload a document, ask comma separated questions about it and optionally post the answers to Slack.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email   ank.github@gmail.com

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/GoDocQA/internal/config"
	"github.com/akolanti/GoDocQA/internal/customHttpClient"
	"github.com/akolanti/GoDocQA/internal/data/store"
	"github.com/akolanti/GoDocQA/internal/handlers"
	"github.com/akolanti/GoDocQA/internal/mcpServer"
	"github.com/akolanti/GoDocQA/internal/middleware"
	"github.com/akolanti/GoDocQA/internal/notify/slackNotify"
	"github.com/akolanti/GoDocQA/internal/qa"
	"github.com/akolanti/GoDocQA/internal/qa/answer"
	"github.com/akolanti/GoDocQA/internal/qa/extract"
	"github.com/akolanti/GoDocQA/internal/qa/llm"
	"github.com/akolanti/GoDocQA/internal/qa/llm/gemini"
	"github.com/akolanti/GoDocQA/internal/qa/llm/openai"
	"github.com/akolanti/GoDocQA/internal/server"
	"github.com/akolanti/GoDocQA/pkg/logger_i"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		logger_i.Init(false, config.LOG_LEVEL_DEV)
		logger_i.NewLogger("main").Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger_i.Init(settings.IsProd, settings.LogLevel)
	logger := logger_i.NewLogger("main")

	listenAddr := settings.ListenAddr
	flag.StringVar(&listenAddr, "listen-addr", listenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	httpClient := customHttpClient.New(settings.ExternalCallTimeout)

	provider, err := newProvider(serviceContext, settings)
	if err != nil {
		logger.Error("LLM provider failed to initialize. Shutting down.", "provider", settings.LLMProvider, "error", err)
		os.Exit(1)
	}

	engineOptions := answer.DefaultOptions()
	engineOptions.CallTimeout = settings.ExternalCallTimeout

	runStore, err := store.NewRunStore(serviceContext, settings.RedisAddr, settings.RedisPassword, settings.FallbackToMemoryStore)
	if err != nil {
		logger.Error("Run store failed to initialize. Shutting down.", "error", err)
		os.Exit(1)
	}

	service := qa.NewService(qa.Dependencies{
		Extractor:   extract.NewDocumentExtractor(config.PageExtractTimeout),
		Engine:      answer.NewEngine(provider, engineOptions),
		Notifier:    slackNotify.NewSlackNotifier(settings.SlackBotToken, settings.SlackChannel, settings.SlackAPIURL, httpClient),
		RunStore:    runStore,
		TempDir:     settings.TempDir,
		Concurrency: settings.QuestionConcurrency,
	})

	router := server.NewRouter(server.Routes{
		QA:  handlers.NewQAHandler(service, runStore),
		MCP: mcpServer.Handler(mcpServer.NewServer(service)),
		Middleware: middleware.New(middleware.Options{
			AuthToken:     settings.AuthToken,
			RatePerSecond: config.RATE_LIMIT_PER_SECOND,
			Burst:         config.BURST_RATE_LIMIT_PER_SECOND,
		}),
	})
	httpServer := server.CreateServer(listenAddr, router)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(httpServer, shutdownParams)
	go server.ListenAndServe(httpServer)

	<-stopExecution
	logger.Info("Server stopped")
}

func newProvider(ctx context.Context, settings *config.Settings) (llm.Provider, error) {
	switch settings.LLMProvider {
	case config.ProviderGemini:
		return gemini.GetGeminiClient(ctx, settings.GeminiAPIKey, settings.GeminiModel, customHttpClient.New(settings.ExternalCallTimeout))
	default:
		options := []openai.Option{openai.WithHTTPClient(customHttpClient.New(settings.ExternalCallTimeout))}
		if settings.OpenAIBaseURL != "" {
			options = append(options, openai.WithBaseURL(settings.OpenAIBaseURL))
		}
		return openai.NewOpenAIClient(settings.OpenAIAPIKey, settings.OpenAIModel, options...), nil
	}
}
