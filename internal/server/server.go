package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/akolanti/GoDocQA/internal/adapter/utils"
	"github.com/akolanti/GoDocQA/internal/config"
	"github.com/akolanti/GoDocQA/internal/handlers"
	"github.com/akolanti/GoDocQA/internal/middleware"
	"github.com/akolanti/GoDocQA/pkg/logger_i"
)

var _logger = logger_i.NewLogger("Server")

type Routes struct {
	QA         *handlers.QAHandler
	MCP        http.Handler
	Middleware *middleware.Middleware
}

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	CloseServices    context.CancelFunc
}

// NewRouter mounts every route. Swagger and metrics stay outside the middleware.
func NewRouter(routes Routes) http.Handler {
	r := utils.NewRouter()
	wrap := routes.Middleware.Wrap

	r.Router.Method(http.MethodPost, config.UploadRoute, wrap(http.HandlerFunc(routes.QA.UploadPDF)))
	r.Router.Method(http.MethodGet, "/runs/{id}", wrap(http.HandlerFunc(routes.QA.GetRun)))
	r.Router.Method(http.MethodDelete, "/runs/{id}", wrap(http.HandlerFunc(routes.QA.DeleteRun)))
	if routes.MCP != nil {
		r.Router.Handle("/mcp", wrap(routes.MCP))
	}
	return r.Router
}

func CreateServer(listenAddr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         listenAddr,
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
}

func ListenAndServe(server *http.Server) {
	_logger.Info("Server is listening at", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err, "addr", server.Addr)
	}
}

func ShutDownHandler(server *http.Server, shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "error", err)
		}

		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Graceful shutdown complete")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
