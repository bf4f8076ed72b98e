package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/GoDocQA/internal/api"
	"github.com/akolanti/GoDocQA/internal/config"
	"github.com/akolanti/GoDocQA/internal/handlers"
	"github.com/akolanti/GoDocQA/internal/metrics"
	"github.com/akolanti/GoDocQA/pkg/logger_i"
	"golang.org/x/time/rate"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

type Options struct {
	AuthToken     string //empty disables bearer auth
	RatePerSecond float64
	Burst         int
}

type Middleware struct {
	authToken string
	limiter   *IPRateLimiter
}

func New(options Options) *Middleware {
	if options.RatePerSecond <= 0 {
		options.RatePerSecond = config.RATE_LIMIT_PER_SECOND
	}
	if options.Burst <= 0 {
		options.Burst = config.BURST_RATE_LIMIT_PER_SECOND
	}
	return &Middleware{
		authToken: options.AuthToken,
		limiter:   NewIPRateLimiter(rate.Limit(options.RatePerSecond), options.Burst),
	}
}

func (m *Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK} //metrics
		defer func() {
			metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
		}()

		re := m.processRequest(requestResponseStruct{req: r, writer: rec})
		if re.badRequest.isBadRequest {
			handleBadRequest(re)
			return
		}

		defer recoverPanic(re, rec)
		next.ServeHTTP(rec, re.req)
	})
}

func (m *Middleware) processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re = injectTrace(re)
	re.logger.Info("New request received", "method", re.req.Method, "path", re.req.URL.Path)

	re = m.authenticate(re)
	if re.badRequest.isBadRequest {
		return re //stop if auth fails
	}
	return m.rateLimiter(re)
}

func recoverPanic(re requestResponseStruct, rec *metrics.HttpStatusRecorder) {
	if p := recover(); p != nil {
		if p == http.ErrAbortHandler {
			panic(p)
		}
		re.logger.Error("Recovered from panic", "panic", p)
		if !rec.WroteHeader() {
			handlers.WriteErrorResponse(rec, http.StatusInternalServerError, api.DetailInternalError)
		}
	}
}
