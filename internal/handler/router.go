package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/joestump/joe-advisor/docs/swagger"
	"github.com/joestump/joe-advisor/internal/api"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Recommender api.Recommender
	Logger      *zap.Logger
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger.Named("http")))
	r.Use(middleware.Recoverer)

	form := NewFormHandler(deps.Recommender, logger.Named("form"))
	r.Get("/", form.Show)
	r.Post("/recommend", form.Submit)

	r.Get("/healthz", Healthz)
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	r.Get("/api/docs/*", httpSwagger.WrapHandler)

	apiRouter := api.NewAPIRouter(api.Deps{
		Recommender: deps.Recommender,
		Logger:      logger,
	})
	r.Mount("/api/v1", apiRouter)

	return r
}

// requestLogger logs one line per request with the chi request ID.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("elapsed", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("remote", r.RemoteAddr),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
