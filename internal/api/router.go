package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/joestump/joe-advisor/internal/recommend"
)

// Recommender produces a recommendation for a complete request.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.RecommendationRequest) (*recommend.Recommendation, error)
}

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Recommender Recommender
	Logger      *zap.Logger
}

// NewAPIRouter creates a chi sub-router for /api/v1.
// All routes return application/json.
func NewAPIRouter(deps Deps) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(jsonContentType)

	recommendations := &recommendationsAPIHandler{
		recommender: deps.Recommender,
		logger:      logger.Named("api"),
	}
	r.Post("/recommendations", recommendations.Create)

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
