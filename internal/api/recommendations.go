package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/joestump/joe-advisor/internal/llm"
	"github.com/joestump/joe-advisor/internal/recommend"
)

const maxBodyBytes = 64 << 10

// recommendationsAPIHandler provides the POST /api/v1/recommendations endpoint.
type recommendationsAPIHandler struct {
	recommender Recommender
	logger      *zap.Logger
}

// Create asks the configured LLM for a bank product recommendation.
// POST /api/v1/recommendations
//
// @Summary      Recommend a bank product
// @Description  Renders the customer details into a prompt and returns the model's recommendation verbatim
// @Tags         Recommendations
// @Accept       json
// @Produce      json
// @Param        request  body      RecommendationRequest  true  "Customer details"
// @Success      200      {object}  RecommendationResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      422      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Failure      503      {object}  ErrorResponse
// @Failure      504      {object}  ErrorResponse
// @Router       /recommendations [post]
func (h *recommendationsAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if err := validateBody(body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
		return
	}

	var in RecommendationRequest
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	product, err := recommend.ParseProduct(in.ProductInterested)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
		return
	}

	rec, err := h.recommender.Recommend(r.Context(), recommend.RecommendationRequest{
		Product:         product,
		Income:          in.Income,
		CreditScore:     in.CreditScore,
		LoanAmount:      in.LoanAmount,
		RepaymentPeriod: in.RepaymentPeriod,
	})
	if err != nil {
		h.writeRecommendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RecommendationResponse{
		ID:             rec.ID,
		Recommendation: rec.Text,
		Model:          rec.Model,
	})
}

func (h *recommendationsAPIHandler) writeRecommendError(w http.ResponseWriter, err error) {
	var incomplete *recommend.IncompleteRequestError
	switch {
	case errors.As(err, &incomplete):
		missing := make([]string, len(incomplete.Missing))
		for i, f := range incomplete.Missing {
			missing[i] = string(f)
		}
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   err.Error(),
			Code:    "INCOMPLETE_REQUEST",
			Missing: missing,
		})
	case errors.Is(err, recommend.ErrUnknownProduct), errors.Is(err, recommend.ErrNegativeIncome):
		writeError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
	case errors.Is(err, llm.ErrInferenceUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error(), "INFERENCE_UNAVAILABLE")
	case errors.Is(err, llm.ErrInferenceTimeout):
		writeError(w, http.StatusGatewayTimeout, err.Error(), "INFERENCE_TIMEOUT")
	default:
		h.logger.Error("recommendation failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error(), "INFERENCE_FAILED")
	}
}
