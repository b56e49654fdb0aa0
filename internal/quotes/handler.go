package quotes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fitvibe/fitvibe/internal/auth"
	"github.com/fitvibe/fitvibe/internal/telemetry/metrics"
	"github.com/fitvibe/fitvibe/internal/telemetry/tracing"
	"github.com/fitvibe/fitvibe/internal/users"
	"github.com/fitvibe/fitvibe/pkg"

	log "github.com/sirupsen/logrus"
)

type QuoteResponse struct {
	Quote string `json:"quote"`
}

type Handler struct {
	service        *Service
	metricsManager *metrics.Manager
}

func NewHandler(service *Service, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleGenerateQuote(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.quotes.generate")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("generate quote, unmarshal json params: %s", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	quote, err := handler.service.GenerateQuote(ctx, userID, req)
	switch {
	case err == nil:
	case errors.Is(err, users.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrRateLimited):
		handler.metricsManager.CounterQuotesRateLimited.Inc()
		http.Error(w, "quote already generated in the last 10 minutes", http.StatusTooManyRequests)
		return
	case errors.Is(err, ErrGenerationFailed):
		log.Errorf("quote generation failed for user %d: %s", userID, err)
		http.Error(w, "error generating motivational quote", http.StatusBadGateway)
		return
	default:
		log.Errorf("generate quote for user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	quoteJson, err := json.Marshal(QuoteResponse{Quote: quote})
	if err != nil {
		log.Errorf("failed to marshal quote response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterQuotesGenerated.Inc()
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, quoteJson)
}
