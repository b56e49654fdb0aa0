package nutrition

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

func (handler *Handler) HandleGenerateCalories(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.generateCalories")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	calorieGoals, err := handler.service.GenerateCalorieGoals(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, users.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
		return
	case errors.Is(err, users.ErrMetricsNotFound):
		http.Error(w, "user metrics not found", http.StatusBadRequest)
		return
	case errors.Is(err, ErrNoGoalsSet):
		http.Error(w, "user has no goals set", http.StatusBadRequest)
		return
	default:
		// out-of-domain values mean broken stored data, fail loudly
		log.Errorf("failed to generate calorie goals for user %d: %s", userID, err)
		http.Error(w, "error generating calories", http.StatusInternalServerError)
		return
	}

	goalsJson, err := json.Marshal(calorieGoals)
	if err != nil {
		log.Errorf("failed to marshal calorie goals: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterCalorieGoals.Inc()
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, goalsJson)
}
