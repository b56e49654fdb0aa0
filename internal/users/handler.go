package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fitvibe/fitvibe/internal/authctx"
	"github.com/fitvibe/fitvibe/internal/telemetry/tracing"
	"github.com/fitvibe/fitvibe/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=users_test

type usersRepo interface {
	GetByID(ctx context.Context, id int) (*User, error)
	GetMetrics(ctx context.Context, userID int) (*Metrics, error)
	UpsertMetrics(ctx context.Context, metrics *Metrics) error
}

type UserDataResponse struct {
	User    *User    `json:"user"`
	Metrics *Metrics `json:"metrics,omitempty"`
}

// UpdateMetricsRequest carries raw categorical values, validated and turned
// into enums before anything is stored.
type UpdateMetricsRequest struct {
	Gender        string   `json:"gender"`
	WeightKg      float64  `json:"weight"`
	HeightCm      float64  `json:"height"`
	DateOfBirth   string   `json:"dateOfBirth"` // YYYY-MM-DD
	ActivityLevel string   `json:"activityLevel"`
	Goals         []string `json:"goals"`
}

type Handler struct {
	repo usersRepo
}

func NewHandler(repo usersRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleGetUserData(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.getUserData")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	user, err := handler.repo.GetByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to get user %d: %s", userID, err)
		http.Error(w, "error getting user data", http.StatusInternalServerError)
		return
	}

	metrics, err := handler.repo.GetMetrics(ctx, user.ID)
	if err != nil && !errors.Is(err, ErrMetricsNotFound) {
		log.Errorf("failed to get metrics for user %d: %s", userID, err)
		http.Error(w, "error getting user data", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(UserDataResponse{
		User:    user,
		Metrics: metrics,
	})
	if err != nil {
		log.Errorf("failed to marshal user data: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleUpdateMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.updateMetrics")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req UpdateMetricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update metrics, unmarshal json params: %s", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	metrics, err := metricsFromRequest(userID, req)
	if err != nil {
		log.Tracef("update metrics for user %d: %s", userID, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := handler.repo.GetByID(ctx, userID); errors.Is(err, ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to get user %d: %s", userID, err)
		http.Error(w, "error updating metrics", http.StatusInternalServerError)
		return
	}

	if err := handler.repo.UpsertMetrics(ctx, metrics); err != nil {
		log.Errorf("failed to upsert metrics for user %d: %s", userID, err)
		http.Error(w, "error updating metrics", http.StatusInternalServerError)
		return
	}

	log.Debugf("metrics updated for user %d", userID)
	pkg.WriteJSONResponseOK(w, `{"updated":true}`)
}

func metricsFromRequest(userID int, req UpdateMetricsRequest) (*Metrics, error) {
	gender, err := ParseGender(req.Gender)
	if err != nil {
		return nil, err
	}

	activityLevel, err := ParseActivityLevel(req.ActivityLevel)
	if err != nil {
		return nil, err
	}

	goals, err := ParseGoals(req.Goals)
	if err != nil {
		return nil, err
	}

	dateOfBirth, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, errors.New("invalid date of birth, use YYYY-MM-DD")
	}

	metrics := &Metrics{
		UserID:        userID,
		Gender:        gender,
		WeightKg:      req.WeightKg,
		HeightCm:      req.HeightCm,
		DateOfBirth:   dateOfBirth,
		ActivityLevel: activityLevel,
		Goals:         goals,
	}
	if err := metrics.Validate(); err != nil {
		return nil, err
	}

	return metrics, nil
}
