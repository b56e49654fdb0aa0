package nutrition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitvibe/fitvibe/internal/telemetry/tracing"
	"github.com/fitvibe/fitvibe/internal/users"

	"go.opentelemetry.io/otel/attribute"
)

var ErrNoGoalsSet = errors.New("user has no goals set")

type userSource interface {
	GetByID(ctx context.Context, id int) (*users.User, error)
	GetMetrics(ctx context.Context, userID int) (*users.Metrics, error)
}

// CalorieGoals is computed fresh on every call and never persisted.
type CalorieGoals struct {
	CalorieTarget float64           `json:"calorieTarget"`
	DailyGoals    map[Macro]float64 `json:"dailyGoals"`
}

type Service struct {
	users userSource
	// nowFunc is injectable so age derivation is deterministic in tests
	nowFunc func() time.Time
}

func NewService(users userSource) *Service {
	return &Service{
		users:   users,
		nowFunc: time.Now,
	}
}

// GenerateCalorieGoals loads the user's stored metrics and runs the full
// pipeline: age from date of birth, BMR, TDEE, calorie target from the
// primary goal, then the daily macro split.
func (s *Service) GenerateCalorieGoals(ctx context.Context, userID int) (_ *CalorieGoals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "nutrition.generateCalorieGoals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	metrics, err := s.users.GetMetrics(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get metrics: %w", err)
	}

	if err := metrics.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOutOfDomain, err)
	}
	if len(metrics.Goals) == 0 {
		return nil, ErrNoGoalsSet
	}

	age := AgeAt(metrics.DateOfBirth, s.nowFunc())

	bmr, err := CalculateBMR(metrics.Gender, metrics.WeightKg, metrics.HeightCm, age)
	if err != nil {
		return nil, err
	}

	tdee, err := CalculateTDEE(bmr, metrics.ActivityLevel)
	if err != nil {
		return nil, err
	}

	// the first goal is the authoritative one
	calorieTarget, err := CalorieIntake(metrics.Goals[0], tdee)
	if err != nil {
		return nil, err
	}

	dailyGoals, err := CalculateDailyGoals(calorieTarget)
	if err != nil {
		return nil, err
	}

	return &CalorieGoals{
		CalorieTarget: calorieTarget,
		DailyGoals:    dailyGoals,
	}, nil
}
