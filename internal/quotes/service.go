package quotes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitvibe/fitvibe/internal/telemetry/tracing"
	"github.com/fitvibe/fitvibe/internal/users"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// MinInterval is the minimum time between two successful generations for
// the same user. The comparison is strict: exactly MinInterval elapsed allows.
const MinInterval = 10 * time.Minute

const generationTimeout = 30 * time.Second

var (
	ErrRateLimited      = errors.New("quote already generated in the last 10 minutes")
	ErrGenerationFailed = errors.New("quote generation failed")
)

type generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

type userStore interface {
	GetByID(ctx context.Context, id int) (*users.User, error)
	SetLastQuoteGeneratedAt(ctx context.Context, userID int, generatedAt time.Time, observed *time.Time) error
}

// Service gates quote generation behind a per-user time window persisted on
// the user record. Only a successful generation consumes the window: upstream
// failures leave the timestamp untouched so the user can retry right away.
type Service struct {
	users     userStore
	generator generator
	// nowFunc is injectable for deterministic gate tests
	nowFunc func() time.Time
}

func NewService(users userStore, generator generator) *Service {
	return &Service{
		users:     users,
		generator: generator,
		nowFunc:   time.Now,
	}
}

func (s *Service) GenerateQuote(ctx context.Context, userID int, req Request) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "quotes.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}

	now := s.nowFunc()
	if user.LastQuoteGeneratedAt != nil && now.Sub(*user.LastQuoteGeneratedAt) < MinInterval {
		span.SetAttributes(attribute.Bool("rate-limited", true))
		return "", ErrRateLimited
	}

	genCtx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	quote, err := s.generator.Generate(genCtx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrGenerationFailed, err)
	}

	// commit the window only after observed success; the conditional update
	// loses when a concurrent request committed first, in which case the
	// generated quote is still returned (best-effort gate, see repo)
	err = s.users.SetLastQuoteGeneratedAt(ctx, user.ID, now, user.LastQuoteGeneratedAt)
	if err != nil && !errors.Is(err, users.ErrConcurrentUpdate) {
		return "", fmt.Errorf("commit quote timestamp: %w", err)
	}
	if errors.Is(err, users.ErrConcurrentUpdate) {
		log.Warnf("user %d generated quotes concurrently within the same window", user.ID)
	}

	return quote, nil
}
