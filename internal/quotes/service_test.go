package quotes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitvibe/fitvibe/internal/users"
)

type generatorMock struct {
	quote    string
	err      error
	genCalls int
}

func (g *generatorMock) Generate(_ context.Context, _ Request) (string, error) {
	g.genCalls++
	if g.err != nil {
		return "", g.err
	}
	return g.quote, nil
}

type userStoreMock struct {
	user       *users.User
	setCalls   int
	setErr     error
	lastSetAt  time.Time
	lastSetObs *time.Time
}

func (m *userStoreMock) GetByID(_ context.Context, id int) (*users.User, error) {
	if m.user == nil || m.user.ID != id {
		return nil, users.ErrUserNotFound
	}
	userCopy := *m.user
	return &userCopy, nil
}

func (m *userStoreMock) SetLastQuoteGeneratedAt(
	_ context.Context, userID int, generatedAt time.Time, observed *time.Time,
) error {
	m.setCalls++
	m.lastSetAt = generatedAt
	m.lastSetObs = observed
	if m.setErr != nil {
		return m.setErr
	}
	m.user.LastQuoteGeneratedAt = &generatedAt
	return nil
}

var testReq = Request{
	Goal:          "lose weight",
	Phase:         "cutting",
	ActivityLevel: "moderate",
	Struggle:      "late night snacking",
}

func TestService_GenerateQuote_firstEver(t *testing.T) {
	userStore := &userStoreMock{user: &users.User{ID: 1, Username: "mladen"}}
	gen := &generatorMock{quote: "keep going!"}
	service := NewService(userStore, gen)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	service.nowFunc = func() time.Time { return now }

	quote, err := service.GenerateQuote(context.Background(), 1, testReq)
	require.NoError(t, err)
	assert.Equal(t, "keep going!", quote)
	assert.Equal(t, 1, gen.genCalls)
	assert.Equal(t, 1, userStore.setCalls)
	assert.Equal(t, now, m2t(userStore.user.LastQuoteGeneratedAt))
	assert.Nil(t, userStore.lastSetObs)
}

func TestService_GenerateQuote_windowBoundary(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("one second within the window", func(t *testing.T) {
		lastGenerated := now.Add(-MinInterval + time.Second)
		userStore := &userStoreMock{user: &users.User{
			ID: 1, Username: "mladen", LastQuoteGeneratedAt: &lastGenerated,
		}}
		gen := &generatorMock{quote: "keep going!"}
		service := NewService(userStore, gen)
		service.nowFunc = func() time.Time { return now }

		_, err := service.GenerateQuote(context.Background(), 1, testReq)
		require.ErrorIs(t, err, ErrRateLimited)
		assert.Equal(t, 0, gen.genCalls)
		assert.Equal(t, 0, userStore.setCalls)
	})

	t.Run("exactly the window", func(t *testing.T) {
		lastGenerated := now.Add(-MinInterval)
		userStore := &userStoreMock{user: &users.User{
			ID: 1, Username: "mladen", LastQuoteGeneratedAt: &lastGenerated,
		}}
		gen := &generatorMock{quote: "keep going!"}
		service := NewService(userStore, gen)
		service.nowFunc = func() time.Time { return now }

		quote, err := service.GenerateQuote(context.Background(), 1, testReq)
		require.NoError(t, err)
		assert.Equal(t, "keep going!", quote)
		assert.Equal(t, &lastGenerated, userStore.lastSetObs)
	})
}

func TestService_GenerateQuote_generationFailure(t *testing.T) {
	lastGenerated := time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)
	userStore := &userStoreMock{user: &users.User{
		ID: 1, Username: "mladen", LastQuoteGeneratedAt: &lastGenerated,
	}}
	gen := &generatorMock{err: errors.New("model unavailable")}
	service := NewService(userStore, gen)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	service.nowFunc = func() time.Time { return now }

	_, err := service.GenerateQuote(context.Background(), 1, testReq)
	require.ErrorIs(t, err, ErrGenerationFailed)

	// failure must not consume the window
	assert.Equal(t, 0, userStore.setCalls)
	assert.Equal(t, lastGenerated, m2t(userStore.user.LastQuoteGeneratedAt))

	// an immediate retry goes through once generation recovers
	gen.err = nil
	gen.quote = "back on track"
	quote, err := service.GenerateQuote(context.Background(), 1, testReq)
	require.NoError(t, err)
	assert.Equal(t, "back on track", quote)
	assert.Equal(t, now, m2t(userStore.user.LastQuoteGeneratedAt))
}

func TestService_GenerateQuote_concurrentCommitLoss(t *testing.T) {
	userStore := &userStoreMock{
		user:   &users.User{ID: 1, Username: "mladen"},
		setErr: users.ErrConcurrentUpdate,
	}
	gen := &generatorMock{quote: "keep going!"}
	service := NewService(userStore, gen)

	// the quote is still served when losing the commit race
	quote, err := service.GenerateQuote(context.Background(), 1, testReq)
	require.NoError(t, err)
	assert.Equal(t, "keep going!", quote)
	assert.Equal(t, 1, userStore.setCalls)
}

func TestService_GenerateQuote_commitError(t *testing.T) {
	userStore := &userStoreMock{
		user:   &users.User{ID: 1, Username: "mladen"},
		setErr: errors.New("db gone"),
	}
	gen := &generatorMock{quote: "keep going!"}
	service := NewService(userStore, gen)

	_, err := service.GenerateQuote(context.Background(), 1, testReq)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrGenerationFailed)
}

func TestService_GenerateQuote_userNotFound(t *testing.T) {
	userStore := &userStoreMock{}
	gen := &generatorMock{quote: "keep going!"}
	service := NewService(userStore, gen)

	_, err := service.GenerateQuote(context.Background(), 1, testReq)
	require.ErrorIs(t, err, users.ErrUserNotFound)
	assert.Equal(t, 0, gen.genCalls)
}

func m2t(ts *time.Time) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return *ts
}
