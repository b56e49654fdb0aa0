package nutrition

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitvibe/fitvibe/internal/auth"
	"github.com/fitvibe/fitvibe/internal/telemetry/metrics"
	"github.com/fitvibe/fitvibe/internal/users"
)

func generateCaloriesRequest(t *testing.T, userID int) *http.Request {
	t.Helper()
	req, err := http.NewRequest("POST", "/user/calories/generate", nil)
	require.NoError(t, err)
	if userID > 0 {
		req = req.WithContext(auth.ContextWithUserID(req.Context(), userID))
	}
	return req
}

func TestHandler_HandleGenerateCalories(t *testing.T) {
	userSource := newUserSourceMock()
	userSource.users[1] = &users.User{ID: 1, Username: "mladen"}
	userSource.metrics[1] = &users.Metrics{
		UserID:        1,
		Gender:        users.GenderMale,
		WeightKg:      80,
		HeightCm:      180,
		DateOfBirth:   time.Date(1994, 3, 10, 0, 0, 0, 0, time.UTC),
		ActivityLevel: users.ActivityModerate,
		Goals:         []users.Goal{users.GoalLose},
	}

	service := NewService(userSource)
	service.nowFunc = func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	}
	h := NewHandler(service, metrics.NewTestManager())

	rec := httptest.NewRecorder()
	h.HandleGenerateCalories(rec, generateCaloriesRequest(t, 1))
	require.Equal(t, http.StatusOK, rec.Code)

	var goals CalorieGoals
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &goals))
	assert.InDelta(t, 2297.75, goals.CalorieTarget, 0.001)
	assert.Len(t, goals.DailyGoals, 3)
}

func TestHandler_HandleGenerateCalories_userNotFound(t *testing.T) {
	h := NewHandler(NewService(newUserSourceMock()), metrics.NewTestManager())

	rec := httptest.NewRecorder()
	h.HandleGenerateCalories(rec, generateCaloriesRequest(t, 1))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_HandleGenerateCalories_noMetrics(t *testing.T) {
	userSource := newUserSourceMock()
	userSource.users[1] = &users.User{ID: 1, Username: "mladen"}

	h := NewHandler(NewService(userSource), metrics.NewTestManager())

	rec := httptest.NewRecorder()
	h.HandleGenerateCalories(rec, generateCaloriesRequest(t, 1))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleGenerateCalories_noGoals(t *testing.T) {
	userSource := newUserSourceMock()
	userSource.users[1] = &users.User{ID: 1, Username: "mladen"}
	userSource.metrics[1] = &users.Metrics{
		UserID:        1,
		Gender:        users.GenderMale,
		WeightKg:      80,
		HeightCm:      180,
		DateOfBirth:   time.Date(1994, 3, 10, 0, 0, 0, 0, time.UTC),
		ActivityLevel: users.ActivityModerate,
	}

	h := NewHandler(NewService(userSource), metrics.NewTestManager())

	rec := httptest.NewRecorder()
	h.HandleGenerateCalories(rec, generateCaloriesRequest(t, 1))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleGenerateCalories_noUserInContext(t *testing.T) {
	h := NewHandler(NewService(newUserSourceMock()), metrics.NewTestManager())

	rec := httptest.NewRecorder()
	h.HandleGenerateCalories(rec, generateCaloriesRequest(t, 0))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
