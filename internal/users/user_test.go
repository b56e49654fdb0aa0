package users_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitvibe/fitvibe/internal/users"
)

func TestParseGender(t *testing.T) {
	for raw, expected := range map[string]users.Gender{
		"male":   users.GenderMale,
		"M":      users.GenderMale,
		"Female": users.GenderFemale,
		"f":      users.GenderFemale,
	} {
		gender, err := users.ParseGender(raw)
		require.NoError(t, err, "raw: %q", raw)
		assert.Equal(t, expected, gender)
	}

	_, err := users.ParseGender("unknown")
	require.Error(t, err)
}

func TestParseActivityLevel(t *testing.T) {
	level, err := users.ParseActivityLevel("Very-Active")
	require.NoError(t, err)
	assert.Equal(t, users.ActivityVeryActive, level)

	level, err = users.ParseActivityLevel("sedentary")
	require.NoError(t, err)
	assert.Equal(t, users.ActivitySedentary, level)

	_, err = users.ParseActivityLevel("hyperactive")
	require.Error(t, err)
}

func TestParseGoals(t *testing.T) {
	goals, err := users.ParseGoals([]string{"lose weight", "Maintain", "gain muscle"})
	require.NoError(t, err)
	assert.Equal(t, []users.Goal{users.GoalLose, users.GoalMaintain, users.GoalGain}, goals)

	_, err = users.ParseGoals([]string{"lose", "shred"})
	require.Error(t, err)
}

func TestUser_passwordHashNotMarshaled(t *testing.T) {
	userJson, err := json.Marshal(users.User{
		ID:           1,
		Username:     "mladen",
		PasswordHash: "secret-hash",
	})
	require.NoError(t, err)
	assert.NotContains(t, string(userJson), "secret-hash")
}
