package food

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitvibe/fitvibe/internal/telemetry/metrics"
)

func TestApi_Lookup(t *testing.T) {
	apiCalls := 0
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiCalls++
		assert.Equal(t, "test-api-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "100g oats", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{
			"items": [{
				"name": "oats",
				"serving_size_g": 100,
				"calories": 389,
				"protein_g": 16.9,
				"carbohydrates_total_g": 66.3,
				"fat_total_g": 6.9,
				"sodium_mg": 2,
				"sugar_g": 0.99
			}]
		}`))
		require.NoError(t, err)
	}))
	defer testServer.Close()

	api := NewApi(testServer.URL, "test-api-key", testServer.Client(), metrics.NewTestManager())

	items, err := api.Lookup(context.Background(), "100g oats")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "oats", items[0].Name)
	assert.InDelta(t, 389, items[0].Calories, 0.001)
	assert.InDelta(t, 16.9, items[0].ProteinG, 0.001)
	assert.Equal(t, 1, apiCalls)

	// second lookup served from the cache
	items, err = api.Lookup(context.Background(), "100g Oats ")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "oats", items[0].Name)
	assert.Equal(t, 1, apiCalls)
}

func TestApi_Lookup_apiError(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer testServer.Close()

	api := NewApi(testServer.URL, "wrong-key", testServer.Client(), metrics.NewTestManager())

	_, err := api.Lookup(context.Background(), "100g oats")
	require.Error(t, err)
}

func TestParseMacroValue(t *testing.T) {
	for _, tc := range []struct {
		raw      string
		expected float64
	}{
		{raw: "", expected: 0},
		{raw: "389", expected: 389},
		{raw: "16.9g", expected: 16.9},
		{raw: "150mg", expected: 150},
		{raw: "0.99 g", expected: 0.99},
		{raw: "n/a", expected: 0},
	} {
		val, err := ParseMacroValue(tc.raw)
		require.NoError(t, err, "raw: %q", tc.raw)
		assert.InDelta(t, tc.expected, val, 0.0001, "raw: %q", tc.raw)
	}
}
