package food

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fitvibe/fitvibe/internal/telemetry/metrics"
	"github.com/fitvibe/fitvibe/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

// example API call
// https://api.calorieninjas.com/v1/nutrition?query=100g oats

const (
	oneHour           = 60 * 60
	lookupCacheExpire = oneHour * 24
)

// LookupItem is a single result from the nutrition lookup API.
type LookupItem struct {
	Name          string  `json:"name"`
	ServingSizeG  float64 `json:"serving_size_g"`
	Calories      float64 `json:"calories"`
	ProteinG      float64 `json:"protein_g"`
	CarbsTotalG   float64 `json:"carbohydrates_total_g"`
	FatTotalG     float64 `json:"fat_total_g"`
	SodiumMg      float64 `json:"sodium_mg"`
	SugarG        float64 `json:"sugar_g"`
	FiberG        float64 `json:"fiber_g"`
	CholesterolMg float64 `json:"cholesterol_mg"`
}

type lookupResponse struct {
	Items []LookupItem `json:"items"`
}

type Api struct {
	cache           *freecache.Cache
	nutritionApiUrl string // https://api.calorieninjas.com/v1
	nutritionApiKey string
	httpClient      *http.Client
	metrics         *metrics.Manager
}

func NewApi(
	nutritionApiUrl string,
	nutritionApiKey string,
	httpClient *http.Client,
	metricsManager *metrics.Manager,
) *Api {
	megabyte := 1024 * 1024
	cacheSize := 20 * megabyte

	return &Api{
		nutritionApiUrl: nutritionApiUrl,
		nutritionApiKey: nutritionApiKey,
		cache:           freecache.NewCache(cacheSize),
		httpClient:      httpClient,
		metrics:         metricsManager,
	}
}

// Lookup queries the nutrition API for the given free-text query.
// Results get cached per normalized query string.
func (a *Api) Lookup(ctx context.Context, query string) (items []LookupItem, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "foodApi.lookup")
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, fmt.Sprintf("found %d nutrition items", len(items)))
		}
	}()

	a.metrics.CounterFoodLookups.Inc()

	cacheKey := "lookup::" + strings.ToLower(strings.TrimSpace(query))
	if cachedBytes, err := a.cache.Get([]byte(cacheKey)); err == nil {
		log.Tracef("found nutrition info for [%s] in cache", query)
		var cached lookupResponse
		if err = json.Unmarshal(cachedBytes, &cached); err == nil {
			a.metrics.CounterFoodLookupCacheHit.Inc()
			return cached.Items, nil
		}
		log.Errorf("failed to unmarshal cached nutrition info for [%s]: %s", query, err)
	} else {
		log.Debugf("nutrition info for [%s] not cached: %s; will call the nutrition api", query, err)
	}

	lookupUrl := fmt.Sprintf("%s/nutrition?query=%s", a.nutritionApiUrl, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, "GET", lookupUrl, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", a.nutritionApiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nutrition api status: %s", resp.Status)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read nutrition api response bytes: %w", err)
	}

	var lookupResp lookupResponse
	if err := json.Unmarshal(respBytes, &lookupResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nutrition api response bytes: %w", err)
	}

	if err = a.cache.Set([]byte(cacheKey), respBytes, lookupCacheExpire); err != nil {
		log.Errorf("failed to write nutrition lookup cache for [%s]: %s", query, err)
	} else {
		log.Debugf("nutrition lookup cache set for: %s", query)
	}

	return lookupResp.Items, nil
}
