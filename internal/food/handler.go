package food

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fitvibe/fitvibe/internal/auth"
	"github.com/fitvibe/fitvibe/internal/telemetry/tracing"
	"github.com/fitvibe/fitvibe/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=food_test

type foodRepo interface {
	Add(ctx context.Context, food Food) (*Food, error)
	ListForUser(ctx context.Context, userID int) ([]Food, error)
	Delete(ctx context.Context, id, userID int) error
}

type nutritionLookup interface {
	Lookup(ctx context.Context, query string) ([]LookupItem, error)
}

type SearchRequest struct {
	Query string `json:"query"`
}

type SearchResponse struct {
	Food []LookupItem `json:"food"`
}

// SaveFoodRequest carries macro values as raw strings, the way lookup
// results present them ("23g", "150mg"). Parsing happens server side.
type SaveFoodRequest struct {
	FoodData struct {
		Title    string `json:"title"`
		MealType string `json:"mealType"`
		Calories string `json:"calories"`
		Protein  string `json:"protein"`
		Carbs    string `json:"carbs"`
		Fats     string `json:"fats"`
		Sodium   string `json:"sodium"`
		Sugar    string `json:"sugar"`
	} `json:"foodData"`
	FoodType string `json:"foodType"`
}

type ListResponse struct {
	UserFood []Food `json:"userFood"`
	Total    int    `json:"total"`
}

type DeleteFoodResponse struct {
	DeletedID int `json:"deletedId"`
}

const lookupTimeout = 15 * time.Second

type Handler struct {
	repo   foodRepo
	lookup nutritionLookup
}

func NewHandler(repo foodRepo, lookup nutritionLookup) *Handler {
	return &Handler{
		repo:   repo,
		lookup: lookup,
	}
}

func (handler *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.food.search")
	defer span.End()

	if _, ok := auth.UserIDFromContext(ctx); !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var searchReq SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&searchReq); err != nil {
		log.Tracef("food search, unmarshal json params: %s", err)
		http.Error(w, "food search failed", http.StatusBadRequest)
		return
	}
	if searchReq.Query == "" {
		http.Error(w, "error, query empty", http.StatusBadRequest)
		return
	}

	lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	items, err := handler.lookup.Lookup(lookupCtx, searchReq.Query)
	if err != nil {
		log.Errorf("food lookup for [%s]: %s", searchReq.Query, err)
		http.Error(w, "food lookup failed", http.StatusInternalServerError)
		return
	}
	if len(items) == 0 {
		http.Error(w, "food not found", http.StatusNotFound)
		return
	}

	searchRespJson, err := json.Marshal(SearchResponse{Food: items})
	if err != nil {
		log.Errorf("marshal food search response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, searchRespJson)
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.food.save")
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

	var saveReq SaveFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&saveReq); err != nil {
		log.Tracef("save food, unmarshal json params: %s", err)
		http.Error(w, "save food failed", http.StatusBadRequest)
		return
	}

	if saveReq.FoodData.Title == "" {
		http.Error(w, "error, food title empty", http.StatusBadRequest)
		return
	}

	macros, err := macrosFromRequest(saveReq)
	if err != nil {
		log.Tracef("save food, parse macros: %s", err)
		http.Error(w, "error, invalid macro values", http.StatusBadRequest)
		return
	}

	addedFood, err := handler.repo.Add(ctx, Food{
		UserID:    userID,
		Name:      saveReq.FoodData.Title,
		Type:      saveReq.FoodType,
		Category:  saveReq.FoodData.MealType,
		Macros:    *macros,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Errorf("failed to save food [%s] for user %d: %s", saveReq.FoodData.Title, userID, err)
		http.Error(w, "error, failed to save food", http.StatusInternalServerError)
		return
	}

	addedFoodJson, err := json.Marshal(addedFood)
	if err != nil {
		log.Errorf("failed to marshal saved food: %s", err)
		http.Error(w, "error, failed to save food", http.StatusInternalServerError)
		return
	}

	log.Debugf("new food saved: %s", addedFoodJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedFoodJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.food.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	userFood, err := handler.repo.ListForUser(ctx, userID)
	if err != nil {
		log.Errorf("list food for user %d: %s", userID, err)
		http.Error(w, "failed to get food", http.StatusInternalServerError)
		return
	}

	listJson, err := json.Marshal(ListResponse{
		UserFood: userFood,
		Total:    len(userFood),
	})
	if err != nil {
		log.Errorf("marshal food list error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.food.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, ErrFoodNotFound) {
			log.Debugf("food %d not found for user %d", id, userID)
			http.Error(w, "food not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete food %d: %s", id, err)
		http.Error(w, "food not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteFoodResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func macrosFromRequest(req SaveFoodRequest) (*Macros, error) {
	calories, err := ParseMacroValue(req.FoodData.Calories)
	if err != nil {
		return nil, err
	}
	protein, err := ParseMacroValue(req.FoodData.Protein)
	if err != nil {
		return nil, err
	}
	carbs, err := ParseMacroValue(req.FoodData.Carbs)
	if err != nil {
		return nil, err
	}
	fats, err := ParseMacroValue(req.FoodData.Fats)
	if err != nil {
		return nil, err
	}
	sodium, err := ParseMacroValue(req.FoodData.Sodium)
	if err != nil {
		return nil, err
	}
	sugar, err := ParseMacroValue(req.FoodData.Sugar)
	if err != nil {
		return nil, err
	}

	return &Macros{
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fats:     fats,
		Sodium:   sodium,
		Sugar:    sugar,
	}, nil
}
