package videos

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fitvibe/fitvibe/internal/auth"
	"github.com/fitvibe/fitvibe/internal/telemetry/tracing"
	"github.com/fitvibe/fitvibe/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=videos_test

type videosRepo interface {
	ListByCategory(ctx context.Context, category string) ([]Video, error)
	SearchByTitle(ctx context.Context, title string) ([]Video, error)
}

type ListResponse struct {
	Videos []Video `json:"exerciseVideos"`
	Total  int     `json:"total"`
}

type SearchRequest struct {
	Title string `json:"title"`
}

type Handler struct {
	repo videosRepo
}

func NewHandler(repo videosRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.videos.listByCategory")
	defer span.End()

	if _, ok := auth.UserIDFromContext(ctx); !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	category := vars["category"]
	if category == "" {
		http.Error(w, "error, category empty", http.StatusBadRequest)
		return
	}

	videos, err := handler.repo.ListByCategory(ctx, category)
	if err != nil {
		log.Errorf("list videos for category [%s]: %s", category, err)
		http.Error(w, "failed to get videos", http.StatusInternalServerError)
		return
	}

	handler.writeVideos(w, videos)
}

func (handler *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.videos.search")
	defer span.End()

	if _, ok := auth.UserIDFromContext(ctx); !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var searchReq SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&searchReq); err != nil {
		log.Tracef("videos search, unmarshal json params: %s", err)
		http.Error(w, "videos search failed", http.StatusBadRequest)
		return
	}
	if searchReq.Title == "" {
		http.Error(w, "error, title empty", http.StatusBadRequest)
		return
	}

	videos, err := handler.repo.SearchByTitle(ctx, searchReq.Title)
	if err != nil {
		log.Errorf("search videos by title [%s]: %s", searchReq.Title, err)
		http.Error(w, "failed to search videos", http.StatusInternalServerError)
		return
	}

	handler.writeVideos(w, videos)
}

func (handler *Handler) writeVideos(w http.ResponseWriter, videos []Video) {
	listJson, err := json.Marshal(ListResponse{
		Videos: videos,
		Total:  len(videos),
	})
	if err != nil {
		log.Errorf("marshal videos error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listJson)
}
