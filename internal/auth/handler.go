package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fitvibe/fitvibe/internal/telemetry/tracing"
	"github.com/fitvibe/fitvibe/internal/users"
	"github.com/fitvibe/fitvibe/pkg"

	log "github.com/sirupsen/logrus"
)

type usersRepo interface {
	Create(ctx context.Context, username, passwordHash string) (*users.User, error)
	GetByUsername(ctx context.Context, username string) (*users.User, error)
}

type Handler struct {
	repo    usersRepo
	service *Service
}

func NewHandler(repo usersRepo, service *Service) *Handler {
	return &Handler{
		repo:    repo,
		service: service,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RegisterResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.register")
	defer span.End()

	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Tracef("register, unmarshal json params: %s", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if creds.Username == "" || len(creds.Password) < 8 {
		http.Error(w, "username empty or password shorter than 8 chars", http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(creds.Password)
	if err != nil {
		log.Errorf("register, hash password: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	user, err := handler.repo.Create(ctx, creds.Username, passwordHash)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			http.Error(w, "username taken", http.StatusConflict)
			return
		}
		log.Errorf("register, create user [%s]: %s", creds.Username, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
	})
	if err != nil {
		log.Errorf("register, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	log.Debugf("new user registered: %s", user.Username)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Tracef("login, unmarshal json params: %s", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.GetByUsername(ctx, creds.Username)
	if err != nil && !errors.Is(err, users.ErrUserNotFound) {
		log.Errorf("login, get user [%s]: %s", creds.Username, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if errors.Is(err, users.ErrUserNotFound) || !pkg.CheckPasswordHash(creds.Password, user.PasswordHash) {
		log.Tracef("login failed for [%s]", creds.Username)
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := handler.service.Login(ctx, user.ID, time.Now())
	if err != nil {
		log.Errorf("login, create session for [%s]: %s", creds.Username, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	tokenJson, err := json.Marshal(LoginResponse{Token: token})
	if err != nil {
		log.Errorf("login, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, tokenJson)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	token := r.Header.Get("X-FITVIBE-TOKEN")
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := handler.service.Logout(ctx, token); err != nil {
		if errors.Is(err, ErrNotLoggedIn) {
			http.Error(w, "no can do", http.StatusUnauthorized)
			return
		}
		log.Errorf("logout: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"loggedOut":true}`)
}
