package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"orderflow/internal/pkg/logger"
	"orderflow/internal/service/user/application"
	"orderflow/internal/service/user/domain"
)

const serviceName = "user-service"

// UserHandler 封装了用户服务的 HTTP 处理器。
type UserHandler struct {
	service *application.UserApplicationService
}

func NewUserHandler(service *application.UserApplicationService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("POST /api/users", h.createUser)
	mux.HandleFunc("GET /api/users", h.listUsers)
	mux.HandleFunc("GET /api/users/{id}", h.getUser)
}

func (h *UserHandler) createUser(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer(serviceName)
	ctx, span := tracer.Start(r.Context(), "http.CreateUser")
	defer span.End()

	var req application.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateUser(ctx, &req)
	if err != nil {
		if errors.Is(err, domain.ErrMissingUserFields) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Ctx(ctx).Error().Err(err).Msg("user creation failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer(serviceName)
	ctx, span := tracer.Start(r.Context(), "http.GetUser")
	defer span.End()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		logger.Ctx(ctx).Error().Err(err).Int64("user_id", id).Msg("user lookup failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer(serviceName)
	ctx, span := tracer.Start(r.Context(), "http.ListUsers")
	defer span.End()

	resp, err := h.service.ListUsers(ctx)
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("user listing failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
