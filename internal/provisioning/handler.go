package provisioning

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"provisioning-dashboard/internal/dto"
	"provisioning-dashboard/internal/store"
)

const (
	maxLoginAttempts  = 5
	loginAttemptTTL   = 10 * time.Minute
	loginAttemptsKey  = "login:attempts:"
	maxRequestBodyLen = 1 << 20
)

type Handler struct {
	service    Service
	store      store.Store
	configured bool
	rdb        *redis.Client
	logger     *slog.Logger
}

// NewHandler wires the HTTP layer. rdb may be nil, which disables the login
// attempt limiter entirely.
func NewHandler(service Service, st store.Store, configured bool, rdb *redis.Client, logger *slog.Logger) *Handler {
	return &Handler{
		service:    service,
		store:      st,
		configured: configured,
		rdb:        rdb,
		logger:     logger,
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(h.logger))
	r.Use(RequestSizeLimitMiddleware(maxRequestBodyLen))
	r.Use(CORSMiddleware)
	r.Use(SecurityHeadersMiddleware)

	r.Get("/", h.Root)
	r.Get("/test", h.TestDatabase)
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Get("/divisions", h.ListDivisions)
		r.Post("/tasks", h.CreateTask)
		r.Get("/tasks", h.ListTasks)
	})
	return r
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "IT Provisioning Dashboard API"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	// rate limit by nik+ip, only when redis is configured
	if h.rdb != nil {
		key := loginAttemptsKey + req.NIK + ":" + clientIP(r)
		if cnt, err := h.rdb.Get(r.Context(), key).Int64(); err == nil && cnt >= maxLoginAttempts {
			http.Error(w, "too many attempts", http.StatusTooManyRequests)
			return
		}
	}

	res, err := h.service.Login(r.Context(), req.NIK, req.Password)
	if err != nil {
		if errors.Is(err, ErrUnknownNIK) || errors.Is(err, ErrBadPassword) {
			h.noteFailedLogin(r, req.NIK)
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		h.serverError(w, r, err)
		return
	}

	if h.rdb != nil {
		_ = h.rdb.Del(r.Context(), loginAttemptsKey+req.NIK+":"+clientIP(r)).Err()
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:    res.Token,
		NIK:      res.NIK,
		Name:     res.Name,
		Division: res.Division,
	})
}

func (h *Handler) noteFailedLogin(r *http.Request, nik string) {
	if h.rdb == nil {
		return
	}
	key := loginAttemptsKey + nik + ":" + clientIP(r)
	val, err := h.rdb.Incr(r.Context(), key).Result()
	if err != nil {
		return
	}
	if val == 1 {
		_ = h.rdb.Expire(r.Context(), key, loginAttemptTTL).Err()
	}
}

func (h *Handler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Divisions)
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	nik, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	id, err := h.service.CreateTask(r.Context(), nik, TaskType(req.Type), req.Payload)
	if err != nil {
		if errors.Is(err, ErrInvalidTaskType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TaskResponse{ID: id, Status: string(StatusPending)})
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	nik, ok := h.authorize(w, r)
	if !ok {
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), nik)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// TestDatabase reports store connectivity. Unlike every other endpoint it
// downgrades store errors into a descriptive status string instead of failing
// the request. Shape and wording match the existing dashboard.
func (h *Handler) TestDatabase(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"backend":           "✅ Running",
		"database":          "❌ Not Available",
		"database_url":      nil,
		"database_name":     nil,
		"connection_status": "Not Connected",
		"collections":       []string{},
	}

	if !h.configured {
		resp["database"] = "⚠️ Available but not initialized"
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp["database"] = "✅ Available"
	resp["database_url"] = envStatus("DATABASE_URL")
	resp["database_name"] = envStatus("DATABASE_NAME")

	names, err := h.store.CollectionNames(r.Context())
	if err != nil {
		resp["database"] = "⚠️ Connected but Error: " + truncate(err.Error(), 50)
	} else {
		if len(names) > 10 {
			names = names[:10]
		}
		resp["collections"] = names
		resp["database"] = "✅ Connected & Working"
	}

	writeJSON(w, http.StatusOK, resp)
}

// authorize extracts and resolves the bearer token, writing the failure
// response itself. Absent and malformed headers both fail before any store
// access.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := bearerToken(r.Header.Get("Authorization"))
	nik, err := h.service.Authenticate(r.Context(), token)
	if err != nil {
		if errors.Is(err, ErrMissingToken) || errors.Is(err, ErrInvalidToken) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return "", false
		}
		h.serverError(w, r, err)
		return "", false
	}
	return nik, true
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrUnavailable) {
		http.Error(w, "Database not configured", http.StatusInternalServerError)
		return
	}
	h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header; it returns "" when the header is absent or malformed.
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		ips := strings.Split(ip, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

func envStatus(key string) string {
	if os.Getenv(key) != "" {
		return "✅ Set"
	}
	return "❌ Not Set"
}

// truncate shortens s to at most n runes, never splitting a multibyte
// character.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
