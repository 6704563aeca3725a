package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves /health with DB and optional Redis checks.
type HealthHandler struct {
	db    Pinger
	redis *redis.Client
}

// NewHealthHandler creates a health handler. db nil means the in-memory store; redis is optional.
func NewHealthHandler(db Pinger, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

type healthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	Message string            `json:"message,omitempty"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := make(map[string]string)
	allOK := true

	if h.db == nil {
		checks["database"] = "memory"
	} else if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "down: " + err.Error()
		allOK = false
	} else {
		checks["database"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down: " + err.Error()
			allOK = false
		} else {
			checks["redis"] = "ok"
		}
	}

	if !allOK {
		_ = writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:  "unhealthy",
			Checks:  checks,
			Message: "one or more checks failed",
		})
		return
	}
	_ = writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Checks: checks})
}

// Root answers GET / so load balancers and humans can see the process is up.
func Root(w http.ResponseWriter, _ *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string]string{"message": "Darukaa.Earth Backend is running"})
}
