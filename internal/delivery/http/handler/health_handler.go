package handler

import (
	"context"
	"net/http"
	"time"

	"hospital-scheduling/pkg/response"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db          *gorm.DB
	redisClient *redis.Client
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
	}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"database": "up", "redis": "up"}
	healthy := true

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		status["database"] = "down"
		healthy = false
	}
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		status["redis"] = "down"
		healthy = false
	}

	if !healthy {
		response.Error(w, http.StatusServiceUnavailable, "Service unhealthy", status)
		return
	}

	response.Success(w, http.StatusOK, "Service healthy", status)
}
