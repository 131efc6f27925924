package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/meduzzen/company-directory-api/internal/apierrors"
	"github.com/meduzzen/company-directory-api/internal/cache"
)

// HealthHandler serves the liveness and connectivity probes.
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redisClient,
	}
}

// Root reports that the service is up.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"detail":      "ok",
		"result":      "working",
	})
}

// PostgresTest verifies database connectivity.
func (h *HealthHandler) PostgresTest(c *gin.Context) {
	if err := h.db.Exec("SELECT 1").Error; err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "connected to PostgreSQL"})
}

// RedisTest verifies cache connectivity.
func (h *HealthHandler) RedisTest(c *gin.Context) {
	if err := cache.Ping(c.Request.Context(), h.redis); err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "connected to Redis"})
}
