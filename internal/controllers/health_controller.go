package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"contactly-be/internal/logger"
)

const healthTimeout = 2 * time.Second

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

type HealthController struct {
	checks map[string]HealthCheck
	log    *logger.Logger
}

func NewHealthController(checks map[string]HealthCheck, log *logger.Logger) *HealthController {
	return &HealthController{checks: checks, log: log}
}

// Check handles GET /health
func (hc *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	failed := []string{}
	for name, check := range hc.checks {
		if err := check(ctx); err != nil {
			hc.log.Warn("health check failed", "dependency", name, "error", err)
			failed = append(failed, name)
		}
	}

	if len(failed) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"failed": failed,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
