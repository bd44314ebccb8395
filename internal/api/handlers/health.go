package handlers

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tubegrab/tubegrab/internal/config"
	"github.com/tubegrab/tubegrab/internal/services/extractor"
	"github.com/tubegrab/tubegrab/internal/services/session"
	"github.com/tubegrab/tubegrab/internal/utils"
)

type HealthHandler struct {
	sessions session.Store
	download *config.DownloadConfig
}

type HealthResponse struct {
	Status    string                   `json:"status"`
	Timestamp string                   `json:"timestamp"`
	Version   string                   `json:"version"`
	Services  map[string]ServiceHealth `json:"services"`
}

type ServiceHealth struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

func NewHealthHandler(sessions session.Store, download *config.DownloadConfig) *HealthHandler {
	return &HealthHandler{
		sessions: sessions,
		download: download,
	}
}

// Health reports the state of the session store, the scratch directory and
// the external extraction toolchain.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   "1.0.0",
		Services:  make(map[string]ServiceHealth),
	}

	response.Services["session_store"] = h.checkSessionStore(ctx)
	response.Services["scratch_dir"] = h.checkScratchDir()
	response.Services["toolchain"] = h.checkToolchain()

	for _, service := range response.Services {
		if service.Status != "healthy" {
			response.Status = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
	}

	c.JSON(http.StatusOK, response)
}

// Readiness reports whether the service can accept webhook deliveries.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx := c.Request.Context()

	ready := true
	checks := make(map[string]interface{})

	if err := h.sessions.Ping(ctx); err != nil {
		ready = false
		checks["session_store"] = map[string]interface{}{
			"ready": false,
			"error": err.Error(),
		}
	} else {
		checks["session_store"] = map[string]interface{}{
			"ready": true,
		}
	}

	response := map[string]interface{}{
		"ready":     ready,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}

	if ready {
		c.JSON(http.StatusOK, response)
	} else {
		c.JSON(http.StatusServiceUnavailable, response)
	}
}

// Liveness answers as long as the process is serving requests.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) checkSessionStore(ctx context.Context) ServiceHealth {
	start := time.Now()

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := h.sessions.Ping(checkCtx)
	responseTime := time.Since(start).String()

	if err != nil {
		utils.LogError(ctx, "Session store health check failed", err)
		return ServiceHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
			Error:        err.Error(),
		}
	}

	return ServiceHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

func (h *HealthHandler) checkScratchDir() ServiceHealth {
	probe := filepath.Join(h.download.ScratchDir, ".health-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return ServiceHealth{Status: "unhealthy", Error: err.Error()}
	}
	os.Remove(probe)
	return ServiceHealth{Status: "healthy"}
}

func (h *HealthHandler) checkToolchain() ServiceHealth {
	if err := extractor.CheckBinaries(); err != nil {
		return ServiceHealth{Status: "unhealthy", Error: err.Error()}
	}
	return ServiceHealth{Status: "healthy"}
}
