package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blogwatch/app/scan"
)

// ScanFunc runs one scan-and-notify cycle and reports how many
// articles were delivered, which sources failed, and whether the run
// itself failed.
type ScanFunc func(ctx context.Context) (int, []scan.SourceError, error)

type Handler struct {
	scan    ScanFunc
	version string
}

func NewHandler(scanFn ScanFunc, version string) *Handler {
	return &Handler{scan: scanFn, version: version}
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) PostScan(c *gin.Context) {
	started := time.Now()

	count, sourceErrs, err := h.scan(c.Request.Context())
	if err != nil {
		slog.Error("Scan request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	failures := make([]string, 0, len(sourceErrs))
	for _, se := range sourceErrs {
		failures = append(failures, se.Error())
	}

	c.JSON(http.StatusOK, gin.H{
		"articles":      count,
		"source_errors": failures,
		"duration":      time.Since(started).String(),
	})
}
