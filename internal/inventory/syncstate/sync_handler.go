package syncstate

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockledger/internal/reconcile"
)

// SyncHandler exposes the reconciler status and the flush-now operation.
// Status is informational only; mutations never wait for it.
type SyncHandler struct {
	rec *reconcile.Reconciler
}

func NewSyncHandler(rec *reconcile.Reconciler) *SyncHandler {
	return &SyncHandler{rec: rec}
}

func (h *SyncHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/sync/status", h.Status)
	router.POST("/sync/flush", h.Flush)
}

func (h *SyncHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      h.rec.Status(),
		"pendingPush": h.rec.HasPendingPush(),
	})
}

func (h *SyncHandler) Flush(c *gin.Context) {
	if err := h.rec.Flush(c.Request.Context()); err != nil {
		// A failed push never rolls anything back; report and carry on.
		c.JSON(http.StatusBadGateway, gin.H{"status": h.rec.Status(), "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": h.rec.Status()})
}
