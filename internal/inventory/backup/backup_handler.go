package backup

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockledger/internal/authority"
	"stockledger/internal/export"
	"stockledger/internal/ledger"
	"stockledger/internal/reconcile"
	custom_error "stockledger/pkg/errors"
	"stockledger/pkg/models"
	"stockledger/pkg/security"
)

// BackupHandler serves the JSON backup, the CSV report and the restore
// operation that replaces the whole collection.
type BackupHandler struct {
	store *ledger.Store
	gate  *authority.Gate
	rec   *reconcile.Reconciler
}

func NewBackupHandler(store *ledger.Store, gate *authority.Gate, rec *reconcile.Reconciler) *BackupHandler {
	return &BackupHandler{store: store, gate: gate, rec: rec}
}

func (h *BackupHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/backup", h.ExportBackup)
	router.GET("/report.csv", h.ExportReport)
	router.POST("/backup/restore", h.RestoreBackup)
}

func (h *BackupHandler) ExportBackup(c *gin.Context) {
	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", `attachment; filename="inventory-backup.json"`)

	if err := export.WriteBackup(c.Writer, h.store.Snapshot()); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to export backup"})
	}
}

func (h *BackupHandler) ExportReport(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="inventory-report.csv"`)

	if err := export.WriteCSVReport(c.Writer, h.store.Items()); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to export report"})
	}
}

type restoreRequest struct {
	Secret string `json:"secret" binding:"required"`
	// Confirm is the caller-level confirmation: the engine itself replaces
	// the collection unconditionally once invoked.
	Confirm  bool            `json:"confirm"`
	Snapshot models.Snapshot `json:"snapshot"`
}

func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	var req restoreRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if !req.Confirm {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Restore requires explicit confirmation"})
		return
	}

	role, ok := security.RoleFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return
	}

	pending := h.gate.Request(role, authority.ActionReplaceCollection, func() error {
		h.store.Replace(req.Snapshot.Items)
		return nil
	})
	if err := pending.Confirm(req.Secret); err != nil {
		var authErr *custom_error.AuthorizationError
		if errors.As(err, &authErr) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Secret mismatch", "details": err.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore backup", "details": err.Error()})
		return
	}

	if h.rec != nil {
		h.rec.CollectionChanged(h.store.Snapshot())
	}

	c.JSON(http.StatusOK, gin.H{"items": len(req.Snapshot.Items)})
}
