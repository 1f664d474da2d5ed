package serials

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockledger/internal/ledger"
	"stockledger/internal/serial"
	custom_error "stockledger/pkg/errors"
)

// SerialHandler exposes next-serial suggestion and range preview.
type SerialHandler struct {
	store *ledger.Store
}

func NewSerialHandler(store *ledger.Store) *SerialHandler {
	return &SerialHandler{store: store}
}

func (h *SerialHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/serials/next", h.SuggestNext)
	router.POST("/serials/expand", h.ExpandRange)
}

func (h *SerialHandler) SuggestNext(c *gin.Context) {
	registry := h.store.UsedSerials()

	used := make([]string, 0, len(registry))
	for s := range registry {
		used = append(used, s)
	}

	c.JSON(http.StatusOK, gin.H{"serialNumber": serial.SuggestNext(used)})
}

type expandRequest struct {
	Input string `json:"input" binding:"required"`
}

func (h *SerialHandler) ExpandRange(c *gin.Context) {
	var req expandRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	expanded, err := serial.ExpandRange(req.Input)
	if err != nil {
		var rangeErr *custom_error.RangeTooLargeError
		if errors.As(err, &rangeErr) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "Serial range too large", "details": err.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to expand range"})
		return
	}

	duplicates := serial.FindDuplicates(expanded, h.store.UsedSerials())

	c.JSON(http.StatusOK, gin.H{"serialNumbers": expanded, "duplicates": duplicates})
}
