package items

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TransactionHandler exposes the movement operations scoped to one item.
type TransactionHandler struct {
	service *ItemService
}

func NewTransactionHandler(service *ItemService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

func (h *TransactionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/items/:id/transactions", h.AddMovement)
	router.PATCH("/items/:id/transactions/:txId", h.UpdateTransaction)
	router.DELETE("/items/:id/transactions/:txId", h.DeleteTransaction)
}

func (h *TransactionHandler) AddMovement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req movementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if _, _, ok := requireItemAccess(c, h.service, id); !ok {
		return
	}

	txs, err := h.service.addMovement(id, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transactions": txs})
}

func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	txID, ok := parseID(c, "txId")
	if !ok {
		return
	}

	var req updateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	role, _, ok := requireItemAccess(c, h.service, id)
	if !ok {
		return
	}

	tx, err := h.service.updateTransaction(role, req.Secret, id, txID, req.toUpdate())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	txID, ok := parseID(c, "txId")
	if !ok {
		return
	}

	var req secretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	role, _, ok := requireItemAccess(c, h.service, id)
	if !ok {
		return
	}

	if err := h.service.deleteTransaction(role, req.Secret, id, txID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
