package items

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stockledger/internal/ledger"
	custom_error "stockledger/pkg/errors"
	"stockledger/pkg/models"
	"stockledger/pkg/roles"
	"stockledger/pkg/security"
)

type ItemHandler struct {
	service *ItemService
}

func NewItemHandler(service *ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/items", h.ListItems)
	router.POST("/items", h.CreateItem)
	router.GET("/items/:id", h.GetItem)
	router.PATCH("/items/:id", h.UpdateItem)
	router.DELETE("/items/:id", h.DeleteItem)
}

func (h *ItemHandler) ListItems(c *gin.Context) {
	role, ok := security.RoleFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return
	}

	typeFilter := models.ItemType(c.Query("type"))
	if typeFilter != "" {
		if !typeFilter.IsValid() {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unknown item type"})
			return
		}
		if !security.RequireCategoryAccess(c, typeFilter) {
			return
		}
	}

	c.JSON(http.StatusOK, h.service.listItems(role, typeFilter))
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.service.getItem(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !security.RequireCategoryAccess(c, view.Type) {
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req createItemRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if !security.RequireCategoryAccess(c, models.ItemType(req.Type)) {
		return
	}

	view, err := h.service.createItem(req.toFields(), req.InitialQuantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	role, _, ok := requireItemAccess(c, h.service, id)
	if !ok {
		return
	}

	view, err := h.service.updateItem(role, req.Secret, id, req.toUpdate())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, ok := parseID(c, "id")
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

	if err := h.service.deleteItem(role, req.Secret, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// requireItemAccess resolves the item's category and checks the caller's role
// against it before any item-scoped mutation.
func requireItemAccess(c *gin.Context, service *ItemService, id uuid.UUID) (roles.Role, models.ItemType, bool) {
	role, ok := security.RoleFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return "", "", false
	}

	view, err := service.getItem(id)
	if err != nil {
		respondError(c, err)
		return "", "", false
	}
	if !security.RequireCategoryAccess(c, view.Type) {
		return "", "", false
	}

	return role, view.Type, true
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid id", "details": err.Error()})
		return uuid.Nil, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	var validationErr *custom_error.ValidationError
	var rangeErr *custom_error.RangeTooLargeError
	var authErr *custom_error.AuthorizationError

	switch {
	case errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "details": err.Error()})
	case errors.As(err, &rangeErr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "Serial range too large", "details": err.Error()})
	case errors.As(err, &authErr):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Secret mismatch", "details": err.Error()})
	case errors.Is(err, ledger.ErrItemNotFound), errors.Is(err, ledger.ErrTransactionNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Operation failed", "details": err.Error()})
	}
}
