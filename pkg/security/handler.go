package security

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockledger/internal/authority"
	"stockledger/pkg/roles"
)

// LoginHandler exchanges a role plus its static secret for a session token.
type LoginHandler struct {
	gate   *authority.Gate
	tokens *TokenService
}

func NewLoginHandler(gate *authority.Gate, tokens *TokenService) *LoginHandler {
	return &LoginHandler{gate: gate, tokens: tokens}
}

func (h *LoginHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/login", h.Login)
}

type loginRequest struct {
	Role   string `json:"role" binding:"required"`
	Secret string `json:"secret" binding:"required"`
}

func (h *LoginHandler) Login(c *gin.Context) {
	var req loginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	role := roles.Role(req.Role)
	if _, err := h.gate.Authorize(role, req.Secret, authority.ActionLogin); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid role or secret"})
		return
	}

	token, err := h.tokens.Generate(role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "role": role.String()})
}
