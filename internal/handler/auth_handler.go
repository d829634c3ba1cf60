package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mediaup/internal/service"
)

// AuthHandler handles token minting for upload clients.
type AuthHandler struct {
	tokens service.TokenService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(tokens service.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

type tokenRequest struct {
	ClientID string `json:"client_id" binding:"required"`
}

// Token handles POST /api/v1/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "client_id is required")
		return
	}

	token, err := h.tokens.Mint(req.ClientID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, token)
}
