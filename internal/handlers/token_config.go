package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"soltoken/internal/store"
)

// ListTokenConfigs returns every registered token
func (h *Handler) ListTokenConfigs(c *gin.Context) {
	tokens, err := h.registry.ListTokenConfigs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// GetTokenConfigByMint returns a single token by mint address
func (h *Handler) GetTokenConfigByMint(c *gin.Context) {
	token, err := h.registry.GetTokenConfigByMint(c.Request.Context(), c.Param("mint"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Token config not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, token)
}
