package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultOperationsLimit = 50

// ListTokenOperations returns the latest operations, optionally filtered by mint
func (h *Handler) ListTokenOperations(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultOperationsLimit)))
	if err != nil || limit < 1 {
		limit = defaultOperationsLimit
	}

	ops, err := h.registry.ListOperations(c.Request.Context(), c.Query("mint"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ops)
}
