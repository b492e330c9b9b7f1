package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"soltoken/internal/ledger"
	stsolana "soltoken/pkg/solana"
)

// GetBalance reads the live balance of ?wallet= (default the owner) for :mint.
// Registered tokens also get a readable balance.
func (h *Handler) GetBalance(c *gin.Context) {
	mint := c.Param("mint")
	wallet := c.Query("wallet")

	balance, err := h.balances.Balance(c.Request.Context(), mint, wallet)
	if errors.Is(err, ledger.ErrInvalidAddress) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.WithError(err).WithField("mint", mint).Error("Failed to read balance")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	resp := BalanceResp{Mint: mint, Wallet: wallet, Balance: balance}
	if token, err := h.registry.GetTokenConfigByMint(c.Request.Context(), mint); err == nil {
		decimals := token.Decimals
		resp.Decimals = &decimals
		resp.Symbol = token.Symbol
		resp.BalanceReadable = stsolana.FromBaseUnits(balance, uint8(decimals)).String()
	}
	c.JSON(http.StatusOK, resp)
}
