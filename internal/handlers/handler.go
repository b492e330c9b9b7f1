package handlers

import (
	"context"

	"soltoken/internal/models"
)

// Registry is the read side of the token registry
type Registry interface {
	ListTokenConfigs(ctx context.Context) ([]models.TokenConfig, error)
	GetTokenConfigByMint(ctx context.Context, mint string) (*models.TokenConfig, error)
	ListOperations(ctx context.Context, mint string, limit int) ([]models.TokenOperation, error)
}

// BalanceService reads live balances without sending transactions
type BalanceService interface {
	Balance(ctx context.Context, mint, wallet string) (uint64, error)
}

// Handler serves the read API
type Handler struct {
	registry Registry
	balances BalanceService
}

func NewHandler(registry Registry, balances BalanceService) *Handler {
	return &Handler{registry: registry, balances: balances}
}
