// Package store persists the token registry with gorm.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"soltoken/internal/models"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("record not found")

// MaxOperationsLimit caps ListOperations
const MaxOperationsLimit = 500

// Store is the gorm-backed token registry
type Store struct {
	db *gorm.DB
}

// New wraps an open gorm connection
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SaveOperation inserts one operation row
func (s *Store) SaveOperation(ctx context.Context, op *models.TokenOperation) error {
	if err := s.db.WithContext(ctx).Create(op).Error; err != nil {
		return fmt.Errorf("failed to save token operation: %w", err)
	}
	return nil
}

// UpsertTokenConfig inserts cfg or updates the row with the same mint
func (s *Store) UpsertTokenConfig(ctx context.Context, cfg *models.TokenConfig) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "mint"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"symbol", "name", "decimals", "total_supply", "token_account",
			"creator", "network", "simulated", "updated_at",
		}),
	}).Create(cfg).Error
	if err != nil {
		return fmt.Errorf("failed to upsert token config %s: %w", cfg.Mint, err)
	}
	return nil
}

// MarkMintDisabled flags a registered token as having no mint authority.
// Unknown mints are ignored.
func (s *Store) MarkMintDisabled(ctx context.Context, mint string) error {
	err := s.db.WithContext(ctx).Model(&models.TokenConfig{}).
		Where("mint = ?", mint).
		Update("mint_disabled", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark %s disabled: %w", mint, err)
	}
	return nil
}

// ListTokenConfigs returns every registered token, newest first
func (s *Store) ListTokenConfigs(ctx context.Context) ([]models.TokenConfig, error) {
	var tokens []models.TokenConfig
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

// GetTokenConfigByMint returns the token registered for mint
func (s *Store) GetTokenConfigByMint(ctx context.Context, mint string) (*models.TokenConfig, error) {
	var token models.TokenConfig
	err := s.db.WithContext(ctx).Where("mint = ?", mint).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// ListOperations returns the latest operations, optionally for one mint
func (s *Store) ListOperations(ctx context.Context, mint string, limit int) ([]models.TokenOperation, error) {
	if limit <= 0 || limit > MaxOperationsLimit {
		limit = MaxOperationsLimit
	}
	query := s.db.WithContext(ctx).Order("occurred_at desc").Limit(limit)
	if mint != "" {
		query = query.Where("mint = ?", mint)
	}

	var ops []models.TokenOperation
	if err := query.Find(&ops).Error; err != nil {
		return nil, err
	}
	return ops, nil
}

// SaveSnapshot inserts one balance snapshot
func (s *Store) SaveSnapshot(ctx context.Context, snap *models.TokenBalanceSnapshot) error {
	if err := s.db.WithContext(ctx).Create(snap).Error; err != nil {
		return fmt.Errorf("failed to save balance snapshot: %w", err)
	}
	return nil
}
