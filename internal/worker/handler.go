// Package worker turns token_operations messages into registry rows.
package worker

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"soltoken/internal/events"
	"soltoken/internal/models"
)

// Store is the part of the registry the handler writes to
type Store interface {
	SaveOperation(ctx context.Context, op *models.TokenOperation) error
	UpsertTokenConfig(ctx context.Context, cfg *models.TokenConfig) error
	MarkMintDisabled(ctx context.Context, mint string) error
}

// Handler consumes token operation events
type Handler struct {
	store Store
	log   logrus.FieldLogger
}

func NewHandler(store Store, logger logrus.FieldLogger) *Handler {
	return &Handler{store: store, log: logger}
}

// Handle stores one message. Malformed messages are logged and dropped so
// they are not requeued forever; store failures are returned.
func (h *Handler) Handle(ctx context.Context, body []byte) error {
	ev, err := events.Decode(body)
	if err != nil {
		h.log.WithError(err).Warnf("Dropping malformed token event: %s", string(body))
		return nil
	}

	entry := h.log.WithFields(logrus.Fields{
		"operation": ev.Operation,
		"mint":      ev.Mint,
		"simulated": ev.Simulated,
	})

	if err := h.store.SaveOperation(ctx, operationRow(ev)); err != nil {
		return err
	}

	switch ev.Operation {
	case events.OperationMint:
		cfg := &models.TokenConfig{
			Mint:         ev.Mint,
			Symbol:       ev.Symbol,
			Name:         ev.Name,
			Decimals:     int(ev.Decimals),
			TotalSupply:  ev.Amount,
			TokenAccount: ev.TokenAccount,
			Creator:      ev.To,
			Network:      ev.Network,
			Simulated:    ev.Simulated,
		}
		if err := h.store.UpsertTokenConfig(ctx, cfg); err != nil {
			return fmt.Errorf("mint event: %w", err)
		}
	case events.OperationDisableMinting:
		if err := h.store.MarkMintDisabled(ctx, ev.Mint); err != nil {
			return fmt.Errorf("disable event: %w", err)
		}
	}

	entry.Info("Token event stored")
	return nil
}

func operationRow(ev events.Event) *models.TokenOperation {
	return &models.TokenOperation{
		Operation:  string(ev.Operation),
		Mint:       ev.Mint,
		FromAddr:   ev.From,
		ToAddr:     ev.To,
		Amount:     ev.Amount,
		Signature:  ev.Signature,
		Network:    ev.Network,
		Simulated:  ev.Simulated,
		OccurredAt: ev.OccurredAt,
	}
}
