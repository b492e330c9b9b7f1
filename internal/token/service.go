// Package token implements the create/mint, transfer, balance and
// disable-minting operations on top of a ledger.Client.
package token

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"soltoken/internal/events"
	"soltoken/internal/ledger"
)

// MintRequest describes a new token and its initial supply
type MintRequest struct {
	Name     string
	Symbol   string
	Decimals uint8
	// Amount is in display units; Decimals scales it into base units
	Amount uint64
}

// Service is the token operations façade
type Service struct {
	ledger  ledger.Client
	log     logrus.FieldLogger
	events  events.Recorder
	network string
	now     func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithRecorder sends an event to r after every successful write operation
func WithRecorder(r events.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.events = r
		}
	}
}

// WithNetwork labels recorded events with the cluster name
func WithNetwork(network string) Option {
	return func(s *Service) { s.network = network }
}

// NewService creates the façade around a ledger client
func NewService(client ledger.Client, logger logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		ledger: client,
		log:    logger,
		events: events.Nop{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Owner returns the wallet that signs every operation
func (s *Service) Owner() solana.PublicKey {
	return s.ledger.Owner()
}

// Simulated reports whether the underlying ledger fabricates results
func (s *Service) Simulated() bool {
	return s.ledger.Simulated()
}

func (s *Service) announceSimulation(what string) {
	if s.ledger.Simulated() {
		s.log.Infof("Running in SIMULATION mode - %s", what)
	}
}

// CreateAndMint creates a new mint and mints the requested supply to the owner
func (s *Service) CreateAndMint(ctx context.Context, req MintRequest) (*ledger.MintResult, error) {
	s.log.Info("Creating new token mint...")
	s.announceSimulation("no transactions will be sent")

	res, err := s.ledger.CreateMint(ctx, req.Decimals, req.Amount)
	if err != nil {
		return nil, err
	}

	if s.ledger.Simulated() {
		s.log.Infof("Simulated token mint created: %s", res.Mint)
		s.log.Infof("Simulated token account created: %s", res.TokenAccount)
		s.log.Infof("Simulating minting %d tokens...", req.Amount)
		s.log.Info("Tokens minted successfully (simulation)")
	} else {
		s.log.Info("Tokens minted successfully")
	}

	s.record(ctx, events.Event{
		Operation:    events.OperationMint,
		Mint:         res.Mint.String(),
		TokenAccount: res.TokenAccount.String(),
		To:           s.Owner().String(),
		Amount:       req.Amount,
		Decimals:     req.Decimals,
		Symbol:       req.Symbol,
		Name:         req.Name,
	})
	return res, nil
}

// Transfer sends amount base units of mint from the owner to recipient.
// It does not check the balance first.
func (s *Service) Transfer(ctx context.Context, mint, recipient string, amount uint64) (string, error) {
	mintKey, err := ledger.ParseAddress(mint)
	if err != nil {
		return "", err
	}
	recipientKey, err := ledger.ParseAddress(recipient)
	if err != nil {
		return "", err
	}

	s.announceSimulation("no transactions will be sent")
	if s.ledger.Simulated() {
		s.log.Infof("Simulating transfer of %d tokens from %s to %s", amount, s.Owner(), recipientKey)
	}

	sig, err := s.ledger.Transfer(ctx, mintKey, recipientKey, amount)
	if err != nil {
		return "", err
	}
	if s.ledger.Simulated() {
		s.log.Info("Transfer successful (simulation)")
	} else {
		s.log.Infof("Transfer successful: %s", sig)
	}

	s.record(ctx, events.Event{
		Operation: events.OperationTransfer,
		Mint:      mintKey.String(),
		From:      s.Owner().String(),
		To:        recipientKey.String(),
		Amount:    amount,
		Signature: sig,
	})
	return sig, nil
}

func (s *Service) resolveBalance(mint, wallet string) (solana.PublicKey, solana.PublicKey, error) {
	mintKey, err := ledger.ParseAddress(mint)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, err
	}
	owner := s.Owner()
	if wallet != "" {
		if owner, err = ledger.ParseAddress(wallet); err != nil {
			return solana.PublicKey{}, solana.PublicKey{}, err
		}
	}
	return mintKey, owner, nil
}

// Balance returns the raw balance of wallet for mint without sending any
// transaction. An empty wallet means the owner.
func (s *Service) Balance(ctx context.Context, mint, wallet string) (uint64, error) {
	mintKey, owner, err := s.resolveBalance(mint, wallet)
	if err != nil {
		return 0, err
	}
	s.announceSimulation("returning simulated balance")
	return s.ledger.ReadBalance(ctx, mintKey, owner)
}

// CheckBalance returns the raw balance of wallet for mint, creating its
// associated token account when missing. Any failure is logged and reads as 0.
func (s *Service) CheckBalance(ctx context.Context, mint, wallet string) uint64 {
	balance, err := s.ensureBalance(ctx, mint, wallet)
	if err != nil {
		s.log.WithError(err).Error("Error checking balance")
		return 0
	}
	return balance
}

func (s *Service) ensureBalance(ctx context.Context, mint, wallet string) (uint64, error) {
	mintKey, owner, err := s.resolveBalance(mint, wallet)
	if err != nil {
		return 0, err
	}
	s.announceSimulation("returning simulated balance")
	return s.ledger.Balance(ctx, mintKey, owner)
}

// DisableMinting permanently removes the mint authority of mint
func (s *Service) DisableMinting(ctx context.Context, mint string) (string, error) {
	mintKey, err := ledger.ParseAddress(mint)
	if err != nil {
		return "", err
	}

	s.announceSimulation("no transactions will be sent")
	if s.ledger.Simulated() {
		s.log.Infof("Simulating disabling minting for token: %s", mintKey)
	}

	sig, err := s.ledger.DisableMinting(ctx, mintKey)
	if err != nil {
		return "", err
	}
	if s.ledger.Simulated() {
		s.log.Info("Minting disabled successfully (simulation)")
	} else {
		s.log.Infof("Minting disabled: %s", sig)
	}

	s.record(ctx, events.Event{
		Operation: events.OperationDisableMinting,
		Mint:      mintKey.String(),
		From:      s.Owner().String(),
		Signature: sig,
	})
	return sig, nil
}

// record never fails the operation that produced the event
func (s *Service) record(ctx context.Context, ev events.Event) {
	ev.Network = s.network
	ev.Simulated = s.ledger.Simulated()
	ev.OccurredAt = s.now().UTC()
	if err := s.events.Record(ctx, ev); err != nil {
		s.log.WithError(err).WithField("operation", ev.Operation).Warn("Failed to record token event")
	}
}
