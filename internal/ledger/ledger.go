// Package ledger abstracts the token operations that reach the Solana ledger.
//
// Two implementations exist: Simulated returns fixed fixtures and never touches
// the network, RPC builds and sends real transactions through solana-go.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// ErrInvalidAddress is returned when a base58 address cannot be decoded
var ErrInvalidAddress = errors.New("invalid address")

// MintResult holds the accounts produced by CreateMint
type MintResult struct {
	Mint         solana.PublicKey
	TokenAccount solana.PublicKey
}

// Client is the ledger capability used by the token service
type Client interface {
	// Owner is the wallet that signs and pays for every operation
	Owner() solana.PublicKey
	// Simulated reports whether results are fabricated
	Simulated() bool

	// CreateMint creates a mint owned by Owner and mints amount*10^decimals
	// base units into the owner's associated token account.
	CreateMint(ctx context.Context, decimals uint8, amount uint64) (*MintResult, error)
	// Transfer moves amount base units from Owner to recipient
	Transfer(ctx context.Context, mint, recipient solana.PublicKey, amount uint64) (string, error)
	// Balance returns the raw token balance of owner for mint, creating the
	// owner's associated token account first when it is missing
	Balance(ctx context.Context, mint, owner solana.PublicKey) (uint64, error)
	// ReadBalance is Balance without side effects: a missing account reads as 0
	ReadBalance(ctx context.Context, mint, owner solana.PublicKey) (uint64, error)
	// DisableMinting permanently revokes the mint authority
	DisableMinting(ctx context.Context, mint solana.PublicKey) (string, error)
}

// ParseAddress decodes a base58 public key
func ParseAddress(address string) (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBase58(strings.TrimSpace(address))
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w %q: %v", ErrInvalidAddress, address, err)
	}
	return pk, nil
}
