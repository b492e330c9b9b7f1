package ledger

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Fixtures returned in simulation mode
const (
	SimulatedMintAddress       = "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU"
	SimulatedTokenAccount      = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	SimulatedTransferSignature = "5KP3JKvZdYBzPaZnvQMVMSMoFgHRR5jZ2BEYtxnQGEjKRL7Y1xjFt6n6kgm3RHyTL8J9o5WhQ8fyEbTsn8jWn6rN"
	SimulatedDisableSignature  = "4HTGSrNWY5qFLGmSYYpCKTkdwEYFFFZ3gCNT7yXTQ2tQmEXB3yzNqArRfzZPq8UdLKd2rYm3MQPVZyTHSXyDzFt6"

	SimulatedOwnerBalance uint64 = 1_000_000_000
	SimulatedOtherBalance uint64 = SimulatedOwnerBalance / 10
)

// Simulated is a Client that never touches the network
type Simulated struct {
	owner solana.PublicKey
}

// NewSimulated creates a simulated ledger for the given owner wallet
func NewSimulated(owner solana.PublicKey) *Simulated {
	return &Simulated{owner: owner}
}

func (s *Simulated) Owner() solana.PublicKey { return s.owner }

func (s *Simulated) Simulated() bool { return true }

// CreateMint ignores its inputs and returns the fixed mint and token account
func (s *Simulated) CreateMint(ctx context.Context, decimals uint8, amount uint64) (*MintResult, error) {
	return &MintResult{
		Mint:         solana.MustPublicKeyFromBase58(SimulatedMintAddress),
		TokenAccount: solana.MustPublicKeyFromBase58(SimulatedTokenAccount),
	}, nil
}

func (s *Simulated) Transfer(ctx context.Context, mint, recipient solana.PublicKey, amount uint64) (string, error) {
	return SimulatedTransferSignature, nil
}

// Balance returns the full fixture for the owner and a tenth of it for anyone else
func (s *Simulated) Balance(ctx context.Context, mint, owner solana.PublicKey) (uint64, error) {
	if owner.Equals(s.owner) {
		return SimulatedOwnerBalance, nil
	}
	return SimulatedOtherBalance, nil
}

func (s *Simulated) ReadBalance(ctx context.Context, mint, owner solana.PublicKey) (uint64, error) {
	return s.Balance(ctx, mint, owner)
}

func (s *Simulated) DisableMinting(ctx context.Context, mint solana.PublicKey) (string, error) {
	return SimulatedDisableSignature, nil
}
