package solana

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	log "github.com/sirupsen/logrus"
)

// GetSolBalance returns the lamports held by owner
func GetSolBalance(ctx context.Context, client *rpc.Client, owner solana.PublicKey) (uint64, error) {
	resp, err := client.GetBalance(ctx, owner, rpc.CommitmentConfirmed)
	if err != nil {
		log.Errorf("> Failed to get SOL balance of %s: %v", owner.String(), err)
		return 0, err
	}
	return resp.Value, nil
}

// GetTokenAccountBalance returns the raw amount held by a token account
func GetTokenAccountBalance(ctx context.Context, client *rpc.Client, account solana.PublicKey) (uint64, error) {
	balResp, err := client.GetTokenAccountBalance(ctx, account, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance of %s: %w", account, err)
	}
	if balResp == nil || balResp.Value == nil {
		return 0, fmt.Errorf("empty balance response for %s", account)
	}
	amount, err := strconv.ParseUint(balResp.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse balance %q: %w", balResp.Value.Amount, err)
	}
	return amount, nil
}

// GetOwnerTokenBalance reads the balance of owner's associated token account
// for mint. It never sends a transaction: a missing account reads as 0.
func GetOwnerTokenBalance(ctx context.Context, client *rpc.Client, mint, owner solana.PublicKey) (uint64, error) {
	ata, err := GetAssociatedTokenAddress(mint, owner)
	if err != nil {
		return 0, err
	}
	_, err = client.GetAccountInfoWithOpts(ctx, ata, &rpc.GetAccountInfoOpts{Commitment: rpc.CommitmentConfirmed})
	if errors.Is(err, rpc.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get token account %s: %w", ata, err)
	}
	return GetTokenAccountBalance(ctx, client, ata)
}

// RequestAirdrop asks the cluster faucet for lamports and waits for confirmation
func RequestAirdrop(ctx context.Context, client *rpc.Client, owner solana.PublicKey, lamports uint64, opts ConfirmOptions) (solana.Signature, error) {
	sig, err := client.RequestAirdrop(ctx, owner, lamports, opts.Commitment)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("airdrop request failed: %w", err)
	}
	if err := WaitForConfirmation(ctx, client, sig, opts); err != nil {
		return sig, err
	}
	return sig, nil
}
