package ledger

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"

	stsolana "soltoken/pkg/solana"
)

// mintAccountSize is the length of an SPL token mint account
const mintAccountSize = 82

// RPC is a Client that sends real transactions to a cluster
type RPC struct {
	client  *rpc.Client
	payer   solana.PrivateKey
	confirm stsolana.ConfirmOptions
	log     logrus.FieldLogger
}

// NewRPC creates a ledger client that signs with payer
func NewRPC(client *rpc.Client, payer solana.PrivateKey, confirm stsolana.ConfirmOptions, logger logrus.FieldLogger) *RPC {
	return &RPC{
		client:  client,
		payer:   payer,
		confirm: confirm,
		log:     logger,
	}
}

func (r *RPC) Owner() solana.PublicKey { return r.payer.PublicKey() }

func (r *RPC) Simulated() bool { return false }

// CreateMint runs three transactions in order: mint creation, associated
// account creation, and the initial MintTo.
func (r *RPC) CreateMint(ctx context.Context, decimals uint8, amount uint64) (*MintResult, error) {
	baseUnits, err := stsolana.ToBaseUnits(amount, decimals)
	if err != nil {
		return nil, err
	}

	mintKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate mint keypair: %w", err)
	}
	mint := mintKey.PublicKey()
	owner := r.Owner()

	rent, err := r.client.GetMinimumBalanceForRentExemption(ctx, mintAccountSize, rpc.CommitmentFinalized)
	if err != nil {
		return nil, fmt.Errorf("failed to get mint rent: %w", err)
	}

	createIx := system.NewCreateAccountInstruction(rent, mintAccountSize, solana.TokenProgramID, owner, mint).Build()
	initIx := token.NewInitializeMintInstructionBuilder().
		SetDecimals(decimals).
		SetMintAuthority(owner).
		SetFreezeAuthority(owner).
		SetMintAccount(mint).
		SetSysVarRentPubkeyAccount(solana.SysVarRentPubkey).
		Build()

	sig, err := stsolana.SendAndConfirm(ctx, r.client, []solana.Instruction{createIx, initIx}, []solana.PrivateKey{r.payer, mintKey}, r.confirm)
	if err != nil {
		return nil, fmt.Errorf("failed to create mint: %w", err)
	}
	r.log.WithField("signature", sig.String()).Infof("Token mint created: %s", mint)

	r.log.Info("Creating token account...")
	ata, err := stsolana.GetOrCreateAssociatedTokenAccount(ctx, r.client, r.payer, mint, owner, r.confirm)
	if err != nil {
		return nil, err
	}
	r.log.Infof("Token account created: %s", ata)

	r.log.Infof("Minting %d tokens...", amount)
	mintIx := token.NewMintToInstruction(baseUnits, mint, ata, owner, nil).Build()
	if _, err := stsolana.SendAndConfirm(ctx, r.client, []solana.Instruction{mintIx}, []solana.PrivateKey{r.payer}, r.confirm); err != nil {
		return nil, fmt.Errorf("failed to mint tokens: %w", err)
	}

	return &MintResult{Mint: mint, TokenAccount: ata}, nil
}

func (r *RPC) Transfer(ctx context.Context, mint, recipient solana.PublicKey, amount uint64) (string, error) {
	owner := r.Owner()

	source, err := stsolana.GetOrCreateAssociatedTokenAccount(ctx, r.client, r.payer, mint, owner, r.confirm)
	if err != nil {
		return "", err
	}
	destination, err := stsolana.GetOrCreateAssociatedTokenAccount(ctx, r.client, r.payer, mint, recipient, r.confirm)
	if err != nil {
		return "", err
	}

	ix := token.NewTransferInstruction(amount, source, destination, owner, nil).Build()
	sig, err := stsolana.SendAndConfirm(ctx, r.client, []solana.Instruction{ix}, []solana.PrivateKey{r.payer}, r.confirm)
	if err != nil {
		return "", fmt.Errorf("failed to transfer tokens: %w", err)
	}
	return sig.String(), nil
}

// Balance creates owner's associated account if needed, then reads its amount
func (r *RPC) Balance(ctx context.Context, mint, owner solana.PublicKey) (uint64, error) {
	ata, err := stsolana.GetOrCreateAssociatedTokenAccount(ctx, r.client, r.payer, mint, owner, r.confirm)
	if err != nil {
		return 0, err
	}
	return stsolana.GetTokenAccountBalance(ctx, r.client, ata)
}

// ReadBalance derives owner's associated account and reads its amount. It
// sends nothing, so it is safe to call for arbitrary owners.
func (r *RPC) ReadBalance(ctx context.Context, mint, owner solana.PublicKey) (uint64, error) {
	return stsolana.GetOwnerTokenBalance(ctx, r.client, mint, owner)
}

// DisableMinting sets the mint authority to None. There is no way back.
func (r *RPC) DisableMinting(ctx context.Context, mint solana.PublicKey) (string, error) {
	ix := token.NewSetAuthorityInstructionBuilder().
		SetAuthorityType(token.AuthorityMintTokens).
		SetSubjectAccount(mint).
		SetAuthorityAccount(r.Owner()).
		Build()

	sig, err := stsolana.SendAndConfirm(ctx, r.client, []solana.Instruction{ix}, []solana.PrivateKey{r.payer}, r.confirm)
	if err != nil {
		return "", fmt.Errorf("failed to revoke mint authority: %w", err)
	}
	return sig.String(), nil
}
