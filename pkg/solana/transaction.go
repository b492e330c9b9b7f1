package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/rpc"
	log "github.com/sirupsen/logrus"
)

// ConfirmOptions controls how long and how hard SendAndConfirm waits
type ConfirmOptions struct {
	Commitment   rpc.CommitmentType
	Timeout      time.Duration
	PollInterval time.Duration
	// WSEndpoint enables signatureSubscribe; polling is used when empty or
	// when the subscription fails
	WSEndpoint string
}

// DefaultConfirmOptions waits for "confirmed" like the web3 connection default
func DefaultConfirmOptions() ConfirmOptions {
	return ConfirmOptions{
		Commitment:   rpc.CommitmentConfirmed,
		Timeout:      90 * time.Second,
		PollInterval: 2 * time.Second,
	}
}

// ErrConfirmTimeout is returned when a signature is not confirmed in time
var ErrConfirmTimeout = errors.New("transaction not confirmed before timeout")

// TransactionError reports an on-chain failure of a sent transaction
type TransactionError struct {
	Signature solana.Signature
	Err       interface{}
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %s failed: %v", e.Signature, e.Err)
}

func commitmentRank(status string) int {
	switch status {
	case string(rpc.ConfirmationStatusProcessed):
		return 1
	case string(rpc.ConfirmationStatusConfirmed):
		return 2
	case string(rpc.ConfirmationStatusFinalized):
		return 3
	}
	return 0
}

// signatureReached reports whether sig has reached the commitment ranked
// want. A failed transaction is returned as a *TransactionError.
func signatureReached(ctx context.Context, client *rpc.Client, sig solana.Signature, want int) (bool, error) {
	status, err := client.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return false, fmt.Errorf("failed to get signature status: %w", err)
	}
	if len(status.Value) == 0 || status.Value[0] == nil {
		return false, nil
	}
	st := status.Value[0]
	if st.Err != nil {
		return false, &TransactionError{Signature: sig, Err: st.Err}
	}
	return commitmentRank(string(st.ConfirmationStatus)) >= want, nil
}

// WaitForConfirmation waits until sig reaches the requested commitment, the
// transaction fails, or the timeout expires. With a websocket endpoint it
// subscribes first and checks the status once the subscription is live, so a
// transaction that landed before the subscription is not missed. Polling takes
// over when the subscription fails or goes quiet until the deadline.
func WaitForConfirmation(ctx context.Context, client *rpc.Client, sig solana.Signature, opts ConfirmOptions) error {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 2 * time.Second
	}
	var deadline time.Time
	if opts.Timeout > 0 {
		deadline = time.Now().Add(opts.Timeout)
	}
	want := commitmentRank(string(opts.Commitment))

	if opts.WSEndpoint != "" {
		wsCtx, cancel := ctx, context.CancelFunc(func() {})
		if !deadline.IsZero() {
			wsCtx, cancel = context.WithDeadline(ctx, deadline)
		}
		err := WatchSignature(wsCtx, opts.WSEndpoint, sig, opts.Commitment, func(ctx context.Context) (bool, error) {
			reached, err := signatureReached(ctx, client, sig, want)
			var txErr *TransactionError
			if err != nil && !errors.As(err, &txErr) {
				log.WithError(err).Debug("Signature status check failed, waiting for notification")
				return false, nil
			}
			return reached, err
		})
		cancel()

		var txErr *TransactionError
		switch {
		case err == nil, errors.As(err, &txErr):
			return err
		case ctx.Err() != nil:
			return ctx.Err()
		}
		log.WithError(err).Warn("Websocket confirmation did not complete, polling signature status")
	}

	return pollSignature(ctx, client, sig, want, opts.PollInterval, deadline)
}

// pollSignature checks the status at least once, then every interval until
// deadline. A zero deadline polls until ctx is done.
func pollSignature(ctx context.Context, client *rpc.Client, sig solana.Signature, want int, interval time.Duration, deadline time.Time) error {
	for {
		reached, err := signatureReached(ctx, client, sig, want)
		var txErr *TransactionError
		switch {
		case errors.As(err, &txErr):
			return err
		case err != nil && ctx.Err() == nil:
			return err
		case reached:
			return nil
		}

		wait := interval
		if !deadline.IsZero() {
			left := time.Until(deadline)
			if left <= 0 {
				return fmt.Errorf("%s: %w", sig, ErrConfirmTimeout)
			}
			if left < wait {
				wait = left
			}
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// SendAndConfirm signs the instructions with every signer, sends the transaction
// and waits for confirmation. The first signer pays the fee.
func SendAndConfirm(ctx context.Context, client *rpc.Client, instructions []solana.Instruction, signers []solana.PrivateKey, opts ConfirmOptions) (solana.Signature, error) {
	if len(signers) == 0 {
		return solana.Signature{}, errors.New("no fee payer given")
	}
	payer := signers[0].PublicKey()

	bh, err := client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(instructions, bh.Value.Blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to build transaction: %w", err)
	}

	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for i := range signers {
			if signers[i].PublicKey().Equals(key) {
				return &signers[i]
			}
		}
		return nil
	}); err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	sig, err := client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: opts.Commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	log.Debugf("Transaction sent: %s", sig)

	if err := WaitForConfirmation(ctx, client, sig, opts); err != nil {
		return sig, err
	}
	return sig, nil
}

// GetAssociatedTokenAddress derives the associated token account of owner for mint
func GetAssociatedTokenAddress(mint, owner solana.PublicKey) (solana.PublicKey, error) {
	address, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to find associated token address: %w", err)
	}
	return address, nil
}

// GetOrCreateAssociatedTokenAccount returns the associated token account of owner
// for mint, creating it with payer as funder when it does not exist yet.
func GetOrCreateAssociatedTokenAccount(ctx context.Context, client *rpc.Client, payer solana.PrivateKey, mint, owner solana.PublicKey, opts ConfirmOptions) (solana.PublicKey, error) {
	ata, err := GetAssociatedTokenAddress(mint, owner)
	if err != nil {
		return solana.PublicKey{}, err
	}

	info, err := client.GetAccountInfoWithOpts(ctx, ata, &rpc.GetAccountInfoOpts{Commitment: opts.Commitment})
	if err == nil && info != nil && info.Value != nil {
		return ata, nil
	}
	if err != nil && !errors.Is(err, rpc.ErrNotFound) {
		return solana.PublicKey{}, fmt.Errorf("failed to get token account %s: %w", ata, err)
	}

	ix := associatedtokenaccount.NewCreateInstruction(payer.PublicKey(), owner, mint).Build()
	if _, err := SendAndConfirm(ctx, client, []solana.Instruction{ix}, []solana.PrivateKey{payer}, opts); err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to create token account %s: %w", ata, err)
	}
	log.Infof("Associated token account created: %s", ata)
	return ata, nil
}
