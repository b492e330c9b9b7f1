// Package schedule runs the periodic balance snapshot of registered tokens.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"soltoken/internal/models"
)

// DefaultSpec is used when SNAPSHOT_CRON is empty
const DefaultSpec = "@every 10m"

// Registry lists tokens and stores snapshots
type Registry interface {
	ListTokenConfigs(ctx context.Context) ([]models.TokenConfig, error)
	SaveSnapshot(ctx context.Context, snap *models.TokenBalanceSnapshot) error
}

// BalanceReader is the part of the token service the job needs. Balance
// must not send transactions.
type BalanceReader interface {
	Owner() solana.PublicKey
	Balance(ctx context.Context, mint, wallet string) (uint64, error)
}

// SnapshotJob records the owner balance of every registered token
type SnapshotJob struct {
	registry Registry
	balances BalanceReader
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewSnapshotJob(registry Registry, balances BalanceReader, logger logrus.FieldLogger) *SnapshotJob {
	return &SnapshotJob{
		registry: registry,
		balances: balances,
		log:      logger,
		now:      time.Now,
	}
}

// Run takes one snapshot per registered token and returns how many were
// saved. A failing token is logged and skipped.
func (j *SnapshotJob) Run(ctx context.Context) (int, error) {
	tokens, err := j.registry.ListTokenConfigs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list tokens: %w", err)
	}

	owner := j.balances.Owner().String()
	takenAt := j.now().UTC()
	saved := 0
	for _, token := range tokens {
		if ctx.Err() != nil {
			return saved, ctx.Err()
		}

		balance, err := j.balances.Balance(ctx, token.Mint, owner)
		if err != nil {
			j.log.WithError(err).WithField("mint", token.Mint).Warn("> Failed to read balance, skipping")
			continue
		}

		snap := &models.TokenBalanceSnapshot{
			Mint:     token.Mint,
			Owner:    owner,
			Balance:  balance,
			Decimals: token.Decimals,
			TakenAt:  takenAt,
		}
		if err := j.registry.SaveSnapshot(ctx, snap); err != nil {
			j.log.WithError(err).WithField("mint", token.Mint).Error("> Failed to save snapshot")
			continue
		}
		saved++
	}

	j.log.Infof("> Balance snapshot done: %d/%d", saved, len(tokens))
	return saved, nil
}

// Start schedules the job on spec and starts the cron runner. The caller
// stops it with Stop.
func Start(ctx context.Context, spec string, job *SnapshotJob) (*cron.Cron, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := job.Run(ctx); err != nil {
			job.log.WithError(err).Error("> Balance snapshot failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot schedule %q: %w", spec, err)
	}
	c.Start()
	job.log.Infof("> Snapshot schedule started: %s", spec)
	return c, nil
}
