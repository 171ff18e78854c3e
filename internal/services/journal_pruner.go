package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Cleaner is the slice of journal.Store the pruner needs.
type Cleaner interface {
	Cleanup(olderThan time.Time) (int, error)
}

// PrunerConfig controls how often and how far back the journal is trimmed.
type PrunerConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// JournalPruner drops journal entries past their retention on a cron schedule.
type JournalPruner struct {
	journal Cleaner
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     PrunerConfig
	now     func() time.Time
}

func NewJournalPruner(journal Cleaner, logger *zap.Logger, cfg PrunerConfig) (*JournalPruner, error) {
	if cfg.Interval < time.Second {
		cfg.Interval = time.Hour
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &JournalPruner{
		journal: journal,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
		now:     time.Now,
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	if _, err := p.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := p.Prune(ctx); err != nil {
			p.logger.Error("journal prune failed", zap.Error(err))
		}
	}); err != nil {
		return nil, err
	}

	return p, nil
}

// Start launches the cron scheduler.
func (p *JournalPruner) Start() {
	if p == nil || p.cron == nil {
		return
	}
	p.cron.Start()
	p.logger.Info("journal pruner started", zap.Duration("interval", p.cfg.Interval))
}

// Stop waits for a running prune to finish or ctx to expire.
func (p *JournalPruner) Stop(ctx context.Context) {
	if p == nil || p.cron == nil {
		return
	}
	stopCtx := p.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	p.logger.Info("journal pruner stopped")
}

// Prune removes entries older than the retention window synchronously.
func (p *JournalPruner) Prune(ctx context.Context) error {
	if p == nil || p.journal == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	removed, err := p.journal.Cleanup(p.now().Add(-p.cfg.Retention))
	if err != nil {
		return fmt.Errorf("cleanup journal: %w", err)
	}
	if removed > 0 {
		p.logger.Debug("journal pruned", zap.Int("removed", removed))
	}
	return nil
}
