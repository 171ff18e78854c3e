package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Counter reports the size of one collection.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// SizeReporter reports the number of journal entries.
type SizeReporter interface {
	Size() (int, error)
}

// Monitor periodically samples collection and journal sizes so the health
// endpoint never has to take the collection locks itself.
type Monitor struct {
	tasks   Counter
	users   Counter
	journal SizeReporter

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

// New builds a monitor. journal may be nil when journaling is disabled.
func New(tasks, users Counter, journal SizeReporter, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		tasks:    tasks,
		users:    users,
		journal:  journal,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	m.Refresh()
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

// Refresh takes a new sample synchronously.
func (m *Monitor) Refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	status := Status{
		Tasks:     m.count(ctx, "tasks", m.tasks),
		Users:     m.count(ctx, "users", m.users),
		LastCheck: time.Now().UTC(),
	}
	status.JournalEnabled, status.JournalEntries = m.checkJournal()

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()

	m.logger.Debug("collections sampled",
		zap.Int("tasks", status.Tasks),
		zap.Int("users", status.Users),
		zap.Int("journal_entries", status.JournalEntries))
}

func (m *Monitor) count(ctx context.Context, name string, c Counter) int {
	if c == nil {
		return 0
	}
	n, err := c.Count(ctx)
	if err != nil {
		m.logger.Warn("collection count failed", zap.String("collection", name), zap.Error(err))
		return 0
	}
	return n
}

func (m *Monitor) checkJournal() (bool, int) {
	if m.journal == nil {
		return false, 0
	}
	size, err := m.journal.Size()
	if err != nil {
		m.logger.Warn("journal size check failed", zap.Error(err))
		return false, 0
	}
	return true, size
}
