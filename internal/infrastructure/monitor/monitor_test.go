package monitor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fastygo/boilerplate/internal/infrastructure/monitor"
)

type fixedCounter struct {
	n   int
	err error
}

func (c fixedCounter) Count(context.Context) (int, error) { return c.n, c.err }

type fixedSize int

func (s fixedSize) Size() (int, error) { return int(s), nil }

func TestRefreshSamplesCollections(t *testing.T) {
	m := monitor.New(fixedCounter{n: 3}, fixedCounter{n: 2}, fixedSize(9), time.Minute, nil)
	m.Refresh()

	status := m.GetStatus()
	assert.Equal(t, 3, status.Tasks)
	assert.Equal(t, 2, status.Users)
	assert.True(t, status.JournalEnabled)
	assert.Equal(t, 9, status.JournalEntries)
	assert.False(t, status.LastCheck.IsZero())
}

func TestRefreshToleratesFailures(t *testing.T) {
	m := monitor.New(fixedCounter{err: errors.New("boom")}, nil, nil, time.Minute, nil)
	m.Refresh()

	status := m.GetStatus()
	assert.Zero(t, status.Tasks)
	assert.Zero(t, status.Users)
	assert.False(t, status.JournalEnabled)
}

func TestStartStop(t *testing.T) {
	m := monitor.New(fixedCounter{n: 1}, fixedCounter{n: 1}, nil, 5*time.Millisecond, nil)
	m.Start()
	assert.Equal(t, 1, m.GetStatus().Tasks)
	m.Stop()
	m.Stop()
}
