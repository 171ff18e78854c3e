package app

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/boilerplate/internal/config"
	"github.com/fastygo/boilerplate/internal/infrastructure/journal"
	"github.com/fastygo/boilerplate/internal/services/lifecycle"
	"github.com/fastygo/boilerplate/usecase"
)

func journalConfig(t *testing.T) *config.Config {
	return &config.Config{
		Version: "test",
		Store:   config.StoreConfig{IDStrategy: "uuid", Seed: true},
		Journal: config.JournalConfig{
			Enabled:       true,
			Path:          filepath.Join(t.TempDir(), "journal.db"),
			Retention:     time.Hour,
			PruneInterval: time.Hour,
		},
		Monitor: config.MonitorConfig{Interval: time.Hour},
		Context: config.ContextConfig{RequestTimeout: time.Second},
	}
}

func serve(a *App, method, uri, body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	a.Handler(ctx)
	return ctx
}

func TestMutationsAreJournaled(t *testing.T) {
	a, err := New(context.Background(), journalConfig(t), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.journal.Close() })

	res := serve(a, http.MethodPost, "/api/tasks", `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, res.Response.StatusCode())
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(res.Response.Body(), &created))
	assert.Len(t, created.Data.ID, 36)

	res = serve(a, http.MethodPost, "/api/users", `{"name":"Ann","email":"ann@example.com"}`)
	require.Equal(t, http.StatusCreated, res.Response.StatusCode())

	res = serve(a, http.MethodDelete, "/api/tasks/"+created.Data.ID, "")
	require.Equal(t, http.StatusNoContent, res.Response.StatusCode())

	// failed mutations leave no trace
	res = serve(a, http.MethodDelete, "/api/tasks/"+created.Data.ID, "")
	require.Equal(t, http.StatusNotFound, res.Response.StatusCode())

	entries, err := a.journal.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, journal.EntityTask, entries[0].Entity)
	assert.Equal(t, usecase.OperationDelete, entries[0].Operation)
	assert.Equal(t, created.Data.ID, entries[0].RecordID)
	assert.Empty(t, entries[0].Data)

	assert.Equal(t, journal.EntityUser, entries[1].Entity)
	assert.Equal(t, usecase.OperationCreate, entries[1].Operation)
	assert.Contains(t, string(entries[1].Data), "ann@example.com")

	assert.Equal(t, journal.EntityTask, entries[2].Entity)
	assert.Equal(t, usecase.OperationCreate, entries[2].Operation)

	a.Monitor.Refresh()
	res = serve(a, http.MethodGet, "/health", "")
	var health struct {
		Collections map[string]int `json:"collections"`
		Journal     struct {
			Enabled bool `json:"enabled"`
			Entries int  `json:"entries"`
		} `json:"journal"`
	}
	require.NoError(t, json.Unmarshal(res.Response.Body(), &health))
	assert.Equal(t, map[string]int{"tasks": 2, "users": 3}, health.Collections)
	assert.True(t, health.Journal.Enabled)
	assert.Equal(t, 3, health.Journal.Entries)
}

func TestRegisterStopsEverything(t *testing.T) {
	a, err := New(context.Background(), journalConfig(t), nil)
	require.NoError(t, err)

	manager := lifecycle.New(time.Second, nil)
	a.Register(manager)
	a.Start()

	require.NoError(t, manager.Shutdown(context.Background()))

	_, err = a.journal.Size()
	assert.Error(t, err)
	n, err := a.Store.Tasks().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestJournalDisabled(t *testing.T) {
	cfg := journalConfig(t)
	cfg.Journal.Enabled = false

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, a.journal)
	assert.Nil(t, a.pruner)

	manager := lifecycle.New(time.Second, nil)
	a.Register(manager)
	a.Start()
	require.NoError(t, manager.Shutdown(context.Background()))
}

func TestNewRejectsUnknownIDStrategy(t *testing.T) {
	cfg := journalConfig(t)
	cfg.Store.IDStrategy = "snowflake"

	_, err := New(context.Background(), cfg, nil)
	assert.Error(t, err)
}
