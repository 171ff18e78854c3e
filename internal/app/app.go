package app

import (
	"context"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/boilerplate/api/handler"
	"github.com/fastygo/boilerplate/internal/config"
	"github.com/fastygo/boilerplate/internal/infrastructure/journal"
	"github.com/fastygo/boilerplate/internal/infrastructure/monitor"
	"github.com/fastygo/boilerplate/internal/middleware"
	"github.com/fastygo/boilerplate/internal/router"
	"github.com/fastygo/boilerplate/internal/services"
	"github.com/fastygo/boilerplate/internal/services/lifecycle"
	"github.com/fastygo/boilerplate/pkg/httpcontext"
	"github.com/fastygo/boilerplate/repository/memory"
	"github.com/fastygo/boilerplate/usecase"
	taskUC "github.com/fastygo/boilerplate/usecase/task"
	userUC "github.com/fastygo/boilerplate/usecase/user"
)

// App owns every long-lived component of the API process.
type App struct {
	Handler fasthttp.RequestHandler
	Store   *memory.Store
	Monitor *monitor.Monitor

	journal *journal.Store
	pruner  *services.JournalPruner
	logger  *zap.Logger
}

// New assembles the service from cfg. Nothing is started yet.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	newIDs, err := memory.NewGeneratorFactory(cfg.Store.IDStrategy)
	if err != nil {
		return nil, err
	}
	store := memory.NewStore(newIDs)
	if cfg.Store.Seed {
		if err := store.Seed(ctx, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}

	a := &App{Store: store, logger: logger}

	var recorder usecase.MutationRecorder
	var journalSize monitor.SizeReporter
	if cfg.Journal.Enabled {
		a.journal, err = journal.Open(cfg.Journal.Path, "mutations")
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		a.pruner, err = services.NewJournalPruner(a.journal, logger, services.PrunerConfig{
			Interval:  cfg.Journal.PruneInterval,
			Retention: cfg.Journal.Retention,
		})
		if err != nil {
			_ = a.journal.Close()
			return nil, fmt.Errorf("schedule journal pruning: %w", err)
		}
		recorder = services.NewJournalRecorder(a.journal)
		journalSize = a.journal
	}

	a.Monitor = monitor.New(store.Tasks(), store.Users(), journalSize, cfg.Monitor.Interval, logger)

	taskUseCase := taskUC.New(store.Tasks(), recorder, logger)
	userUseCase := userUC.New(store.Users(), recorder, logger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:     apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, logger),
		User:     apiHandler.NewUserHandler(userUseCase, ctxAdapter, logger),
		Health:   apiHandler.NewHealthHandler(a.Monitor, ctxAdapter, logger),
		Info:     apiHandler.NewInfoHandler("Boilerplate API", cfg.Version),
		Fallback: apiHandler.NewFallback(logger),
	}

	a.Handler = router.New(handlers,
		middleware.AccessLog(logger),
		middleware.SecureHeaders,
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)
	return a, nil
}

// Start launches the background components.
func (a *App) Start() {
	a.Monitor.Start()
	a.pruner.Start()
}

// Register hands every component to the lifecycle manager. Components stop
// in reverse order, so the store is released last.
func (a *App) Register(manager *lifecycle.Manager) {
	manager.Register("store", func(context.Context) error {
		return a.Store.Close()
	})
	if a.journal != nil {
		manager.Register("journal", func(context.Context) error {
			return a.journal.Close()
		})
		manager.Register("journal_pruner", func(ctx context.Context) error {
			a.pruner.Stop(ctx)
			return nil
		})
	}
	manager.Register("monitor", func(context.Context) error {
		a.Monitor.Stop()
		return nil
	})
}
