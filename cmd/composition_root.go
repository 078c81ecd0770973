package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "eatify/internal/adapters/in/http"
	"eatify/internal/adapters/out/memory"
	"eatify/internal/adapters/out/postgres"
	"eatify/internal/adapters/out/postgres/historyrepo"
	"eatify/internal/adapters/out/postgres/projectionrepo"
	"eatify/internal/adapters/out/rabbitmq"
	redisadapter "eatify/internal/adapters/out/redis"
	"eatify/internal/core/application/usecases/commands"
	"eatify/internal/core/application/usecases/queries"
	"eatify/internal/core/domain/services"
	"eatify/internal/core/ports"
	"eatify/internal/jobs"
	"eatify/internal/pkg/metrics"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot owns the adapters selected by Config and builds the use cases on top.
type CompositionRoot struct {
	cfg     Config
	metrics *metrics.Metrics
	logger  *slog.Logger
	clock   ports.Clock

	uowFactory     ports.UnitOfWorkFactory
	projections    ports.ProjectionReader
	history        ports.HistoryRepository
	codes          ports.CodeStore
	notifier       ports.Notifier
	publisher      ports.EventPublisher
	paymentChecker services.PaymentSignatureVerifier

	closers []func() error
}

func NewCompositionRoot(ctx context.Context, cfg Config, m *metrics.Metrics, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &CompositionRoot{
		cfg:            cfg,
		metrics:        m,
		logger:         logger,
		clock:          ports.SystemClock{},
		paymentChecker: services.NewPaymentSignatureVerifier(cfg.PaymentSecret),
	}

	if err := c.initStore(); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	if err := c.initCodeStore(ctx); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	if err := c.initMessaging(); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	return c, nil
}

func (c *CompositionRoot) initStore() error {
	switch c.cfg.StoreDriver {
	case DriverPostgres:
		db, err := postgres.Open(c.cfg.DSN())
		if err != nil {
			return err
		}
		c.closers = append(c.closers, closeGorm(db))

		if err = postgres.Migrate(db); err != nil {
			return err
		}

		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
		c.projections = projectionrepo.NewGormProjectionReader(db)
		c.history = historyrepo.NewGormHistoryRepository(db)
	default:
		store := memory.NewStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(store)
		c.projections = memory.NewProjectionReader(store)
		c.history = memory.NewHistoryReader(store)
	}

	c.logger.Info("Order store ready", "driver", c.cfg.StoreDriver)
	return nil
}

func (c *CompositionRoot) initCodeStore(ctx context.Context) error {
	switch c.cfg.CodeStoreDriver {
	case DriverRedis:
		opts, err := redis.ParseURL(c.cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		c.closers = append(c.closers, client.Close)

		if err = client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.codes = redisadapter.NewCodeStore(client, c.cfg.CodeTTL)
	default:
		c.codes = memory.NewCodeStore(c.cfg.CodeTTL)
	}

	c.logger.Info("Code store ready", "driver", c.cfg.CodeStoreDriver)
	return nil
}

func (c *CompositionRoot) initMessaging() error {
	switch c.cfg.NotifierDriver {
	case DriverRabbitMQ:
		client, err := rabbitmq.NewClient(c.cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, client.Close)

		c.notifier = rabbitmq.NewNotifier(client)
		c.publisher = rabbitmq.NewEventPublisher(client)
	default:
		c.notifier = memory.NewLogNotifier(c.logger)
		c.publisher = memory.NewLogPublisher(c.logger)
	}

	c.logger.Info("Messaging ready", "driver", c.cfg.NotifierDriver)
	return nil
}

// Close releases connections in reverse order of acquisition.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func closeGorm(db *gorm.DB) func() error {
	return func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
}

func (c *CompositionRoot) observer() commands.TransitionObserver {
	if c.metrics == nil {
		return nil
	}
	return c.metrics
}

func (c *CompositionRoot) recorder() jobs.Recorder {
	if c.metrics == nil {
		return nil
	}
	return c.metrics
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoW() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) lifecycle() commands.Lifecycle {
	return commands.NewLifecycle(c.uow(), c.clock, c.observer())
}

func (c *CompositionRoot) CreateArchiveOrderCommandHandler() commands.ArchiveOrderCommandHandler {
	return commands.NewArchiveOrderCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateReconcileOrdersCommandHandler() commands.ReconcileOrdersCommandHandler {
	return commands.NewReconcileOrdersCommandHandler(c.uow(), c.CreateArchiveOrderCommandHandler())
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(c.outboxUoW(), c.publisher, c.clock)
}

// CreateHTTPHandlers builds every use case the HTTP server exposes.
func (c *CompositionRoot) CreateHTTPHandlers() httpadapter.Handlers {
	lifecycle := c.lifecycle()
	archiver := c.CreateArchiveOrderCommandHandler()

	return httpadapter.Handlers{
		CreateOrder:     commands.NewCreateOrderCommandHandler(lifecycle),
		AcceptOrder:     commands.NewAcceptOrderCommandHandler(lifecycle),
		AssignPartner:   commands.NewAssignPartnerCommandHandler(lifecycle),
		IssueCode:       commands.NewIssueCodeCommandHandler(lifecycle, c.codes, c.notifier, c.cfg.CodeTTL),
		ReissueCode:     commands.NewReissueCodeCommandHandler(lifecycle, c.codes, c.notifier, c.cfg.CodeTTL),
		ConfirmDelivery: commands.NewConfirmDeliveryCommandHandler(lifecycle, c.codes, archiver),
		CancelOrder:     commands.NewCancelOrderCommandHandler(lifecycle, archiver),
		ReconcileOrders: c.CreateReconcileOrdersCommandHandler(),
		GetProjection:   queries.NewGetProjectionQueryHandler(c.projections),
		ListActive:      queries.NewListActiveQueryHandler(c.projections),
		ListHistory:     queries.NewListHistoryQueryHandler(c.history),
		GetEarnings:     queries.NewGetEarningsQueryHandler(c.history),
		VerifyPayment:   queries.NewVerifyPaymentQueryHandler(c.paymentChecker),
	}
}

// CreateJobManager schedules the outbox relay and reconciliation, plus the code sweep
// when codes live in memory.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	scheduled := []jobs.Job{
		jobs.NewOutboxRelayJob(c.CreateRelayOutboxCommandHandler(),
			c.cfg.RelaySchedule, c.cfg.RelayBatchSize, c.recorder(), c.logger),
		jobs.NewReconciliationJob(c.CreateReconcileOrdersCommandHandler(),
			c.cfg.ReconcileSchedule, c.cfg.ReconcileLimit, c.recorder(), c.logger),
	}
	if c.cfg.CodeStoreDriver == DriverMemory {
		scheduled = append(scheduled,
			jobs.NewCodeSweepJob(c.codes, c.clock, c.cfg.SweepSchedule, c.recorder(), c.logger))
	}
	return jobs.NewJobManager(scheduled...)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
