package cmd

import (
	"errors"
	"log/slog"

	httpin "basket/internal/adapters/in/http"
	"basket/internal/adapters/out/kafka"
	"basket/internal/adapters/out/postgres"
	"basket/internal/adapters/out/postgres/catalogrepo"
	"basket/internal/adapters/out/postgres/orderrepo"
	"basket/internal/adapters/out/postgres/outboxrepo"
	basketprom "basket/internal/adapters/out/prometheus"
	"basket/internal/adapters/out/settings"
	"basket/internal/core/application/basket"
	"basket/internal/core/application/usecases/commands"
	"basket/internal/core/application/usecases/queries"
	"basket/internal/core/domain/services"
	"basket/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// CompositionRoot builds the object graph once per process.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	currencies *catalogrepo.CachedCurrencyRepository
	products   *catalogrepo.GormProductRepository
	settings   *settings.StaticProvider
	workflow   *services.CompletionWorkflow
	registry   *prometheus.Registry
	metrics    *basketprom.Recorder
	publisher  *kafka.Publisher
}

// NewCompositionRoot builds the dependency graph on top of gormDB.
// Returns an error if the configured VAT rate cannot be parsed.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	vat, err := settings.NewStaticProvider(cfg.Basket.VatRate)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		currencies: catalogrepo.NewCachedCurrencyRepository(
			catalogrepo.NewGormCurrencyRepository(gormDB),
			cfg.Basket.CurrencyCacheSize,
			cfg.Basket.CurrencyCacheTTL,
		),
		products: catalogrepo.NewGormProductRepository(gormDB),
		settings: vat,
		workflow: services.NewCompletionWorkflow(),
		registry: registry,
	}, nil
}

// CreateBasketService wires every basket use case behind the orchestrator.
func (c *CompositionRoot) CreateBasketService() *basket.Service {
	var uowFactory commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	var orderUoWFactory commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	readOrders := orderrepo.NewGormOrderRepository(c.gormDB, nil)

	handlers := basket.Handlers{
		Initialize:  commands.NewInitializeOrderCommandHandler(uowFactory, c.currencies, c.settings),
		AddProduct:  commands.NewAddProductCommandHandler(orderUoWFactory, c.products),
		Remove:      commands.NewRemoveProductCommandHandler(orderUoWFactory),
		SetQuantity: commands.NewSetQuantityCommandHandler(orderUoWFactory),
		ClearOut:    commands.NewClearOutCommandHandler(orderUoWFactory),
		Complete:    commands.NewCompleteOrderCommandHandler(orderUoWFactory, c.workflow),
		GetOrder:    queries.NewGetOrderQueryHandler(readOrders),
		GetOrders:   queries.NewGetOrdersQueryHandler(readOrders),
		OpenOrders:  queries.NewGetOpenOrdersQueryHandler(c.gormDB),
	}

	return basket.NewService(
		handlers,
		basket.Config{Timeout: c.cfg.Basket.OperationTimeout},
		c.logger,
		c.CreateRecorder(),
	)
}

// CreateRecorder returns the Prometheus recorder, registering it on first use.
func (c *CompositionRoot) CreateRecorder() basket.Recorder {
	return c.recorder()
}

// CreateCompletionWorkflow exposes the strategy registry so hosts can register strategies.
func (c *CompositionRoot) CreateCompletionWorkflow() *services.CompletionWorkflow {
	return c.workflow
}

// CreateRelayOutboxCommandHandler connects the outbox to Kafka.
func (c *CompositionRoot) CreateRelayOutboxCommandHandler() (commands.RelayOutboxCommandHandler, error) {
	if c.publisher == nil {
		publisher, err := kafka.NewPublisher(kafka.ParseBrokers(c.cfg.Kafka.Host), c.cfg.Kafka.OrderChangedTopic)
		if err != nil {
			return commands.RelayOutboxCommandHandler{}, err
		}
		c.publisher = publisher
	}

	return commands.NewRelayOutboxCommandHandler(outboxrepo.NewGormOutboxRepository(c.gormDB), c.publisher), nil
}

// CreateJobManager schedules the currency cache refresh and, when Kafka is
// configured, the outbox relay. Without brokers events stay in the outbox.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	manager := jobs.NewJobManager().Add("currency cache refresh",
		jobs.NewCurrencyCacheRefreshJob(c.currencies, c.cfg.Jobs.CurrencyRefreshSchedule, c.cfg.Jobs.Timeout, c.logger))

	relay, err := c.CreateRelayOutboxCommandHandler()
	if errors.Is(err, kafka.ErrNoBrokers) {
		c.logger.Warn("kafka is not configured, order events stay in the outbox")
		return manager, nil
	}
	if err != nil {
		return nil, err
	}

	cmd, err := commands.NewRelayOutboxCommand(c.cfg.Jobs.OutboxBatchSize)
	if err != nil {
		return nil, err
	}

	return manager.Add("outbox relay",
		jobs.NewOutboxRelayJob(relay, cmd, c.cfg.Jobs.OutboxRelaySchedule, c.cfg.Jobs.Timeout, c.logger)), nil
}

// CreateHTTPServer builds the operational host serving health and metrics.
func (c *CompositionRoot) CreateHTTPServer() (*httpin.Server, error) {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return nil, err
	}

	c.recorder()
	metrics := promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
	return httpin.NewServer(sqlDB, metrics, c.logger), nil
}

// Close releases the Kafka writer and the connection pool.
func (c *CompositionRoot) Close() error {
	var errs []error
	if c.publisher != nil {
		errs = append(errs, c.publisher.Close())
	}
	if sqlDB, err := c.gormDB.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) recorder() *basketprom.Recorder {
	if c.metrics == nil {
		c.metrics = basketprom.NewRecorder(c.registry)
	}
	return c.metrics
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncUoWFactory adapts a function to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
