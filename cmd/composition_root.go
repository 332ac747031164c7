package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpin "github.com/u44592/hni/internal/adapters/in/http"
	"github.com/u44592/hni/internal/adapters/out/grpc/geoclient"
	"github.com/u44592/hni/internal/adapters/out/postgres"
	"github.com/u44592/hni/internal/adapters/out/postgres/catalogrepo"
	"github.com/u44592/hni/internal/adapters/out/postgres/draftrepo"
	"github.com/u44592/hni/internal/adapters/out/postgres/orderrepo"
	"github.com/u44592/hni/internal/adapters/out/postgres/userrepo"
	"github.com/u44592/hni/internal/adapters/out/turnlock"
	"github.com/u44592/hni/internal/core/application/events"
	"github.com/u44592/hni/internal/core/application/usecases/commands"
	"github.com/u44592/hni/internal/core/application/usecases/queries"
	"github.com/u44592/hni/internal/core/ports"
	"github.com/u44592/hni/internal/jobs"
	"github.com/u44592/hni/internal/metrics"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	geocoder   *geoclient.Client
	redis      *redis.Client
	metrics    *metrics.Collector
	location   *time.Location
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	geocoder, err := geoclient.NewClient(cfg.GeoServiceGrpcHost)
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		geocoder:   geocoder,
		metrics:    metrics.NewCollector(""),
		location:   location,
		logger:     logger,
	}

	if cfg.RedisAddr != "" {
		root.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}

	return root, nil
}

// Migrate creates or updates every table the service owns.
func (c *CompositionRoot) Migrate() error {
	return c.gormDB.AutoMigrate(
		&userrepo.UserDTO{},
		&catalogrepo.ProviderDTO{},
		&catalogrepo.ProviderLocationDTO{},
		&catalogrepo.MenuDTO{},
		&catalogrepo.MenuItemDTO{},
		&draftrepo.DraftDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
	)
}

// Ping checks the optional redis connection.
func (c *CompositionRoot) Ping(ctx context.Context) error {
	if c.redis == nil {
		return nil
	}
	if err := c.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis %s: %w", c.cfg.RedisAddr, err)
	}
	return nil
}

func (c *CompositionRoot) Close() error {
	var errRedis error
	if c.redis != nil {
		errRedis = c.redis.Close()
	}
	return errors.Join(c.geocoder.Close(), errRedis)
}

func (c *CompositionRoot) Metrics() *metrics.Collector {
	return c.metrics
}

func (c *CompositionRoot) CreateTurnLocker() ports.TurnLocker {
	if c.redis == nil {
		return turnlock.NewLocalLocker()
	}
	return turnlock.NewRedisLocker(c.redis, c.cfg.TurnLockTTL, turnlock.DefaultRetryDelay, c.logger)
}

func (c *CompositionRoot) CreateCatalogGateway() ports.CatalogGateway {
	return catalogrepo.NewGormCatalogRepository(c.gormDB, c.geocoder)
}

func (c *CompositionRoot) CreateUserDirectory() ports.UserDirectory {
	return userrepo.NewGormUserRepository(c.gormDB)
}

func (c *CompositionRoot) CreateProcessMessageCommandHandler() commands.ProcessMessageCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessMessageCommandHandler(f, c.CreateCatalogGateway(), c.CreateTurnLocker(),
		commands.ProcessMessageOptions{
			Policy:   c.cfg.Policy(),
			Location: c.location,
			Recorder: c.metrics,
			Logger:   c.logger,
		})
}

func (c *CompositionRoot) CreateReceiveMessageCommandHandler() commands.ReceiveMessageCommandHandler {
	return commands.NewReceiveMessageCommandHandler(
		c.CreateUserDirectory(),
		c.CreateProcessMessageCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateExpireDraftsCommandHandler() commands.ExpireDraftsCommandHandler {
	var f commands.DraftUoWFactory = FuncDraftUoWFactory(func() commands.DraftUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpireDraftsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

// CreateEventRouter builds the category table once; it does not change
// while the service runs.
func (c *CompositionRoot) CreateEventRouter() (*events.Router, error) {
	return NewEventRouter(c.CreateReceiveMessageCommandHandler())
}

func (c *CompositionRoot) CreateHTTPServer() (*httpin.Server, error) {
	router, err := c.CreateEventRouter()
	if err != nil {
		return nil, err
	}
	return httpin.NewServer(
		router,
		c.CreateGetOpenOrdersQueryHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		httpin.ServerOptions{
			Throttle: httpin.NewPhoneThrottle(c.cfg.InboundRate, c.cfg.InboundBurst),
			Recorder: c.metrics,
			Metrics:  c.metrics.Handler(),
			Logger:   c.logger,
		},
	), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	expiry := jobs.NewDraftExpiryJob(
		c.CreateExpireDraftsCommandHandler(),
		c.metrics,
		c.cfg.DraftTTL,
		c.cfg.DraftExpirySchedule,
		c.logger,
	)
	return jobs.NewJobManager(expiry)
}

type messageReceiver interface {
	Handle(ctx context.Context, cmd commands.ReceiveMessageCommand) (string, error)
}

// NewEventRouter maps the MEAL category to the receive-message handler.
func NewEventRouter(receiver messageReceiver) (*events.Router, error) {
	meal := events.HandlerFunc(func(ctx context.Context, event events.Event) (string, error) {
		cmd, err := commands.NewReceiveMessageCommand(event.PhoneNumber, event.Text)
		if err != nil {
			return "", err
		}
		return receiver.Handle(ctx, cmd)
	})

	return events.NewRouter(events.CategoryMeal, map[events.Category]events.Handler{
		events.CategoryMeal: meal,
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDraftUoWFactory func() commands.DraftUoW

func (f FuncDraftUoWFactory) Create() commands.DraftUoW {
	return f()
}
