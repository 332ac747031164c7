package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "github.com/u44592/hni/internal/adapters/out/postgres"
	"github.com/u44592/hni/internal/adapters/out/postgres/draftrepo"
	"github.com/u44592/hni/internal/adapters/out/postgres/orderrepo"
	"github.com/u44592/hni/internal/core/domain/model/catalog"
	"github.com/u44592/hni/internal/core/domain/model/draft"
	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/domain/model/order"
	"github.com/u44592/hni/internal/core/ports"
	"github.com/u44592/hni/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the GORM unit of work against a real
// PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&draftrepo.DraftDTO{}, &orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE drafts, order_items, orders").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.DraftRepository())
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow2.DraftRepository())
	suite.NotNil(uow2.OrderRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

// Confirming an order adds it and deletes the draft in one transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConfirmationIsAtomic() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	d := suite.storedDraft(userID)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.DraftRepository().GetByUser(ctx, userID)
	suite.Require().NoError(err)
	o := suite.orderFor(loaded)

	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.DraftRepository().Delete(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	check := suite.factory.Create()
	_, err = check.DraftRepository().GetByUser(ctx, d.UserID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	stored, err := check.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Open, stored.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackKeepsDraftAndDropsOrder() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	suite.storedDraft(userID)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.DraftRepository().GetByUser(ctx, userID)
	suite.Require().NoError(err)
	o := suite.orderFor(loaded)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.DraftRepository().Delete(ctx, loaded))

	suite.Require().NoError(uow.Rollback(ctx))

	check := suite.factory.Create()
	_, err = check.DraftRepository().GetByUser(ctx, userID)
	suite.Require().NoError(err, "Draft should survive rollback")
	_, err = check.OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TracksWrites() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	suite.storedDraft(userID)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.DraftRepository().GetByUser(ctx, userID)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.orderFor(loaded)))
	suite.Require().NoError(uow.DraftRepository().Delete(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	gormUow, ok := uow.(*postgres_adapter.GormUnitOfWork)
	suite.Require().True(ok)
	suite.Equal(2, gormUow.TrackedCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	userID := kernel.NewUUID()

	d, err := draft.NewDraft(kernel.NewUUID(), userID)
	suite.Require().NoError(err)
	d.RequestAddress()
	suite.Require().NoError(uow.DraftRepository().Save(ctx, d))

	loaded, err := suite.factory.Create().DraftRepository().GetByUser(ctx, userID)
	suite.Require().NoError(err)
	suite.Equal(draft.ProvidingAddress, loaded.Phase())
}

// storedDraft commits a draft that is waiting for confirmation.
func (suite *UnitOfWorkIntegrationTestSuite) storedDraft(userID kernel.UUID) *draft.Draft {
	ctx := context.Background()
	repo := suite.factory.Create().DraftRepository()

	d, err := draft.NewDraft(kernel.NewUUID(), userID)
	suite.Require().NoError(err)
	d.RequestAddress()

	addr, err := kernel.NewAddress("12 Elm St", "", "Omaha", "NE", "68102")
	suite.Require().NoError(err)
	loc, err := catalog.NewLocation(kernel.NewUUID(), kernel.NewUUID(), "Soup Kitchen", addr)
	suite.Require().NoError(err)
	item, err := catalog.NewMenuItem(kernel.NewUUID(), "Chili", kernel.Money(650))
	suite.Require().NoError(err)
	c, err := draft.NewCandidate(loc, item)
	suite.Require().NoError(err)

	suite.Require().NoError(d.OfferCandidates("1600 Farnam St", []draft.Candidate{c}))
	_, err = d.Choose(1, 3)
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Save(ctx, d))
	return d
}

func (suite *UnitOfWorkIntegrationTestSuite) orderFor(d *draft.Draft) *order.Order {
	loc, ok := d.ChosenLocation()
	suite.Require().True(ok)
	o, err := order.NewOrder(kernel.NewUUID(), d.UserID(), time.Now(), loc, d.SelectedItems())
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
