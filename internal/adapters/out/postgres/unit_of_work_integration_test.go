package postgres_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/carriercredrepo"
	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/postgres/invoicerepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that order, inventory, and invoice
// writes obtained through one unit of work share a transaction.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.ChangeDTO{},
		&orderrepo.RemarkDTO{},
		&inventoryrepo.RecordDTO{},
		&inventoryrepo.ChangeDTO{},
		&invoicerepo.InvoiceDTO{},
		&invoicerepo.PaymentLogDTO{},
		&carriercredrepo.CredentialDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_lines, order_status_changes, order_remarks, " +
			"inventory_records, inventory_changes, invoices, payment_logs, carrier_credentials",
	).Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) seedRecord(owner kernel.OwnerRef, productID kernel.UUID, qty int) {
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(context.Background()))
	record, err := inventory.NewRecord(
		kernel.NewUUID(), owner, productID, "Incense Pack",
		inventory.StockReadyToDispatch, qty, kernel.NewUUID(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.InventoryRepository().Add(context.Background(), record))
	suite.Require().NoError(uow.Commit(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(owner kernel.OwnerRef, productID kernel.UUID) *order.Order {
	o, err := order.NewOrder(
		kernel.NewUUID(),
		owner,
		order.Customer{Name: "Aruna Shakya", Phone: "9800000001", Address: "Patan"},
		[]order.Line{{ProductID: productID, Quantity: 3}},
		order.PaymentCashOnDelivery,
		decimal.NewFromInt(1000),
		decimal.NewFromInt(200),
		decimal.NewFromInt(100),
	)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrderAndDebitTogether() {
	ctx := context.Background()
	owner, err := kernel.NewOwnerRef(kernel.OwnerFranchise, kernel.NewUUID())
	suite.Require().NoError(err)
	productID := kernel.NewUUID()
	suite.seedRecord(owner, productID, 10)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	record, err := uow.InventoryRepository().GetForUpdate(ctx, owner, productID)
	suite.Require().NoError(err)
	suite.Require().NoError(record.Debit(3, kernel.NewUUID()))
	suite.Require().NoError(uow.InventoryRepository().Update(ctx, record))

	o := suite.newOrder(owner, productID)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	verifyUow := suite.factory.Create()
	loadedRecord, err := verifyUow.InventoryRepository().GetForUpdate(ctx, owner, productID)
	suite.Require().NoError(err)
	suite.Equal(7, loadedRecord.Quantity())

	loadedOrder, err := verifyUow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(o.IsEqual(loadedOrder))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrderAndDebitTogether() {
	ctx := context.Background()
	owner, err := kernel.NewOwnerRef(kernel.OwnerFranchise, kernel.NewUUID())
	suite.Require().NoError(err)
	productID := kernel.NewUUID()
	suite.seedRecord(owner, productID, 10)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	record, err := uow.InventoryRepository().GetForUpdate(ctx, owner, productID)
	suite.Require().NoError(err)
	suite.Require().NoError(record.Debit(3, kernel.NewUUID()))
	suite.Require().NoError(uow.InventoryRepository().Update(ctx, record))

	o := suite.newOrder(owner, productID)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	verifyUow := suite.factory.Create()
	loadedRecord, err := verifyUow.InventoryRepository().GetForUpdate(ctx, owner, productID)
	suite.Require().NoError(err)
	suite.Equal(10, loadedRecord.Quantity())

	_, err = verifyUow.OrderRepository().Get(ctx, o.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestInvoiceRepository_SharedTransaction() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	inv, err := invoice.NewInvoice(kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(2500))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.InvoiceRepository().Add(ctx, inv))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().InvoiceRepository().Get(ctx, inv.ID())
	suite.Require().NoError(err)
	suite.False(loaded.IsApproved())
	suite.True(decimal.NewFromInt(2500).Equal(loaded.PaidAmount()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin() {
	uow := suite.factory.Create()
	suite.Require().Error(uow.Commit(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCredentialStore_PutGetRoundTrip() {
	ctx := context.Background()
	store := carriercredrepo.NewGormCredentialStore(suite.db)

	missing, err := store.Get(ctx, order.CarrierYDM)
	suite.Require().NoError(err)
	suite.Nil(missing)

	expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	suite.Require().NoError(store.Put(ctx, ports.CarrierCredential{
		Carrier:   order.CarrierYDM,
		Token:     "token-1",
		ExpiresAt: expiry,
	}))

	cred, err := store.Get(ctx, order.CarrierYDM)
	suite.Require().NoError(err)
	suite.Require().NotNil(cred)
	suite.Equal("token-1", cred.Token)

	// Upsert replaces the row.
	suite.Require().NoError(store.Put(ctx, ports.CarrierCredential{
		Carrier:   order.CarrierYDM,
		Token:     "token-2",
		ExpiresAt: expiry.Add(time.Hour),
	}))

	cred, err = store.Get(ctx, order.CarrierYDM)
	suite.Require().NoError(err)
	suite.Equal("token-2", cred.Token)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
