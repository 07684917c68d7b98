package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/carriers"
	"fulfillment/internal/adapters/out/carriers/dash"
	"fulfillment/internal/adapters/out/carriers/pickndrop"
	"fulfillment/internal/adapters/out/carriers/ydm"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/carriercredrepo"
	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/postgres/invoicerepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	carriers      *carriers.Registry
	systemActorID kernel.UUID
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	systemActorID, err := kernel.UUIDFromString(config.SystemActorID)
	if err != nil {
		return CompositionRoot{}, err
	}

	credentials := carriercredrepo.NewGormCredentialStore(gormDB)

	registry := carriers.NewRegistry(
		dash.NewClient(dash.Config{
			BaseURL: config.DashBaseURL,
			APIKey:  config.DashAPIKey,
		}),
		ydm.NewClient(ydm.Config{
			BaseURL:  config.YDMBaseURL,
			Username: config.YDMUsername,
			Password: config.YDMPassword,
		}, credentials),
		pickndrop.NewClient(pickndrop.Config{
			BaseURL:      config.PickNDropBaseURL,
			ClientID:     config.PickNDropClientID,
			ClientSecret: config.PickNDropClientSecret,
		}, credentials),
	)

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		carriers:      registry,
		systemActorID: systemActorID,
	}, nil
}

// MigrateDatabase creates or updates the schema for every persistence DTO.
func (c *CompositionRoot) MigrateDatabase() error {
	return c.gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.ChangeDTO{},
		&orderrepo.RemarkDTO{},
		&inventoryrepo.RecordDTO{},
		&inventoryrepo.ChangeDTO{},
		&invoicerepo.InvoiceDTO{},
		&invoicerepo.PaymentLogDTO{},
		&carriercredrepo.CredentialDTO{},
	)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSelectCarrierCommandHandler() commands.SelectCarrierCommandHandler {
	return commands.NewSelectCarrierCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(c.orderUoWFactory(), c.commandCarrierResolver())
}

func (c *CompositionRoot) CreateApplyCarrierEventCommandHandler() commands.ApplyCarrierEventCommandHandler {
	return commands.NewApplyCarrierEventCommandHandler(c.orderUoWFactory(), c.commandCarrierResolver())
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddStockCommandHandler() commands.AddStockCommandHandler {
	return commands.NewAddStockCommandHandler(c.inventoryUoWFactory())
}

func (c *CompositionRoot) CreateAdjustStockCommandHandler() commands.AdjustStockCommandHandler {
	return commands.NewAdjustStockCommandHandler(c.inventoryUoWFactory())
}

func (c *CompositionRoot) CreateRetireStockCommandHandler() commands.RetireStockCommandHandler {
	return commands.NewRetireStockCommandHandler(c.inventoryUoWFactory())
}

func (c *CompositionRoot) CreateCreateInvoiceCommandHandler() commands.CreateInvoiceCommandHandler {
	return commands.NewCreateInvoiceCommandHandler(c.invoiceUoWFactory())
}

func (c *CompositionRoot) CreateApproveInvoiceCommandHandler() commands.ApproveInvoiceCommandHandler {
	return commands.NewApproveInvoiceCommandHandler(c.invoiceUoWFactory())
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.invoiceUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStockQueryHandler() queries.GetStockQueryHandler {
	return queries.NewGetStockQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatementQueryHandler() queries.GetStatementQueryHandler {
	return queries.NewGetStatementQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingCODQueryHandler() queries.GetPendingCODQueryHandler {
	return queries.NewGetPendingCODQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBranchesQueryHandler() queries.GetBranchesQueryHandler {
	return queries.NewGetBranchesQueryHandler(c.carriers)
}

func (c *CompositionRoot) CreateGetInFlightOrdersQueryHandler() queries.GetInFlightOrdersQueryHandler {
	return queries.NewGetInFlightOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use-case handler into the REST adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		TransitionOrder:   c.CreateTransitionOrderCommandHandler(),
		SelectCarrier:     c.CreateSelectCarrierCommandHandler(),
		DispatchOrder:     c.CreateDispatchOrderCommandHandler(),
		ApplyCarrierEvent: c.CreateApplyCarrierEventCommandHandler(),
		AssignRider:       c.CreateAssignRiderCommandHandler(),
		AddStock:          c.CreateAddStockCommandHandler(),
		AdjustStock:       c.CreateAdjustStockCommandHandler(),
		RetireStock:       c.CreateRetireStockCommandHandler(),
		CreateInvoice:     c.CreateCreateInvoiceCommandHandler(),
		ApproveInvoice:    c.CreateApproveInvoiceCommandHandler(),
		RecordPayment:     c.CreateRecordPaymentCommandHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		GetOrders:         c.CreateGetOrdersQueryHandler(),
		GetStock:          c.CreateGetStockQueryHandler(),
		GetStatement:      c.CreateGetStatementQueryHandler(),
		GetPendingCOD:     c.CreateGetPendingCODQueryHandler(),
		GetBranches:       c.CreateGetBranchesQueryHandler(),
	}, c.systemActorID)
}

// CreateJobManager wires the carrier status poller.
func (c *CompositionRoot) CreateJobManager(schedule string, logger *slog.Logger) *JobManagerHandle {
	pollJob := jobs.NewCarrierPollJob(
		c.CreateGetInFlightOrdersQueryHandler(),
		c.CreateApplyCarrierEventCommandHandler(),
		c.carriers,
		c.systemActorID,
		schedule,
		logger,
	)
	return &JobManagerHandle{manager: jobs.NewJobManager(pollJob)}
}

// JobManagerHandle shields main from the jobs package types.
type JobManagerHandle struct {
	manager *jobs.JobManager
}

func (h *JobManagerHandle) StartAll() error { return h.manager.StartAll() }
func (h *JobManagerHandle) StopAll()        { h.manager.StopAll() }

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) inventoryUoWFactory() commands.InventoryUoWFactory {
	return FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) invoiceUoWFactory() commands.InvoiceUoWFactory {
	return FuncInvoiceUoWFactory(func() commands.InvoiceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) commandCarrierResolver() commands.CarrierResolver {
	return narrowCarrierResolver{inner: c.carriers}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}

type FuncInvoiceUoWFactory func() commands.InvoiceUoW

func (f FuncInvoiceUoWFactory) Create() commands.InvoiceUoW {
	return f()
}

// narrowCarrierResolver adapts ports.CarrierResolver to the slimmer resolver
// interface the command handlers declare for themselves.
type narrowCarrierResolver struct {
	inner ports.CarrierResolver
}

func (r narrowCarrierResolver) Resolve(carrier order.Carrier) (commands.CarrierClient, error) {
	client, err := r.inner.Resolve(carrier)
	if err != nil {
		return nil, err
	}
	return client, nil
}
