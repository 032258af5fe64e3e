package cmd

import (
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/historyrepo"
	"dispatch/internal/adapters/out/postgres/incidentrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. The history
// repository and event publisher stay outside the unit of work: the
// transition report runs after the transaction commits and must never
// unwind it.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	reporter   commands.TransitionReporter
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	historyRepo := historyrepo.NewGormHistoryRepository(gormDB)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		reporter:   commands.NewTransitionReporter(historyRepo, publisher, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.reporter)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.fullUoWFactory(), c.reporter)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.fullUoWFactory(), c.reporter)
}

func (c *CompositionRoot) CreateReassignCourierCommandHandler() commands.ReassignCourierCommandHandler {
	return commands.NewReassignCourierCommandHandler(c.fullUoWFactory(), c.reporter)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.fullUoWFactory(), c.reporter)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.fullUoWFactory(), c.reporter)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateSetCourierAvailabilityCommandHandler() commands.SetCourierAvailabilityCommandHandler {
	return commands.NewSetCourierAvailabilityCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateNotifyPendingOrdersCommandHandler() commands.NotifyPendingOrdersCommandHandler {
	return commands.NewNotifyPendingOrdersCommandHandler(c.orderUoWFactory(), c.reporter)
}

func (c *CompositionRoot) CreateReportIncidentCommandHandler() commands.ReportIncidentCommandHandler {
	return commands.NewReportIncidentCommandHandler(
		c.uowFactory.Create().OrderRepository(),
		incidentrepo.NewGormIncidentRepository(c.gormDB),
	)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableCouriersQueryHandler() queries.GetAvailableCouriersQueryHandler {
	return queries.NewGetAvailableCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSettlementReportQueryHandler() queries.GetSettlementReportQueryHandler {
	return queries.NewGetSettlementReportQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetIncidentsQueryHandler() queries.GetIncidentsQueryHandler {
	return queries.NewGetIncidentsQueryHandler(c.gormDB)
}

// CreateServer builds the HTTP server with every handler wired in.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAcceptOrderCommandHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.CreateReassignCourierCommandHandler(),
		c.CreateAdvanceOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateCreateCourierCommandHandler(),
		c.CreateSetCourierAvailabilityCommandHandler(),
		c.CreateReportIncidentCommandHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetAvailableCouriersQueryHandler(),
		c.CreateGetOrderHistoryQueryHandler(),
		c.CreateGetSettlementReportQueryHandler(),
		c.CreateGetIncidentsQueryHandler(),
	)
}

// CreateJobManager builds the background jobs with the configured system
// actor and thresholds.
func (c *CompositionRoot) CreateJobManager(systemActorID kernel.UUID) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateNotifyPendingOrdersCommandHandler(),
		c.uowFactory.Create().OrderRepository(),
		systemActorID,
		c.config.NotifyAfter,
		c.config.StaleAfter,
		c.logger,
	)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
