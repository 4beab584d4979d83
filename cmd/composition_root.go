package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/courier"
	"fulfillment/internal/adapters/out/notifications"
	"fulfillment/internal/adapters/out/payments"
	"fulfillment/internal/adapters/out/platform"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/rediscache"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	courierGateway *courier.Client
	payments       *payments.Client
	notifier       *notifications.LogNotifier
	source         *platform.HTTPProductSource
	destination    *platform.HTTPProductDestination
	statusCache    *rediscache.RedisStatusCache

	logger *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	courierGateway, err := courier.NewClient(courier.Config{
		BaseURL:      config.CourierBaseURL,
		ClientID:     config.CourierClientID,
		ClientSecret: config.CourierClientSecret,
	}, logger)
	if err != nil {
		return nil, err
	}

	paymentsGateway, err := payments.NewClient(payments.Config{
		BaseURL: config.PaymentsBaseURL,
		APIKey:  config.PaymentsAPIKey,
	}, logger)
	if err != nil {
		return nil, err
	}

	statusCache, err := rediscache.NewRedisStatusCache(config.RedisURL, rediscache.DefaultTTL)
	if err != nil {
		return nil, err
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	root := &CompositionRoot{
		config:         config,
		gormDB:         gormDB,
		uowFactory:     *uowFactory,
		courierGateway: courierGateway,
		payments:       paymentsGateway,
		source:         platform.NewHTTPProductSource(0),
		destination:    platform.NewHTTPProductDestination(0),
		statusCache:    statusCache,
		logger:         logger,
	}

	notifier, err := root.createNotifier()
	if err != nil {
		return nil, err
	}
	root.notifier = notifier

	return root, nil
}

// Close releases resources held by long-lived adapters.
func (c *CompositionRoot) Close() error {
	return c.statusCache.Close()
}

func (c *CompositionRoot) createNotifier() (*notifications.LogNotifier, error) {
	senderConfig := notifications.Config{
		BaseURL: c.config.NotificationsBaseURL,
		APIKey:  c.config.NotificationsAPIKey,
	}

	emailSender, err := notifications.NewEmailSender(senderConfig)
	if err != nil {
		return nil, err
	}
	smsSender, err := notifications.NewSMSSender(senderConfig)
	if err != nil {
		return nil, err
	}

	resolver, err := notifications.NewHTTPContactResolver(
		c.config.CustomerDirectoryURL,
		c.config.CustomerDirectoryAPIKey,
		0,
	)
	if err != nil {
		return nil, err
	}

	merchant := notifications.Contact{
		Email: c.config.MerchantEmail,
		Phone: c.config.MerchantPhone,
	}

	var f notifications.LogUnitOfWorkFactory = FuncLogUoWFactory(func() notifications.LogUnitOfWork {
		return c.uowFactory.Create()
	})
	return notifications.NewLogNotifier(f, resolver, merchant, c.logger, emailSender, smsSender)
}

func (c *CompositionRoot) returnUoWFactory() commands.ReturnUoWFactory {
	return FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) syncUoWFactory() commands.SyncUoWFactory {
	return FuncSyncUoWFactory(func() commands.SyncUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryReadUoWFactory() queries.DeliveryReadUoWFactory {
	return FuncDeliveryReadUoWFactory(func() queries.DeliveryReadUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateInitiateReturnCommandHandler() commands.InitiateReturnCommandHandler {
	return commands.NewInitiateReturnCommandHandler(c.returnUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateApproveReturnCommandHandler() commands.ApproveReturnCommandHandler {
	return commands.NewApproveReturnCommandHandler(
		c.returnUoWFactory(), c.courierGateway, c.notifier, c.config.WarehouseAddress)
}

func (c *CompositionRoot) CreateRejectReturnCommandHandler() commands.RejectReturnCommandHandler {
	return commands.NewRejectReturnCommandHandler(c.returnUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateProcessRefundCommandHandler() commands.ProcessRefundCommandHandler {
	return commands.NewProcessRefundCommandHandler(c.returnUoWFactory(), c.payments, c.notifier)
}

func (c *CompositionRoot) CreateRequestDeliveryQuoteCommandHandler() commands.RequestDeliveryQuoteCommandHandler {
	return commands.NewRequestDeliveryQuoteCommandHandler(
		c.deliveryUoWFactory(), c.courierGateway, c.config.WarehouseAddress)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(
		c.deliveryUoWFactory(), c.courierGateway, c.notifier, c.config.WarehouseAddress)
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.deliveryUoWFactory(), c.courierGateway)
}

func (c *CompositionRoot) CreateSyncStoreCommandHandler() commands.SyncStoreCommandHandler {
	return commands.NewSyncStoreCommandHandler(c.syncUoWFactory(), c.source, c.destination, c.logger)
}

func (c *CompositionRoot) CreateUpdateReturnStatusCommandHandler() commands.UpdateReturnStatusCommandHandler {
	return commands.NewUpdateReturnStatusCommandHandler(c.returnUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(c.deliveryUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateExpireQuotesCommandHandler() commands.ExpireQuotesCommandHandler {
	return commands.NewExpireQuotesCommandHandler(c.deliveryUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateListReturnsByStatusQueryHandler() queries.ListReturnsByStatusQueryHandler {
	return queries.NewListReturnsByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReturnQueryHandler() queries.GetReturnQueryHandler {
	return queries.NewGetReturnQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDeliveriesByStatusQueryHandler() queries.ListDeliveriesByStatusQueryHandler {
	return queries.NewListDeliveriesByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListActiveQuotesQueryHandler() queries.ListActiveQuotesQueryHandler {
	return queries.NewListActiveQuotesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryStatusQueryHandler() queries.GetDeliveryStatusQueryHandler {
	return queries.NewGetDeliveryStatusQueryHandler(
		c.deliveryReadUoWFactory(), c.statusCache, c.courierGateway, c.logger)
}

func (c *CompositionRoot) CreateGetSyncStatusQueryHandler() queries.GetSyncStatusQueryHandler {
	return queries.NewGetSyncStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateInitiateReturnCommandHandler(),
		c.CreateApproveReturnCommandHandler(),
		c.CreateRejectReturnCommandHandler(),
		c.CreateProcessRefundCommandHandler(),
		c.CreateRequestDeliveryQuoteCommandHandler(),
		c.CreateConfirmDeliveryCommandHandler(),
		c.CreateCancelDeliveryCommandHandler(),
		c.CreateSyncStoreCommandHandler(),
		c.CreateUpdateReturnStatusCommandHandler(),
		c.CreateUpdateDeliveryStatusCommandHandler(),
		c.CreateListReturnsByStatusQueryHandler(),
		c.CreateGetReturnQueryHandler(),
		c.CreateListDeliveriesByStatusQueryHandler(),
		c.CreateListActiveQuotesQueryHandler(),
		c.CreateGetDeliveryStatusQueryHandler(),
		c.CreateGetSyncStatusQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpireQuotesCommandHandler(),
		c.syncUoWFactory(),
		c.CreateSyncStoreCommandHandler(),
		c.logger,
	)
}

type FuncReturnUoWFactory func() commands.ReturnUoW

func (f FuncReturnUoWFactory) Create() commands.ReturnUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncSyncUoWFactory func() commands.SyncUoW

func (f FuncSyncUoWFactory) Create() commands.SyncUoW {
	return f()
}

type FuncDeliveryReadUoWFactory func() queries.DeliveryReadUoW

func (f FuncDeliveryReadUoWFactory) Create() queries.DeliveryReadUoW {
	return f()
}

type FuncLogUoWFactory func() notifications.LogUnitOfWork

func (f FuncLogUoWFactory) Create() notifications.LogUnitOfWork {
	return f()
}
