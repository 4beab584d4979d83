package commands_test

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockReturnRepository struct{ mock.Mock }

func (m *MockReturnRepository) Add(ctx context.Context, r *returns.Return) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReturnRepository) Update(ctx context.Context, r *returns.Return) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReturnRepository) Get(ctx context.Context, id kernel.UUID) (*returns.Return, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.Return), args.Error(1)
}

func (m *MockReturnRepository) GetAllInStatus(ctx context.Context, status returns.Status, limit, offset int) ([]*returns.Return, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*returns.Return), args.Error(1)
}

func (m *MockReturnRepository) CountInStatus(ctx context.Context, status returns.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockRefundRecordRepository struct{ mock.Mock }

func (m *MockRefundRecordRepository) Add(ctx context.Context, r *returns.RefundRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetLatestByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAllInStatus(ctx context.Context, status delivery.Status, limit, offset int) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) CountInStatus(ctx context.Context, status delivery.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockQuoteRepository struct{ mock.Mock }

func (m *MockQuoteRepository) Add(ctx context.Context, q *delivery.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuoteRepository) Update(ctx context.Context, q *delivery.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Quote), args.Error(1)
}

func (m *MockQuoteRepository) GetAllActive(ctx context.Context, limit, offset int) ([]*delivery.Quote, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Quote), args.Error(1)
}

func (m *MockQuoteRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteRepository) GetAllActiveExpiredBefore(ctx context.Context, moment time.Time) ([]*delivery.Quote, error) {
	args := m.Called(ctx, moment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Quote), args.Error(1)
}

type MockJobRecordRepository struct{ mock.Mock }

func (m *MockJobRecordRepository) Add(ctx context.Context, r *delivery.JobRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type MockStoreRepository struct{ mock.Mock }

func (m *MockStoreRepository) Add(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) Update(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) GetAllAutoSync(ctx context.Context) ([]*store.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Store), args.Error(1)
}

type MockMappingRepository struct{ mock.Mock }

func (m *MockMappingRepository) Add(ctx context.Context, mp *product.Mapping) error {
	args := m.Called(ctx, mp)
	return args.Error(0)
}

func (m *MockMappingRepository) Update(ctx context.Context, mp *product.Mapping) error {
	args := m.Called(ctx, mp)
	return args.Error(0)
}

func (m *MockMappingRepository) GetByStoreAndSource(ctx context.Context, storeID kernel.UUID, sourceProductID string) (*product.Mapping, error) {
	args := m.Called(ctx, storeID, sourceProductID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Mapping), args.Error(1)
}

func (m *MockMappingRepository) CountByStore(ctx context.Context, storeID kernel.UUID) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

type MockReturnUoW struct{ mock.Mock }

func (m *MockReturnUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReturnUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReturnUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReturnUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockReturnUoW) ReturnRepository() ports.ReturnRepository {
	args := m.Called()
	return args.Get(0).(ports.ReturnRepository)
}

func (m *MockReturnUoW) RefundRecordRepository() ports.RefundRecordRepository {
	args := m.Called()
	return args.Get(0).(ports.RefundRecordRepository)
}

func (m *MockReturnUoW) JobRecordRepository() ports.JobRecordRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRecordRepository)
}

type MockReturnUoWFactory struct{ mock.Mock }

func (m *MockReturnUoWFactory) Create() commands.ReturnUoW {
	args := m.Called()
	return args.Get(0).(commands.ReturnUoW)
}

type MockDeliveryUoW struct{ mock.Mock }

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockDeliveryUoW) QuoteRepository() ports.QuoteRepository {
	args := m.Called()
	return args.Get(0).(ports.QuoteRepository)
}

func (m *MockDeliveryUoW) JobRecordRepository() ports.JobRecordRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRecordRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockSyncUoW struct{ mock.Mock }

func (m *MockSyncUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSyncUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSyncUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSyncUoW) StoreRepository() ports.StoreRepository {
	args := m.Called()
	return args.Get(0).(ports.StoreRepository)
}

func (m *MockSyncUoW) MappingRepository() ports.MappingRepository {
	args := m.Called()
	return args.Get(0).(ports.MappingRepository)
}

type MockSyncUoWFactory struct{ mock.Mock }

func (m *MockSyncUoWFactory) Create() commands.SyncUoW {
	args := m.Called()
	return args.Get(0).(commands.SyncUoW)
}

type MockCourierGateway struct{ mock.Mock }

func (m *MockCourierGateway) Quote(ctx context.Context, req ports.CourierQuoteRequest) (ports.CourierQuote, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.CourierQuote), args.Error(1)
}

func (m *MockCourierGateway) CreateJob(ctx context.Context, req ports.CourierJobRequest) (ports.CourierJob, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.CourierJob), args.Error(1)
}

func (m *MockCourierGateway) GetJobStatus(ctx context.Context, jobID string) (ports.CourierJobStatus, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(ports.CourierJobStatus), args.Error(1)
}

func (m *MockCourierGateway) CancelJob(ctx context.Context, jobID string) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

type MockPaymentsGateway struct{ mock.Mock }

func (m *MockPaymentsGateway) Refund(ctx context.Context, paymentRef string, amount kernel.Money) (string, error) {
	args := m.Called(ctx, paymentRef, amount)
	return args.String(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyCustomer(ctx context.Context, customerID kernel.UUID, template, payload string) {
	m.Called(ctx, customerID, template, payload)
}

func (m *MockNotifier) NotifyMerchant(ctx context.Context, template, payload string) error {
	args := m.Called(ctx, template, payload)
	return args.Error(0)
}

type MockProductSource struct{ mock.Mock }

func (m *MockProductSource) ListActiveProducts(ctx context.Context, s *store.Store, pageToken string) (ports.ProductPage, error) {
	args := m.Called(ctx, s, pageToken)
	return args.Get(0).(ports.ProductPage), args.Error(1)
}

type MockProductDestination struct{ mock.Mock }

func (m *MockProductDestination) GetIDByHandle(ctx context.Context, s *store.Store, handle string) (string, error) {
	args := m.Called(ctx, s, handle)
	return args.String(0), args.Error(1)
}

func (m *MockProductDestination) Create(ctx context.Context, s *store.Store, p product.DestinationProduct) (string, error) {
	args := m.Called(ctx, s, p)
	return args.String(0), args.Error(1)
}

func (m *MockProductDestination) Update(ctx context.Context, s *store.Store, id string, p product.DestinationProduct) error {
	args := m.Called(ctx, s, id, p)
	return args.Error(0)
}

var (
	_ ports.OrderRepository        = (*MockOrderRepository)(nil)
	_ ports.ReturnRepository       = (*MockReturnRepository)(nil)
	_ ports.RefundRecordRepository = (*MockRefundRecordRepository)(nil)
	_ ports.DeliveryRepository     = (*MockDeliveryRepository)(nil)
	_ ports.QuoteRepository        = (*MockQuoteRepository)(nil)
	_ ports.JobRecordRepository    = (*MockJobRecordRepository)(nil)
	_ ports.StoreRepository        = (*MockStoreRepository)(nil)
	_ ports.MappingRepository      = (*MockMappingRepository)(nil)
	_ ports.CourierGateway         = (*MockCourierGateway)(nil)
	_ ports.PaymentsGateway        = (*MockPaymentsGateway)(nil)
	_ ports.Notifier               = (*MockNotifier)(nil)
	_ ports.ProductSource          = (*MockProductSource)(nil)
	_ ports.ProductDestination     = (*MockProductDestination)(nil)
	_ commands.ReturnUoW           = (*MockReturnUoW)(nil)
	_ commands.DeliveryUoW         = (*MockDeliveryUoW)(nil)
	_ commands.SyncUoW             = (*MockSyncUoW)(nil)
)
