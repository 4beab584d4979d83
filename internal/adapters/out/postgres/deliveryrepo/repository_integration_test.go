package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// DeliveryRepositoryIntegrationTestSuite provides integration tests for the
// delivery, quote and job record repositories using PostgreSQL containers.
type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *deliveryrepo.GormDeliveryRepository
	quotes     *deliveryrepo.GormQuoteRepository
	tracker    *MockAggregateTracker
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.QuoteDTO{},
		&deliveryrepo.JobRecordDTO{},
	))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE deliveries, quotes, job_records").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = deliveryrepo.NewGormDeliveryRepository(suite.db, suite.tracker)
	suite.quotes = deliveryrepo.NewGormQuoteRepository(suite.db, suite.tracker)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) createTestDelivery(orderID kernel.UUID, createdAt time.Time) *delivery.Delivery {
	price, err := kernel.NewMoney(999)
	suite.Require().NoError(err)

	del, err := delivery.NewDelivery(
		kernel.NewUUID(), orderID, kernel.NewUUID(), "job_55", price, createdAt,
	)
	suite.Require().NoError(err)
	return del
}

func (suite *DeliveryRepositoryIntegrationTestSuite) createTestQuote(expiresAt, createdAt time.Time) *delivery.Quote {
	price, err := kernel.NewMoney(1499)
	suite.Require().NoError(err)

	quote, err := delivery.NewQuote(
		kernel.NewUUID(), kernel.NewUUID(), price, 30, expiresAt, createdAt,
	)
	suite.Require().NoError(err)
	return quote
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_Get_RoundTrip() {
	ctx := context.Background()
	createdAt := time.Now().UTC().Truncate(time.Microsecond)
	del := suite.createTestDelivery(kernel.NewUUID(), createdAt)

	suite.Require().NoError(suite.repository.Add(ctx, del))

	loaded, err := suite.repository.Get(ctx, del.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(del.ID()))
	suite.Equal("job_55", loaded.CourierJobID())
	suite.Equal(delivery.Confirmed, loaded.Status())
	suite.True(loaded.Price().IsEqual(del.Price()))
	suite.Nil(loaded.ETA())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_DriverAndETA_Persisted() {
	ctx := context.Background()
	createdAt := time.Now().UTC().Truncate(time.Microsecond)
	del := suite.createTestDelivery(kernel.NewUUID(), createdAt)

	suite.Require().NoError(suite.repository.Add(ctx, del))

	eta := createdAt.Add(45 * time.Minute)
	suite.Require().NoError(del.AdvanceTo(delivery.DriverAssigned))
	del.UpdateDriver("Jo", "+15557777")
	del.UpdateETA(eta)
	suite.Require().NoError(suite.repository.Update(ctx, del))

	loaded, err := suite.repository.Get(ctx, del.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.DriverAssigned, loaded.Status())
	suite.Equal("Jo", loaded.DriverName())
	suite.Require().NotNil(loaded.ETA())
	suite.True(loaded.ETA().Equal(eta))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetLatestByOrder_PicksNewest() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	base := time.Now().UTC().Truncate(time.Microsecond)

	older := suite.createTestDelivery(orderID, base.Add(-2*time.Hour))
	newer := suite.createTestDelivery(orderID, base)
	suite.Require().NoError(suite.repository.Add(ctx, older))
	suite.Require().NoError(suite.repository.Add(ctx, newer))

	loaded, err := suite.repository.GetLatestByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(newer.ID()))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetLatestByOrder_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.GetLatestByOrder(ctx, kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestQuotes_ActiveExpiredBefore() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	expired := suite.createTestQuote(now.Add(-time.Minute), now.Add(-time.Hour))
	live := suite.createTestQuote(now.Add(time.Hour), now)
	suite.Require().NoError(suite.quotes.Add(ctx, expired))
	suite.Require().NoError(suite.quotes.Add(ctx, live))

	stale, err := suite.quotes.GetAllActiveExpiredBefore(ctx, now)
	suite.Require().NoError(err)
	suite.Require().Len(stale, 1)
	suite.True(stale[0].ID().IsEqual(expired.ID()))

	count, err := suite.quotes.CountActive(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestQuotes_AcceptPersisted() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	quote := suite.createTestQuote(now.Add(time.Hour), now)

	suite.Require().NoError(suite.quotes.Add(ctx, quote))
	suite.Require().NoError(quote.Accept(now))
	suite.Require().NoError(suite.quotes.Update(ctx, quote))

	loaded, err := suite.quotes.Get(ctx, quote.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.QuoteAccepted, loaded.Status())

	active, err := suite.quotes.GetAllActive(ctx, 10, 0)
	suite.Require().NoError(err)
	suite.Empty(active)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestJobRecords_AppendOnly() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	record, err := delivery.NewJobRecord(
		kernel.NewUUID(), "job_55", delivery.JobPurposeDelivery, `{"id":"job_55"}`, now,
	)
	suite.Require().NoError(err)

	jobRepo := deliveryrepo.NewGormJobRecordRepository(suite.db, suite.tracker)
	suite.Require().NoError(jobRepo.Add(ctx, record))

	var count int64
	suite.Require().NoError(suite.db.Model(&deliveryrepo.JobRecordDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
