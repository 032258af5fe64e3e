package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

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

// nopTracker swallows tracking calls. Used where the test exercises
// concurrency and call counts are not the point.
type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers to verify persistence and
// conditional write behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	value, err := kernel.NewMoney(50000)
	suite.Require().NoError(err)
	percent, err := kernel.NewCommissionPercent(20)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil,
		"Ana Maria", "3001234567", "Calle 10 # 5-23", nil, nil,
		value, percent, time.Now().UTC())
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, restored.Status())
	suite.Equal("Ana Maria", restored.ClientName())
	suite.Equal(int64(50000), restored.OrderValue().Amount())
	suite.Nil(restored.CourierID())
	suite.Nil(restored.CommissionAmount())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_UnknownID_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_RoundTripsAllFields() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	courierID := kernel.NewUUID()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	now := time.Now().UTC()
	suite.Require().NoError(testOrder.Assign(courierID, now))
	suite.Require().NoError(testOrder.Advance(now))
	suite.Require().NoError(testOrder.Advance(now))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, restored.Status())
	suite.Require().NotNil(restored.CourierID())
	suite.True(restored.CourierID().IsEqual(courierID))
	suite.Require().NotNil(restored.CommissionAmount())
	suite.Equal(int64(10000), restored.CommissionAmount().Amount())
	suite.Require().NotNil(restored.DeliveredAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateInStatus_StatusMoved_Conflict() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	now := time.Now().UTC()
	suite.Require().NoError(testOrder.Assign(kernel.NewUUID(), now))
	suite.Require().NoError(suite.repository.UpdateInStatus(ctx, testOrder, order.Pending))

	// A second writer holding the stale Pending snapshot must lose.
	stale, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(stale.Cancel("cliente no contesta", kernel.NewUUID(), now))
	err = suite.repository.UpdateInStatus(ctx, stale, order.Pending)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, restored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaimUnassigned_TwoClaimants_OneWinner() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	repo := orderrepo.NewGormOrderRepository(suite.db, nopTracker{})
	now := time.Now().UTC()

	claim := func(courierID kernel.UUID) error {
		snapshot, err := repo.Get(ctx, testOrder.ID())
		if err != nil {
			return err
		}
		if err = snapshot.Assign(courierID, now); err != nil {
			return err
		}
		return repo.ClaimUnassigned(ctx, snapshot, []order.Status{order.Pending})
	}

	first := kernel.NewUUID()
	second := kernel.NewUUID()

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, courierID := range []kernel.UUID{first, second} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = claim(courierID)
		}()
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			suite.Require().ErrorIs(err, errs.ErrConflict)
		}
	}
	suite.Equal(1, winners)

	restored, err := repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, restored.Status())
	suite.Require().NotNil(restored.CourierID())
	suite.True(restored.CourierID().IsEqual(first) || restored.CourierID().IsEqual(second))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaimUnassigned_AlreadyAssigned_Conflict() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	now := time.Now().UTC()
	suite.Require().NoError(testOrder.Assign(kernel.NewUUID(), now))
	suite.Require().NoError(suite.repository.ClaimUnassigned(ctx, testOrder, []order.Status{order.Pending}))

	// A latecomer still holding the unassigned snapshot tries to claim.
	late, err := order.RestoreOrder(testOrder.ID(), testOrder.RestaurantID(), nil,
		testOrder.ClientName(), testOrder.ClientPhone(), testOrder.DeliveryAddress(),
		nil, nil, testOrder.OrderValue(), testOrder.CommissionPercent(),
		order.Pending, nil, nil, nil, nil, nil, testOrder.CreatedAt(), testOrder.UpdatedAt())
	suite.Require().NoError(err)
	suite.Require().NoError(late.Assign(kernel.NewUUID(), now))

	err = suite.repository.ClaimUnassigned(ctx, late, []order.Status{order.Pending})
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllPendingBefore_FiltersByCutoff() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	oldOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, oldOrder))

	cutoff := time.Now().UTC().Add(time.Second)
	time.Sleep(1100 * time.Millisecond)

	freshOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, freshOrder))

	pending, err := suite.repository.GetAllPendingBefore(ctx, cutoff)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.True(pending[0].ID().IsEqual(oldOrder.ID()))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
