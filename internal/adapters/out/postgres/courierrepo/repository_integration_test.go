package courierrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
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

// CourierRepositoryIntegrationTestSuite provides integration tests for
// CourierRepository using PostgreSQL containers.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
	tracker    *MockAggregateTracker
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = courierrepo.NewGormCourierRepository(suite.db, suite.tracker)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) createTestCourier(name string) *courier.Courier {
	c, err := courier.NewCourier(kernel.NewUUID(), name, "3111111111", "88221100", nil)
	suite.Require().NoError(err)
	return c
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAdd_ValidCourier_Success() {
	ctx := context.Background()
	testCourier := suite.createTestCourier("Carlos Perez")
	suite.tracker.On("TrackAggregate", testCourier.ID(), testCourier).Once()

	err := suite.repository.Add(ctx, testCourier)
	suite.Require().NoError(err)

	restored, err := suite.repository.Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.Equal("Carlos Perez", restored.Name())
	suite.True(restored.Available())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_UnknownID_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_PersistsUnavailableFlag() {
	ctx := context.Background()
	testCourier := suite.createTestCourier("Carlos Perez")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	testCourier.MarkBusy()
	suite.Require().NoError(suite.repository.Update(ctx, testCourier))

	restored, err := suite.repository.Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.False(restored.Available())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetAllAvailable_ExcludesBusyCouriers() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	free := suite.createTestCourier("Andres")
	busy := suite.createTestCourier("Bernardo")
	busy.MarkBusy()

	suite.Require().NoError(suite.repository.Add(ctx, free))
	suite.Require().NoError(suite.repository.Add(ctx, busy))

	available, err := suite.repository.GetAllAvailable(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(available, 1)
	suite.True(available[0].ID().IsEqual(free.ID()))
}

func (suite *CourierRepositoryIntegrationTestSuite) TestClaimAvailable_TwoClaimants_OneWinner() {
	ctx := context.Background()
	testCourier := suite.createTestCourier("Carlos Perez")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	// Two assignments on different orders race for the same courier. Each
	// reads an available snapshot before either one writes.
	claim := func() error {
		snapshot, err := suite.repository.Get(ctx, testCourier.ID())
		if err != nil {
			return err
		}
		snapshot.MarkBusy()
		return suite.repository.ClaimAvailable(ctx, snapshot)
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = claim()
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

	restored, err := suite.repository.Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.False(restored.Available())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestClaimAvailable_AlreadyBusy_Conflict() {
	ctx := context.Background()
	testCourier := suite.createTestCourier("Carlos Perez")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	testCourier.MarkBusy()
	suite.Require().NoError(suite.repository.ClaimAvailable(ctx, testCourier))

	// A latecomer still holding the available snapshot tries to claim.
	stale, err := courier.RestoreCourier(testCourier.ID(), "Carlos Perez",
		"3111111111", "88221100", nil, true)
	suite.Require().NoError(err)
	stale.MarkBusy()

	err = suite.repository.ClaimAvailable(ctx, stale)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
