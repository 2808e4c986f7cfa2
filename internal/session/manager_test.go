package session

import (
	"sync"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/engine"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ManagerTestSuite struct {
	suite.Suite
	manager  *Manager
	torndown []string
	mu       sync.Mutex
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (suite *ManagerTestSuite) SetupTest() {
	suite.torndown = nil
	suite.manager = NewManager(3, logger.NewNop())
	suite.manager.OnTeardown(func(s Session) {
		suite.mu.Lock()
		defer suite.mu.Unlock()

		suite.torndown = append(suite.torndown, s.ID)
	})
}

func (suite *ManagerTestSuite) create(n int) Session {
	series := make(types.BarSeries, n)
	result := types.NewIndicatorResult(series.Times())

	return suite.manager.Create(series, result, []types.IndicatorType{types.IndicatorTypeRSI}, engine.DefaultParams())
}

func (suite *ManagerTestSuite) TestCreateAndGet() {
	s := suite.create(5)

	suite.NotEmpty(s.ID)
	suite.Equal(s.CreatedAt, s.UpdatedAt)

	got, err := suite.manager.Get(s.ID)
	suite.Require().NoError(err)
	suite.Equal(s.ID, got.ID)
	suite.Equal(5, got.Series.Len())
	suite.Equal(1, suite.manager.Len())
}

func (suite *ManagerTestSuite) TestUniqueIDs() {
	a := suite.create(1)
	b := suite.create(1)

	suite.NotEqual(a.ID, b.ID)
}

func (suite *ManagerTestSuite) TestGetNotFound() {
	_, err := suite.manager.Get("missing")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeSessionNotFound))
}

func (suite *ManagerTestSuite) TestReplaceTearsDownPrevious() {
	s := suite.create(5)
	suite.manager.now = func() time.Time { return s.CreatedAt.Add(time.Minute) }

	series := make(types.BarSeries, 8)
	replaced, err := suite.manager.Replace(s.ID, series, types.NewIndicatorResult(series.Times()), nil, engine.DefaultParams())
	suite.Require().NoError(err)

	suite.Equal(s.ID, replaced.ID)
	suite.Equal(s.CreatedAt, replaced.CreatedAt)
	suite.True(replaced.UpdatedAt.After(replaced.CreatedAt))
	suite.Equal([]string{s.ID}, suite.torndown)

	got, err := suite.manager.Get(s.ID)
	suite.Require().NoError(err)
	suite.Equal(8, got.Series.Len())
	suite.Equal(1, suite.manager.Len())
}

func (suite *ManagerTestSuite) TestReplaceNotFound() {
	_, err := suite.manager.Replace("missing", nil, types.IndicatorResult{}, nil, engine.DefaultParams())
	suite.True(errors.HasCode(err, errors.ErrCodeSessionNotFound))
	suite.Empty(suite.torndown)
}

func (suite *ManagerTestSuite) TestDelete() {
	s := suite.create(1)

	suite.NoError(suite.manager.Delete(s.ID))
	suite.Equal(0, suite.manager.Len())
	suite.Empty(suite.manager.IDs())
	suite.Equal([]string{s.ID}, suite.torndown)

	err := suite.manager.Delete(s.ID)
	suite.True(errors.HasCode(err, errors.ErrCodeSessionNotFound))
	suite.Len(suite.torndown, 1)
}

func (suite *ManagerTestSuite) TestEvictsOldest() {
	first := suite.create(1)
	second := suite.create(1)
	third := suite.create(1)
	fourth := suite.create(1)

	suite.Equal(3, suite.manager.Len())
	suite.Equal([]string{second.ID, third.ID, fourth.ID}, suite.manager.IDs())
	suite.Equal([]string{first.ID}, suite.torndown)

	_, err := suite.manager.Get(first.ID)
	suite.True(errors.HasCode(err, errors.ErrCodeSessionNotFound))
}

func (suite *ManagerTestSuite) TestClose() {
	a := suite.create(1)
	b := suite.create(1)

	suite.manager.Close()

	suite.Equal(0, suite.manager.Len())
	suite.Equal([]string{a.ID, b.ID}, suite.torndown)
}

func (suite *ManagerTestSuite) TestDefaultSize() {
	m := NewManager(0, nil)
	suite.Equal(DefaultMaxSessions, m.maxSize)
}

func (suite *ManagerTestSuite) TestConcurrentAccess() {
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			s := suite.create(1)
			_, _ = suite.manager.Get(s.ID)
			_ = suite.manager.Delete(s.ID)
		}()
	}

	wg.Wait()
	suite.LessOrEqual(suite.manager.Len(), 3)
}
