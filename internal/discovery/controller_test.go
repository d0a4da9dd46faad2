package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/alexivanou/restaurant-finder/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAdapter implements Adapter
type MockAdapter struct {
	mock.Mock
}

func (m *MockAdapter) Nearby(ctx context.Context, loc model.LatLng, radius int) ([]model.Restaurant, error) {
	args := m.Called(ctx, loc, radius)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Restaurant), args.Error(1)
}

func (m *MockAdapter) Details(ctx context.Context, id string) (*model.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

type failingLocation struct{}

func (failingLocation) CurrentLocation(ctx context.Context) (model.LatLng, error) {
	return model.LatLng{}, errors.New("permission denied")
}

var (
	berlin = model.LatLng{Lat: 52.52, Lng: 13.405}

	coarseList = []model.Restaurant{
		{ID: "a", Name: "Pasta Place", Rating: 4.5, PriceLevel: price(2)},
		{ID: "b", Name: "Noodle Bar", Rating: 3.0, PriceLevel: price(1)},
		{ID: "c", Name: "Curry House", Rating: 4.0, PriceLevel: price(2)},
	}
)

func mountedController(t *testing.T) (*Controller, *MockAdapter) {
	t.Helper()
	adapter := new(MockAdapter)
	adapter.On("Nearby", mock.Anything, berlin, 2000).Return(coarseList, nil).Once()

	c := NewController(adapter, StaticLocation(berlin), nil)
	require.NoError(t, c.Mount(context.Background()))
	return c, adapter
}

func TestController_Mount(t *testing.T) {
	c, adapter := mountedController(t)

	assert.False(t, c.Loading())
	assert.Empty(t, c.Err())
	loc, ok := c.Location()
	require.True(t, ok)
	assert.Equal(t, berlin, loc)
	assert.Equal(t, []string{"a", "c", "b"}, ids(c.View()))
	adapter.AssertExpectations(t)
}

func TestController_MountLocationFailure(t *testing.T) {
	adapter := new(MockAdapter)
	c := NewController(adapter, failingLocation{}, nil)

	err := c.Mount(context.Background())

	assert.ErrorIs(t, err, ErrLocationFailed)
	assert.Equal(t, MsgLocationUnavailable, c.Err())
	assert.False(t, c.Loading())
	_, ok := c.Location()
	assert.False(t, ok)
	adapter.AssertNotCalled(t, "Nearby", mock.Anything, mock.Anything, mock.Anything)
}

func TestController_MountFetchFailure(t *testing.T) {
	adapter := new(MockAdapter)
	adapter.On("Nearby", mock.Anything, berlin, 2000).Return(nil, &APIError{StatusCode: 500, Message: "Failed to fetch restaurants"})
	c := NewController(adapter, StaticLocation(berlin), nil)

	err := c.Mount(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, MsgFetchRestaurants, c.Err())
	assert.False(t, c.Loading())
	assert.Empty(t, c.View())
}

func TestController_SetRadius(t *testing.T) {
	c, adapter := mountedController(t)
	wider := append([]model.Restaurant{{ID: "d", Rating: 4.9}}, coarseList...)
	adapter.On("Nearby", mock.Anything, berlin, 5000).Return(wider, nil).Once()

	require.NoError(t, c.SetRadius(context.Background(), 5000))

	adapter.AssertNumberOfCalls(t, "Nearby", 2)
	assert.Equal(t, 5000, c.Filters().Radius)
	assert.Equal(t, []string{"d", "a", "c", "b"}, ids(c.View()))

	// Unchanged radius is a no-op
	require.NoError(t, c.SetRadius(context.Background(), 5000))
	adapter.AssertNumberOfCalls(t, "Nearby", 2)

	// Unsupported radius is rejected without a call
	assert.ErrorIs(t, c.SetRadius(context.Background(), 750), ErrInvalidRadius)
	adapter.AssertNumberOfCalls(t, "Nearby", 2)
	adapter.AssertExpectations(t)
}

func TestController_SetRadiusBeforeMount(t *testing.T) {
	adapter := new(MockAdapter)
	adapter.On("Nearby", mock.Anything, berlin, 10000).Return(coarseList, nil).Once()
	c := NewController(adapter, StaticLocation(berlin), nil)

	require.NoError(t, c.SetRadius(context.Background(), 10000))
	adapter.AssertNotCalled(t, "Nearby", mock.Anything, mock.Anything, mock.Anything)

	require.NoError(t, c.Mount(context.Background()))
	adapter.AssertExpectations(t)
}

func TestController_FiltersDoNotFetch(t *testing.T) {
	c, adapter := mountedController(t)

	require.NoError(t, c.SetPriceFilter(price(2)))
	require.NoError(t, c.SetRatingSort(SortLowest))
	assert.Equal(t, []string{"c", "a"}, ids(c.View()))

	require.NoError(t, c.SetPriceFilter(nil))
	assert.Equal(t, []string{"b", "c", "a"}, ids(c.View()))

	assert.Error(t, c.SetRatingSort("best"))
	invalid := model.PriceLevel(9)
	assert.Error(t, c.SetPriceFilter(&invalid))

	adapter.AssertNumberOfCalls(t, "Nearby", 1)
	// The fetched list keeps upstream order
	assert.Equal(t, []string{"a", "b", "c"}, ids(c.Restaurants()))
}

func TestController_Hover(t *testing.T) {
	c, adapter := mountedController(t)

	assert.Empty(t, c.Hovered())
	c.Hover("b")
	assert.Equal(t, "b", c.Hovered())
	assert.True(t, c.IsHovered("b"))
	assert.False(t, c.IsHovered("a"))

	c.ClearHover()
	assert.Empty(t, c.Hovered())
	assert.False(t, c.IsHovered(""))

	adapter.AssertNotCalled(t, "Details", mock.Anything, mock.Anything)
}

func TestController_Select(t *testing.T) {
	t.Run("details replace the coarse record", func(t *testing.T) {
		c, adapter := mountedController(t)
		adapter.On("Details", mock.Anything, "a").Return(&model.Restaurant{
			ID: "a", Name: "Pasta Place", Rating: 4.5, Phone: "030 1234567",
		}, nil)

		require.NoError(t, c.Select(context.Background(), "a"))

		sel := c.Selection()
		assert.Equal(t, SelectionOpen, sel.State)
		assert.False(t, sel.Fallback)
		require.NotNil(t, sel.Restaurant)
		assert.Equal(t, "030 1234567", sel.Restaurant.Phone)

		c.CloseSelection()
		assert.Equal(t, SelectionClosed, c.Selection().State)
		assert.Nil(t, c.Selection().Restaurant)
	})

	t.Run("failure falls back to the coarse record", func(t *testing.T) {
		c, adapter := mountedController(t)
		adapter.On("Details", mock.Anything, "b").Return(nil, errors.New("connection refused"))

		require.NoError(t, c.Select(context.Background(), "b"))

		sel := c.Selection()
		assert.Equal(t, SelectionOpen, sel.State)
		assert.True(t, sel.Fallback)
		require.NotNil(t, sel.Restaurant)
		assert.Equal(t, coarseList[1], *sel.Restaurant)
		assert.Empty(t, c.Err())
	})

	t.Run("unknown id", func(t *testing.T) {
		c, adapter := mountedController(t)

		err := c.Select(context.Background(), "zzz")

		assert.ErrorIs(t, err, ErrUnknownRestaurant)
		assert.Equal(t, SelectionClosed, c.Selection().State)
		adapter.AssertNotCalled(t, "Details", mock.Anything, mock.Anything)
	})
}

func TestController_SelectLastWriteWins(t *testing.T) {
	c, adapter := mountedController(t)

	started := make(chan struct{})
	release := make(chan struct{})
	adapter.On("Details", mock.Anything, "a").
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&model.Restaurant{ID: "a", Phone: "stale"}, nil)
	adapter.On("Details", mock.Anything, "c").Return(&model.Restaurant{ID: "c", Phone: "fresh"}, nil)

	done := make(chan error)
	go func() {
		done <- c.Select(context.Background(), "a")
	}()

	<-started
	assert.Equal(t, SelectionLoading, c.Selection().State)
	assert.Equal(t, "a", c.Selection().ID)

	require.NoError(t, c.Select(context.Background(), "c"))
	close(release)
	require.NoError(t, <-done)

	sel := c.Selection()
	assert.Equal(t, "c", sel.ID)
	require.NotNil(t, sel.Restaurant)
	assert.Equal(t, "fresh", sel.Restaurant.Phone)
}

func TestController_CloseDiscardsInFlight(t *testing.T) {
	c, adapter := mountedController(t)

	started := make(chan struct{})
	release := make(chan struct{})
	adapter.On("Details", mock.Anything, "a").
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&model.Restaurant{ID: "a"}, nil)

	done := make(chan error)
	go func() {
		done <- c.Select(context.Background(), "a")
	}()

	<-started
	c.CloseSelection()
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, SelectionClosed, c.Selection().State)
}
