package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexivanou/restaurant-finder/internal/model"
	"go.uber.org/zap"
)

// User-visible error messages
const (
	MsgLocationUnavailable = "Unable to retrieve location"
	MsgFetchRestaurants    = "Failed to fetch restaurants"
)

var (
	ErrUnknownRestaurant = errors.New("restaurant is not in the current list")
	ErrInvalidRadius     = errors.New("unsupported radius")
	ErrLocationFailed    = errors.New("location unavailable")
)

// Adapter is the subset of the adapter API the controller needs
type Adapter interface {
	Nearby(ctx context.Context, loc model.LatLng, radius int) ([]model.Restaurant, error)
	Details(ctx context.Context, id string) (*model.Restaurant, error)
}

// LocationProvider resolves the user's current coordinates
type LocationProvider interface {
	CurrentLocation(ctx context.Context) (model.LatLng, error)
}

// StaticLocation always reports the same coordinates
type StaticLocation model.LatLng

func (s StaticLocation) CurrentLocation(ctx context.Context) (model.LatLng, error) {
	loc := model.LatLng(s)
	if !loc.Valid() {
		return model.LatLng{}, fmt.Errorf("coordinates %v,%v out of range", loc.Lat, loc.Lng)
	}
	return loc, nil
}

type SelectionState int

const (
	SelectionClosed SelectionState = iota
	SelectionLoading
	SelectionOpen
)

func (s SelectionState) String() string {
	switch s {
	case SelectionLoading:
		return "loading"
	case SelectionOpen:
		return "open"
	}
	return "closed"
}

// Selection is the details view state. Fallback is set when the details
// lookup failed and Restaurant is the coarse list record.
type Selection struct {
	State      SelectionState
	ID         string
	Restaurant *model.Restaurant
	Fallback   bool
}

// Controller owns the discovery session state. The mutex is never held
// across adapter calls.
type Controller struct {
	adapter Adapter
	locator LocationProvider
	logger  *zap.Logger

	mu          sync.Mutex
	restaurants []model.Restaurant
	filters     Filters
	location    *model.LatLng
	loading     bool
	errMsg      string
	hovered     string
	selection   Selection
	nearbySeq   uint64
	selectSeq   uint64
}

// NewController creates a controller with DefaultFilters
func NewController(adapter Adapter, locator LocationProvider, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		adapter:     adapter,
		locator:     locator,
		logger:      logger,
		filters:     DefaultFilters(),
		restaurants: []model.Restaurant{},
	}
}

// Mount acquires the location once and performs the initial nearby search.
// A failure is reported through Err and returned; there is no retry.
func (c *Controller) Mount(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	c.mu.Unlock()

	loc, err := c.locator.CurrentLocation(ctx)
	if err != nil {
		c.logger.Warn("Failed to acquire location", zap.Error(err))
		c.mu.Lock()
		c.errMsg = MsgLocationUnavailable
		c.loading = false
		c.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrLocationFailed, err)
	}

	c.mu.Lock()
	c.location = &loc
	radius := c.filters.Radius
	c.nearbySeq++
	seq := c.nearbySeq
	c.mu.Unlock()

	return c.fetchNearby(ctx, seq, loc, radius)
}

// SetRadius changes the search radius. A changed radius triggers exactly one
// nearby search at the stored location; an unchanged radius does nothing.
func (c *Controller) SetRadius(ctx context.Context, radius int) error {
	if !ValidRadius(radius) {
		return fmt.Errorf("%w: %d", ErrInvalidRadius, radius)
	}

	c.mu.Lock()
	if radius == c.filters.Radius {
		c.mu.Unlock()
		return nil
	}
	c.filters.Radius = radius
	if c.location == nil {
		c.mu.Unlock()
		return nil
	}
	loc := *c.location
	c.nearbySeq++
	seq := c.nearbySeq
	c.loading = true
	c.mu.Unlock()

	return c.fetchNearby(ctx, seq, loc, radius)
}

func (c *Controller) fetchNearby(ctx context.Context, seq uint64, loc model.LatLng, radius int) error {
	restaurants, err := c.adapter.Nearby(ctx, loc, radius)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.nearbySeq {
		return nil
	}
	c.loading = false
	if err != nil {
		c.logger.Error("Failed to fetch restaurants", zap.Int("radius", radius), zap.Error(err))
		c.errMsg = MsgFetchRestaurants
		return err
	}

	c.errMsg = ""
	c.restaurants = restaurants
	c.logger.Debug("Fetched restaurants", zap.Int("radius", radius), zap.Int("count", len(restaurants)))
	return nil
}

// SetRatingSort changes the sort order without a network call
func (c *Controller) SetRatingSort(order SortOrder) error {
	if order != SortHighest && order != SortLowest {
		return fmt.Errorf("invalid sort order %q", order)
	}
	c.mu.Lock()
	c.filters.RatingSort = order
	c.mu.Unlock()
	return nil
}

// SetPriceFilter restricts the view to one price level, or all when nil.
// No network call is made.
func (c *Controller) SetPriceFilter(p *model.PriceLevel) error {
	if p != nil && !p.Valid() {
		return fmt.Errorf("price level %d out of range 0-4", *p)
	}
	c.mu.Lock()
	if p == nil {
		c.filters.PriceFilter = nil
	} else {
		level := *p
		c.filters.PriceFilter = &level
	}
	c.mu.Unlock()
	return nil
}

// View is the fetched list derived through the current filters
func (c *Controller) View() []model.Restaurant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Derive(c.restaurants, c.filters)
}

func (c *Controller) Restaurants() []model.Restaurant {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Restaurant, len(c.restaurants))
	copy(out, c.restaurants)
	return out
}

func (c *Controller) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// Location returns the acquired coordinates, if any
func (c *Controller) Location() (model.LatLng, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.location == nil {
		return model.LatLng{}, false
	}
	return *c.location, true
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the blocking user-visible error, or "" when there is none
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Controller) Hover(id string) {
	c.mu.Lock()
	c.hovered = id
	c.mu.Unlock()
}

func (c *Controller) ClearHover() {
	c.Hover("")
}

// Hovered returns the hovered id, or "" when nothing is hovered
func (c *Controller) Hovered() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hovered
}

func (c *Controller) IsHovered(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return id != "" && c.hovered == id
}

// Select opens the details view for id. The details lookup replaces the
// coarse record on success and falls back to it on failure. A lookup that
// resolves after the selection changed is discarded.
func (c *Controller) Select(ctx context.Context, id string) error {
	c.mu.Lock()
	coarse, ok := c.find(id)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownRestaurant, id)
	}
	c.selectSeq++
	seq := c.selectSeq
	c.selection = Selection{State: SelectionLoading, ID: id}
	c.mu.Unlock()

	details, err := c.adapter.Details(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.selectSeq {
		c.logger.Debug("Discarding superseded details", zap.String("id", id))
		return nil
	}
	if err != nil {
		c.logger.Warn("Failed to fetch restaurant details", zap.String("id", id), zap.Error(err))
		c.selection = Selection{State: SelectionOpen, ID: id, Restaurant: &coarse, Fallback: true}
		return nil
	}

	c.selection = Selection{State: SelectionOpen, ID: id, Restaurant: details}
	return nil
}

// CloseSelection closes the details view and discards any in-flight lookup
func (c *Controller) CloseSelection() {
	c.mu.Lock()
	c.selectSeq++
	c.selection = Selection{}
	c.mu.Unlock()
}

func (c *Controller) Selection() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	sel := c.selection
	if sel.Restaurant != nil {
		r := *sel.Restaurant
		sel.Restaurant = &r
	}
	return sel
}

func (c *Controller) find(id string) (model.Restaurant, bool) {
	for _, r := range c.restaurants {
		if r.ID == id {
			return r, true
		}
	}
	return model.Restaurant{}, false
}
