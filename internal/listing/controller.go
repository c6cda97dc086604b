// Package listing implements the state machine behind every entity listing
// screen: a four-level dependent filter (residence, floor, room, bed) plus
// free-text search, sort, and pagination. Mutators return fetch requests
// for the event loop to execute and Apply methods ingest the results, so
// the controller itself never touches the network and stays single-threaded.
package listing

import (
	"github.com/curanet/careadm/pkg/enums"
	pkgerrors "github.com/curanet/careadm/pkg/errors"
	"github.com/curanet/careadm/pkg/pagination"
)

// Level identifies one dimension of the hierarchical filter, coarsest first.
type Level int

const (
	LevelResidence Level = iota
	LevelFloor
	LevelRoom
	LevelBed
)

func (l Level) String() string {
	switch l {
	case LevelResidence:
		return "residence"
	case LevelFloor:
		return "floor"
	case LevelRoom:
		return "room"
	case LevelBed:
		return "bed"
	}
	return "unknown"
}

// Concern identifies an independent fetch stream. Each concern has its own
// loading flag and its own response-generation counter, so overlapping
// fetches of different kinds never block each other and a late response
// for a superseded request is discarded.
type Concern int

const (
	ConcernListing Concern = iota
	ConcernResidences
	ConcernFloors
	ConcernRooms
	ConcernBeds
)

func optionConcernFor(level Level) Concern {
	switch level {
	case LevelResidence:
		return ConcernResidences
	case LevelFloor:
		return ConcernFloors
	case LevelRoom:
		return ConcernRooms
	default:
		return ConcernBeds
	}
}

// Option is one dropdown entry of a filter dimension.
type Option struct {
	ID   string
	Name string
}

// Filters holds the selected value of every filter dimension. A finer
// level is only ever set while every coarser level is set.
type Filters struct {
	ResidenceID string
	FloorID     string
	RoomID      string
	BedID       string
	Search      string
	SortBy      string
	SortDir     enums.SortDirection
}

func (f Filters) at(level Level) string {
	switch level {
	case LevelResidence:
		return f.ResidenceID
	case LevelFloor:
		return f.FloorID
	case LevelRoom:
		return f.RoomID
	default:
		return f.BedID
	}
}

// Query is the reload instruction for the main listing, a tagged variant:
// either the dedicated parent-scoped endpoint (full list, no pagination)
// or the generic paginated endpoint.
type Query struct {
	Scoped      bool
	ScopedLevel Level
	ParentID    string
	Filters     Filters
	Page        int
	Size        int
}

// Request instructs the driver to run one fetch and feed the result back
// with the same generation number.
type Request struct {
	Concern  Concern
	Gen      uint64
	ParentID string
	Query    Query
}

// Controller owns the filter, option-cache, pagination, and row state of
// one listing screen. T is the row type of the listed entity.
type Controller[T any] struct {
	filters     Filters
	page        int
	size        int
	defaultSize int

	// scopedParent is the filter level whose selection switches the
	// listing to the dedicated parent-scoped endpoint, when the listed
	// entity has one. Nil means the generic endpoint is always used.
	scopedParent *Level

	options map[Concern][]Option
	loading map[Concern]bool
	gens    map[Concern]uint64

	rows      []T
	total     int
	lastQuery Query
}

// ControllerOption configures a Controller.
type ControllerOption[T any] func(*Controller[T])

// WithScopedParent declares that selecting the given level switches the
// listing to its dedicated parent-scoped endpoint.
func WithScopedParent[T any](level Level) ControllerOption[T] {
	return func(c *Controller[T]) {
		l := level
		c.scopedParent = &l
	}
}

// WithPageSize sets the default page size.
func WithPageSize[T any](size int) ControllerOption[T] {
	return func(c *Controller[T]) {
		c.defaultSize = pagination.NormalizeSize(size)
	}
}

// NewController builds a listing controller with empty filters on page 1.
func NewController[T any](opts ...ControllerOption[T]) *Controller[T] {
	c := &Controller[T]{
		page:        pagination.FirstPage,
		defaultSize: pagination.DefaultSize,
		options:     map[Concern][]Option{},
		loading:     map[Concern]bool{},
		gens:        map[Concern]uint64{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.size = c.defaultSize
	return c
}

// Init returns the initial fetches: the residence options and the first
// listing page.
func (c *Controller[T]) Init() []Request {
	return []Request{
		c.optionRequest(ConcernResidences, ""),
		c.listingRequest(),
	}
}

// SetResidence selects the residence filter. Every finer level is cleared
// together with its cached options, pagination returns to the first page,
// and the floor options for the new residence are requested.
func (c *Controller[T]) SetResidence(id string) []Request {
	c.filters.ResidenceID = id
	c.clearBelow(LevelResidence)
	c.page = pagination.FirstPage

	requests := []Request{}
	if id != "" {
		requests = append(requests, c.optionRequest(ConcernFloors, id))
	}
	return append(requests, c.listingRequest())
}

// SetFloor selects the floor filter, cascading over room and bed.
func (c *Controller[T]) SetFloor(id string) []Request {
	c.filters.FloorID = id
	c.clearBelow(LevelFloor)
	c.page = pagination.FirstPage

	requests := []Request{}
	if id != "" {
		requests = append(requests, c.optionRequest(ConcernRooms, id))
	}
	return append(requests, c.listingRequest())
}

// SetRoom selects the room filter, cascading over bed.
func (c *Controller[T]) SetRoom(id string) []Request {
	c.filters.RoomID = id
	c.clearBelow(LevelRoom)
	c.page = pagination.FirstPage

	requests := []Request{}
	if id != "" {
		requests = append(requests, c.optionRequest(ConcernBeds, id))
	}
	return append(requests, c.listingRequest())
}

// SetBed selects the leaf filter level; nothing cascades below it.
func (c *Controller[T]) SetBed(id string) []Request {
	c.filters.BedID = id
	c.page = pagination.FirstPage
	return []Request{c.listingRequest()}
}

// SetSearch commits a search term. Debouncing is the driver's concern (see
// Debouncer); by the time this runs, the quiet period has already passed.
func (c *Controller[T]) SetSearch(text string) []Request {
	c.filters.Search = text
	c.page = pagination.FirstPage
	return []Request{c.listingRequest()}
}

// SetSort changes the sort column and direction and returns to page 1.
func (c *Controller[T]) SetSort(by string, dir enums.SortDirection) []Request {
	c.filters.SortBy = by
	c.filters.SortDir = dir
	c.page = pagination.FirstPage
	return []Request{c.listingRequest()}
}

// SetPagination jumps straight to the given page and size, no cascade.
func (c *Controller[T]) SetPagination(page, size int) []Request {
	c.page = pagination.NormalizePage(page)
	c.size = pagination.NormalizeSize(size)
	return []Request{c.listingRequest()}
}

// Reset returns to the first page at the default size, keeping filters.
func (c *Controller[T]) Reset() []Request {
	c.page = pagination.FirstPage
	c.size = c.defaultSize
	return []Request{c.listingRequest()}
}

// ResetAll additionally clears every filter dimension and the search term.
func (c *Controller[T]) ResetAll() []Request {
	c.filters = Filters{}
	c.clearBelow(LevelResidence)
	c.page = pagination.FirstPage
	c.size = c.defaultSize
	return []Request{c.listingRequest()}
}

// clearBelow empties every filter level strictly finer than the given one
// along with its cached option list.
func (c *Controller[T]) clearBelow(level Level) {
	if level < LevelFloor {
		c.filters.FloorID = ""
		delete(c.options, ConcernFloors)
	}
	if level < LevelRoom {
		c.filters.RoomID = ""
		delete(c.options, ConcernRooms)
	}
	if level < LevelBed {
		c.filters.BedID = ""
		delete(c.options, ConcernBeds)
	}
}

func (c *Controller[T]) optionRequest(concern Concern, parentID string) Request {
	c.gens[concern]++
	c.loading[concern] = true
	return Request{Concern: concern, Gen: c.gens[concern], ParentID: parentID}
}

func (c *Controller[T]) listingRequest() Request {
	c.gens[ConcernListing]++
	c.loading[ConcernListing] = true
	c.lastQuery = c.buildQuery()
	return Request{Concern: ConcernListing, Gen: c.gens[ConcernListing], Query: c.lastQuery}
}

// buildQuery prefers the dedicated parent-scoped endpoint when the listed
// entity has one and its parent level is selected; otherwise the generic
// paginated endpoint carries whatever dimensions are set.
func (c *Controller[T]) buildQuery() Query {
	if c.scopedParent != nil {
		if parentID := c.filters.at(*c.scopedParent); parentID != "" {
			return Query{
				Scoped:      true,
				ScopedLevel: *c.scopedParent,
				ParentID:    parentID,
			}
		}
	}
	return Query{
		Filters: c.filters,
		Page:    c.page,
		Size:    c.size,
	}
}

// ApplyOptions ingests an option-list response. Stale generations are
// dropped: two rapid filter changes dispatch two fetches, and only the
// latest one may land.
func (c *Controller[T]) ApplyOptions(concern Concern, gen uint64, opts []Option) {
	if gen != c.gens[concern] {
		return
	}
	c.loading[concern] = false
	c.options[concern] = opts
}

// ApplyOptionsError ingests a failed option fetch. The previous options
// stay visible; the caller is expected to notify.
func (c *Controller[T]) ApplyOptionsError(concern Concern, gen uint64) {
	if gen != c.gens[concern] {
		return
	}
	c.loading[concern] = false
}

// ApplyListing ingests a listing response. Scoped responses have no total
// count, so the driver passes the returned length and the controller
// treats the full list as a single page. applied reports whether the
// response was current; a stale generation is discarded.
func (c *Controller[T]) ApplyListing(gen uint64, rows []T, total int) (applied bool) {
	if gen != c.gens[ConcernListing] {
		return false
	}
	c.loading[ConcernListing] = false
	c.rows = rows
	if c.lastQuery.Scoped {
		c.total = len(rows)
		c.page = pagination.FirstPage
	} else {
		c.total = total
	}
	return true
}

// ApplyListingError ingests a failed listing reload. Normally the previous
// rows stay visible and the caller notifies. The exception is a scoped
// fetch whose parent no longer exists (deleted while selected): that
// filter level is cleared and the listing empties, so the stale selection
// does not linger. cleared reports whether the recovery path ran.
func (c *Controller[T]) ApplyListingError(gen uint64, err error) (cleared bool) {
	if gen != c.gens[ConcernListing] {
		return false
	}
	c.loading[ConcernListing] = false

	if !c.lastQuery.Scoped || !staleParentError(err) {
		return false
	}

	switch c.lastQuery.ScopedLevel {
	case LevelFloor:
		c.filters.FloorID = ""
	case LevelRoom:
		c.filters.RoomID = ""
	case LevelBed:
		c.filters.BedID = ""
	case LevelResidence:
		c.filters.ResidenceID = ""
	}
	c.clearBelow(c.lastQuery.ScopedLevel)
	c.rows = nil
	c.total = 0
	c.page = pagination.FirstPage
	return true
}

// staleParentError matches failures attributable to a vanished scoped
// parent: the backend either 404s the path or 500s on the dangling id.
// Transport failures and an open circuit are transient and must leave the
// selection and the previous rows alone.
func staleParentError(err error) bool {
	return pkgerrors.IsCode(err, pkgerrors.CodeNotFound) ||
		pkgerrors.IsCode(err, pkgerrors.CodeServerError)
}

// Filters returns the current filter selections.
func (c *Controller[T]) Filters() Filters { return c.filters }

// Page returns the current 1-based page number.
func (c *Controller[T]) Page() int { return c.page }

// Size returns the current page size.
func (c *Controller[T]) Size() int { return c.size }

// Rows returns the current listing rows.
func (c *Controller[T]) Rows() []T { return c.rows }

// Total returns the row count across all pages.
func (c *Controller[T]) Total() int { return c.total }

// TotalPages returns the page count for the current total and size.
func (c *Controller[T]) TotalPages() int { return pagination.TotalPages(c.total, c.size) }

// Options returns the cached dropdown entries for a filter dimension.
func (c *Controller[T]) Options(concern Concern) []Option { return c.options[concern] }

// Loading reports whether a fetch for the concern is outstanding.
func (c *Controller[T]) Loading(concern Concern) bool { return c.loading[concern] }
