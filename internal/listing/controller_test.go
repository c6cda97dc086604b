package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curanet/careadm/pkg/enums"
	pkgerrors "github.com/curanet/careadm/pkg/errors"
)

type bedRow struct {
	ID   string
	Name string
}

func newBedController() *Controller[bedRow] {
	return NewController[bedRow](WithScopedParent[bedRow](LevelRoom))
}

// drive applies empty successful results for every returned request so the
// controller state settles between steps.
func drive(c *Controller[bedRow], requests []Request) {
	for _, req := range requests {
		if req.Concern == ConcernListing {
			c.ApplyListing(req.Gen, nil, 0)
		} else {
			c.ApplyOptions(req.Concern, req.Gen, []Option{{ID: "opt-1", Name: "Opt"}})
		}
	}
}

func TestInitRequestsResidencesAndListing(t *testing.T) {
	c := newBedController()
	requests := c.Init()

	require.Len(t, requests, 2)
	assert.Equal(t, ConcernResidences, requests[0].Concern)
	assert.Equal(t, ConcernListing, requests[1].Concern)
	assert.True(t, c.Loading(ConcernResidences))
	assert.True(t, c.Loading(ConcernListing))
}

func TestCascadeInvariantOnResidenceChange(t *testing.T) {
	c := newBedController()
	drive(c, c.SetResidence("R1"))
	drive(c, c.SetFloor("F1"))
	drive(c, c.SetRoom("RM1"))
	drive(c, c.SetBed("B1"))

	require.NotEmpty(t, c.Options(ConcernFloors))
	require.NotEmpty(t, c.Options(ConcernRooms))
	require.NotEmpty(t, c.Options(ConcernBeds))

	drive(c, c.SetResidence("R2"))

	filters := c.Filters()
	assert.Equal(t, "R2", filters.ResidenceID)
	assert.Empty(t, filters.FloorID)
	assert.Empty(t, filters.RoomID)
	assert.Empty(t, filters.BedID)
	assert.Empty(t, c.Options(ConcernRooms), "room options must be dropped")
	assert.Empty(t, c.Options(ConcernBeds), "bed options must be dropped")
}

func TestCascadeStopsAtChangedLevel(t *testing.T) {
	c := newBedController()
	drive(c, c.SetResidence("R1"))
	drive(c, c.SetFloor("F1"))
	drive(c, c.SetRoom("RM1"))
	drive(c, c.SetBed("B1"))

	requests := c.SetRoom("RM2")

	filters := c.Filters()
	assert.Equal(t, "R1", filters.ResidenceID, "coarser levels survive")
	assert.Equal(t, "F1", filters.FloorID)
	assert.Equal(t, "RM2", filters.RoomID)
	assert.Empty(t, filters.BedID, "finer level cleared")
	assert.Empty(t, c.Options(ConcernBeds), "stale bed options dropped at mutation time")
	assert.NotEmpty(t, c.Options(ConcernFloors), "coarser option caches survive")

	drive(c, requests)
	assert.NotEmpty(t, c.Options(ConcernBeds), "new room's bed options repopulate")
}

func TestClearingResidenceDoesNotFetchFloorOptions(t *testing.T) {
	c := newBedController()
	drive(c, c.SetResidence("R1"))

	requests := c.SetResidence("")
	require.Len(t, requests, 1)
	assert.Equal(t, ConcernListing, requests[0].Concern)
}

func TestPaginationResetsOnEveryFilterMutation(t *testing.T) {
	c := newBedController()
	drive(c, c.SetPagination(4, 50))
	require.Equal(t, 4, c.Page())

	mutations := []func() []Request{
		func() []Request { return c.SetResidence("R1") },
		func() []Request { drive(c, c.SetPagination(4, 50)); return c.SetFloor("F1") },
		func() []Request { drive(c, c.SetPagination(4, 50)); return c.SetRoom("RM1") },
		func() []Request { drive(c, c.SetPagination(4, 50)); return c.SetBed("B1") },
		func() []Request { drive(c, c.SetPagination(4, 50)); return c.SetSearch("rosa") },
		func() []Request { drive(c, c.SetPagination(4, 50)); return c.SetSort("name", enums.SortDesc) },
	}
	for i, mutate := range mutations {
		drive(c, mutate())
		assert.Equal(t, 1, c.Page(), "mutation %d must reset to page 1", i)
	}
}

func TestSetPaginationKeepsFilters(t *testing.T) {
	c := newBedController()
	drive(c, c.SetResidence("R1"))
	drive(c, c.SetFloor("F1"))

	requests := c.SetPagination(3, 10)
	require.Len(t, requests, 1)
	assert.Equal(t, 3, c.Page())
	assert.Equal(t, 10, c.Size())
	assert.Equal(t, "F1", c.Filters().FloorID)
}

func TestResetAllClearsFiltersAndSearch(t *testing.T) {
	c := newBedController()
	drive(c, c.SetResidence("R1"))
	drive(c, c.SetFloor("F1"))
	drive(c, c.SetSearch("west wing"))
	drive(c, c.SetPagination(2, 50))

	drive(c, c.ResetAll())

	assert.Equal(t, Filters{}, c.Filters())
	assert.Equal(t, 1, c.Page())
	assert.Equal(t, 25, c.Size())
	assert.Empty(t, c.Options(ConcernFloors))
}

func TestScopedQueryPreferredWhenRoomSelected(t *testing.T) {
	c := newBedController()
	drive(c, c.SetResidence("R1"))
	drive(c, c.SetFloor("F1"))

	requests := c.SetRoom("RM1")
	listing := requests[len(requests)-1]
	require.Equal(t, ConcernListing, listing.Concern)
	assert.True(t, listing.Query.Scoped)
	assert.Equal(t, LevelRoom, listing.Query.ScopedLevel)
	assert.Equal(t, "RM1", listing.Query.ParentID)
}

func TestGenericQueryWhenNoScopedParent(t *testing.T) {
	c := newBedController()
	drive(c, c.SetResidence("R1"))

	requests := c.SetFloor("F1")
	listing := requests[len(requests)-1]
	assert.False(t, listing.Query.Scoped)
	assert.Equal(t, "F1", listing.Query.Filters.FloorID)
	assert.Equal(t, 1, listing.Query.Page)
}

func TestScopedListingDerivesTotalFromLength(t *testing.T) {
	c := newBedController()
	drive(c, c.SetResidence("R1"))
	drive(c, c.SetFloor("F1"))

	requests := c.SetRoom("RM1")
	listing := requests[len(requests)-1]
	c.ApplyListing(listing.Gen, []bedRow{{ID: "b1"}, {ID: "b2"}, {ID: "b3"}}, 0)

	assert.Equal(t, 3, c.Total())
	assert.Equal(t, 1, c.Page())
	assert.Len(t, c.Rows(), 3)
}

func TestStaleListingResponseDiscarded(t *testing.T) {
	c := newBedController()
	first := c.SetSearch("a")[0]
	second := c.SetSearch("ab")[0]

	// The older response lands last; it must not win.
	c.ApplyListing(second.Gen, []bedRow{{ID: "fresh"}}, 1)
	c.ApplyListing(first.Gen, []bedRow{{ID: "stale-1"}, {ID: "stale-2"}}, 2)

	require.Len(t, c.Rows(), 1)
	assert.Equal(t, "fresh", c.Rows()[0].ID)
	assert.Equal(t, 1, c.Total())
}

func TestStaleOptionsResponseDiscarded(t *testing.T) {
	c := newBedController()
	firstFloors := c.SetResidence("R1")[0]
	secondFloors := c.SetResidence("R2")[0]
	require.Equal(t, ConcernFloors, firstFloors.Concern)

	c.ApplyOptions(ConcernFloors, secondFloors.Gen, []Option{{ID: "f-r2", Name: "R2 ground"}})
	c.ApplyOptions(ConcernFloors, firstFloors.Gen, []Option{{ID: "f-r1", Name: "R1 ground"}})

	opts := c.Options(ConcernFloors)
	require.Len(t, opts, 1)
	assert.Equal(t, "f-r2", opts[0].ID)
	assert.False(t, c.Loading(ConcernFloors))
}

func TestListingErrorKeepsPreviousRows(t *testing.T) {
	c := newBedController()
	req := c.SetSearch("rosa")[0]
	c.ApplyListing(req.Gen, []bedRow{{ID: "b1"}}, 1)

	retry := c.SetSearch("rosario")[0]
	cleared := c.ApplyListingError(retry.Gen, pkgerrors.New(pkgerrors.CodeRateLimit, "slow down"))

	assert.False(t, cleared)
	assert.Len(t, c.Rows(), 1, "previous rows stay visible")
	assert.False(t, c.Loading(ConcernListing))
}

func TestScopedFailureOnDeletedParentClearsFilter(t *testing.T) {
	c := newBedController()
	drive(c, c.SetResidence("R1"))
	drive(c, c.SetFloor("F1"))

	requests := c.SetRoom("RM-deleted")
	listing := requests[len(requests)-1]
	c.ApplyListing(listing.Gen, []bedRow{{ID: "b1"}}, 0)

	reload := c.SetPagination(1, 25)[0]
	cleared := c.ApplyListingError(reload.Gen, pkgerrors.New(pkgerrors.CodeServerError, "room vanished"))

	assert.True(t, cleared)
	assert.Empty(t, c.Filters().RoomID, "dangling room selection cleared")
	assert.Empty(t, c.Rows(), "listing empties instead of staying stale")
	assert.Zero(t, c.Total())
}

func TestScopedFailureOnTransientOutageKeepsSelection(t *testing.T) {
	c := newBedController()
	drive(c, c.SetResidence("R1"))
	drive(c, c.SetFloor("F1"))

	requests := c.SetRoom("RM1")
	listing := requests[len(requests)-1]
	c.ApplyListing(listing.Gen, []bedRow{{ID: "b1"}}, 0)

	reload := c.SetPagination(1, 25)[0]
	cleared := c.ApplyListingError(reload.Gen,
		pkgerrors.Wrap(pkgerrors.CodeUnavailable, assert.AnError, "dial tcp: connection refused"))

	assert.False(t, cleared, "an unreachable backend is not a vanished room")
	assert.Equal(t, "RM1", c.Filters().RoomID)
	assert.Len(t, c.Rows(), 1, "previous rows stay visible")
}

func TestPaginatedFailureDoesNotClearFilters(t *testing.T) {
	c := newBedController()
	drive(c, c.SetResidence("R1"))

	reload := c.SetFloor("F1")
	listing := reload[len(reload)-1]
	cleared := c.ApplyListingError(listing.Gen, pkgerrors.New(pkgerrors.CodeServerError, "boom"))

	assert.False(t, cleared, "generic-path failures never clear filters")
	assert.Equal(t, "F1", c.Filters().FloorID)
}

func TestLoadingFlagsAreIndependent(t *testing.T) {
	c := newBedController()
	requests := c.SetResidence("R1")
	require.Len(t, requests, 2)

	assert.True(t, c.Loading(ConcernFloors))
	assert.True(t, c.Loading(ConcernListing))

	c.ApplyOptions(ConcernFloors, requests[0].Gen, nil)
	assert.False(t, c.Loading(ConcernFloors))
	assert.True(t, c.Loading(ConcernListing), "listing fetch still outstanding")
}
