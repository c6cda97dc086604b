package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/curanet/careadm/pkg/enums"
	"github.com/curanet/careadm/pkg/pagination"
)

// ListQuery carries the filter, search, sort, and pagination dimensions of
// a generic listing request. ResidenceID is never a query parameter: when
// set it overrides the X-Residence-Id header for this request only.
type ListQuery struct {
	ResidenceID string
	FloorID     string
	RoomID      string
	BedID       string
	Search      string
	SortBy      string
	SortDir     enums.SortDirection
	Page        int
	Size        int
}

// Values renders the query string for the generic paginated endpoints.
func (q ListQuery) Values() url.Values {
	params := pagination.Params{Page: q.Page, Size: q.Size}.Normalize()

	values := url.Values{}
	values.Set("page", strconv.Itoa(params.Page))
	values.Set("size", strconv.Itoa(params.Size))
	if v := strings.TrimSpace(q.FloorID); v != "" {
		values.Set("floor_id", v)
	}
	if v := strings.TrimSpace(q.RoomID); v != "" {
		values.Set("room_id", v)
	}
	if v := strings.TrimSpace(q.BedID); v != "" {
		values.Set("bed_id", v)
	}
	if v := strings.TrimSpace(q.Search); v != "" {
		values.Set("search", v)
	}
	if v := strings.TrimSpace(q.SortBy); v != "" {
		values.Set("sort_by", v)
		dir := q.SortDir
		if !dir.IsValid() {
			dir = enums.SortAsc
		}
		values.Set("sort_dir", dir.String())
	}
	return values
}

// Header renders the per-request header override, if any.
func (q ListQuery) Header() http.Header {
	if strings.TrimSpace(q.ResidenceID) == "" {
		return nil
	}
	header := http.Header{}
	header.Set(headerResidenceID, q.ResidenceID)
	return header
}
