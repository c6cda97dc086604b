package console

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/curanet/careadm/internal/api"
	"github.com/curanet/careadm/internal/listing"
	"github.com/curanet/careadm/pkg/types"
)

// backend is the slice of the API client the console fetches through.
type backend interface {
	VisibleResidences(ctx context.Context) ([]api.Residence, error)
	FloorsByResidence(ctx context.Context, residenceID string) ([]api.Floor, error)
	RoomsByFloor(ctx context.Context, floorID string) ([]api.Room, error)
	BedsByRoom(ctx context.Context, roomID string) ([]api.Bed, error)
	ListBeds(ctx context.Context, q api.ListQuery) (types.Page[api.Bed], error)
	ListResidents(ctx context.Context, q api.ListQuery) (types.Page[api.Resident], error)
	ListTaskTemplates(ctx context.Context, q api.ListQuery) (types.Page[api.TaskTemplate], error)
	ListManagers(ctx context.Context, q api.ListQuery) (types.Page[api.StaffMember], error)
	ListProfessionals(ctx context.Context, q api.ListQuery) (types.Page[api.StaffMember], error)
	DeleteResident(ctx context.Context, id string) error
	DeleteBed(ctx context.Context, id string) error
	DeleteTaskTemplate(ctx context.Context, id string) error
	DeleteManager(ctx context.Context, id string) error
	DeleteProfessional(ctx context.Context, id string) error
}

func (m *Model) loginCmd(email, password string) tea.Cmd {
	holder := m.session
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		err := holder.Login(ctx, api.LoginInput{Email: email, Password: password})
		return loginResultMsg{err: err}
	}
}

func (m *Model) reconcileCmd() tea.Cmd {
	holder := m.session
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return profileMsg{err: holder.Reconcile(ctx)}
	}
}

func (m *Model) loadResidencesCmd() tea.Cmd {
	resCtx := m.residence
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return residencesLoadedMsg{err: resCtx.Load(ctx)}
	}
}

func (m *Model) selectResidenceCmd(id string) tea.Cmd {
	resCtx := m.residence
	return func() tea.Msg {
		return residenceSelectedMsg{err: resCtx.Select(id)}
	}
}

// runRequests turns the fetch requests emitted by a controller mutation
// into commands. Each one comes back as an optionsMsg or listingMsg
// tagged with the request's generation.
func (m *Model) runRequests(kind entityKind, reqs []listing.Request) tea.Cmd {
	if len(reqs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, req := range reqs {
		if req.Concern == listing.ConcernListing {
			cmds = append(cmds, m.fetchListing(kind, req))
		} else {
			cmds = append(cmds, m.fetchOptions(kind, req))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) fetchOptions(kind entityKind, req listing.Request) tea.Cmd {
	be := m.backend
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		var opts []listing.Option
		var err error
		switch req.Concern {
		case listing.ConcernResidences:
			var rows []api.Residence
			if rows, err = be.VisibleResidences(ctx); err == nil {
				opts = make([]listing.Option, 0, len(rows))
				for _, r := range rows {
					opts = append(opts, listing.Option{ID: r.ID, Name: r.Name})
				}
			}
		case listing.ConcernFloors:
			var rows []api.Floor
			if rows, err = be.FloorsByResidence(ctx, req.ParentID); err == nil {
				opts = make([]listing.Option, 0, len(rows))
				for _, f := range rows {
					opts = append(opts, listing.Option{ID: f.ID, Name: f.Name})
				}
			}
		case listing.ConcernRooms:
			var rows []api.Room
			if rows, err = be.RoomsByFloor(ctx, req.ParentID); err == nil {
				opts = make([]listing.Option, 0, len(rows))
				for _, r := range rows {
					opts = append(opts, listing.Option{ID: r.ID, Name: r.Name})
				}
			}
		case listing.ConcernBeds:
			var rows []api.Bed
			if rows, err = be.BedsByRoom(ctx, req.ParentID); err == nil {
				opts = make([]listing.Option, 0, len(rows))
				for _, b := range rows {
					opts = append(opts, listing.Option{ID: b.ID, Name: b.Name})
				}
			}
		}
		return optionsMsg{kind: kind, concern: req.Concern, gen: req.Gen, options: opts, err: err}
	}
}

func (m *Model) fetchListing(kind entityKind, req listing.Request) tea.Cmd {
	be := m.backend
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		rows, ids, total, err := fetchRows(ctx, be, kind, req.Query)
		return listingMsg{kind: kind, gen: req.Gen, rows: rows, ids: ids, total: total, err: err}
	}
}

// deleteCmd removes one row through the entity's backend endpoint. The
// result comes back as a mutationMsg so the loop can reload the page.
func (m *Model) deleteCmd(kind entityKind, id string) tea.Cmd {
	be := m.backend
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		var err error
		switch kind {
		case entityResidents:
			err = be.DeleteResident(ctx, id)
		case entityBeds:
			err = be.DeleteBed(ctx, id)
		case entityTemplates:
			err = be.DeleteTaskTemplate(ctx, id)
		case entityManagers:
			err = be.DeleteManager(ctx, id)
		default:
			err = be.DeleteProfessional(ctx, id)
		}
		return mutationMsg{kind: kind, err: err}
	}
}

func fetchRows(ctx context.Context, be backend, kind entityKind, q listing.Query) ([]table.Row, []string, int, error) {
	if q.Scoped {
		beds, err := be.BedsByRoom(ctx, q.ParentID)
		if err != nil {
			return nil, nil, 0, err
		}
		rows, ids := mapRows(beds, bedRow, func(b api.Bed) string { return b.ID })
		return rows, ids, len(beds), nil
	}

	lq := listQueryFrom(q)
	switch kind {
	case entityResidents:
		page, err := be.ListResidents(ctx, lq)
		if err != nil {
			return nil, nil, 0, err
		}
		rows, ids := mapRows(page.Items, residentRow, func(r api.Resident) string { return r.ID })
		return rows, ids, page.Total, nil
	case entityBeds:
		page, err := be.ListBeds(ctx, lq)
		if err != nil {
			return nil, nil, 0, err
		}
		rows, ids := mapRows(page.Items, bedRow, func(b api.Bed) string { return b.ID })
		return rows, ids, page.Total, nil
	case entityTemplates:
		page, err := be.ListTaskTemplates(ctx, lq)
		if err != nil {
			return nil, nil, 0, err
		}
		rows, ids := mapRows(page.Items, templateRow, func(t api.TaskTemplate) string { return t.ID })
		return rows, ids, page.Total, nil
	case entityManagers:
		page, err := be.ListManagers(ctx, lq)
		if err != nil {
			return nil, nil, 0, err
		}
		rows, ids := mapRows(page.Items, staffRow, func(s api.StaffMember) string { return s.ID })
		return rows, ids, page.Total, nil
	default:
		page, err := be.ListProfessionals(ctx, lq)
		if err != nil {
			return nil, nil, 0, err
		}
		rows, ids := mapRows(page.Items, staffRow, func(s api.StaffMember) string { return s.ID })
		return rows, ids, page.Total, nil
	}
}

// listQueryFrom renders a controller query for the generic paginated
// endpoints. The residence filter is never a query parameter: it rides
// the residence header, overriding the persisted selection when set.
func listQueryFrom(q listing.Query) api.ListQuery {
	return api.ListQuery{
		ResidenceID: q.Filters.ResidenceID,
		FloorID:     q.Filters.FloorID,
		RoomID:      q.Filters.RoomID,
		BedID:       q.Filters.BedID,
		Search:      q.Filters.Search,
		SortBy:      q.Filters.SortBy,
		SortDir:     q.Filters.SortDir,
		Page:        q.Page,
		Size:        q.Size,
	}
}

func mapRows[T any](items []T, convert func(T) table.Row, id func(T) string) ([]table.Row, []string) {
	rows := make([]table.Row, 0, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, convert(item))
		ids = append(ids, id(item))
	}
	return rows, ids
}
