package console

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/curanet/careadm/internal/api"
	"github.com/curanet/careadm/internal/listing"
)

// entityKind selects which backend collection the browser screen lists.
type entityKind int

const (
	entityResidents entityKind = iota
	entityBeds
	entityTemplates
	entityManagers
	entityProfessionals
)

var entityOrder = []entityKind{
	entityResidents,
	entityBeds,
	entityTemplates,
	entityManagers,
	entityProfessionals,
}

func (e entityKind) title() string {
	switch e {
	case entityResidents:
		return "Residents"
	case entityBeds:
		return "Beds"
	case entityTemplates:
		return "Task Templates"
	case entityManagers:
		return "Managers"
	case entityProfessionals:
		return "Professionals"
	}
	return "Unknown"
}

// scopedParent names the filter level whose selection switches the entity
// to its dedicated parent-scoped endpoint. Beds have one: picking a room
// lists that room's beds without pagination.
func (e entityKind) scopedParent() *listing.Level {
	if e == entityBeds {
		level := listing.LevelRoom
		return &level
	}
	return nil
}

// filterDepth is the deepest filter level meaningful for the entity. The
// bed filter only applies to residents; beds themselves stop at room.
func (e entityKind) filterDepth() listing.Level {
	switch e {
	case entityResidents:
		return listing.LevelBed
	case entityBeds:
		return listing.LevelRoom
	default:
		return listing.LevelResidence
	}
}

func (e entityKind) columns(width int) []table.Column {
	name := width / 3
	if name < 16 {
		name = 16
	}
	rest := (width - name) / 3
	if rest < 10 {
		rest = 10
	}
	switch e {
	case entityResidents:
		return []table.Column{
			{Title: "Name", Width: name},
			{Title: "Bed", Width: rest},
			{Title: "Room", Width: rest},
			{Title: "Floor", Width: rest},
		}
	case entityBeds:
		return []table.Column{
			{Title: "Bed", Width: name},
			{Title: "Room", Width: rest},
			{Title: "Floor", Width: rest},
			{Title: "Occupied", Width: rest},
		}
	case entityTemplates:
		return []table.Column{
			{Title: "Name", Width: name},
			{Title: "Category", Width: rest},
			{Title: "Description", Width: rest * 2},
		}
	default:
		return []table.Column{
			{Title: "Name", Width: name},
			{Title: "Email", Width: rest * 2},
			{Title: "Residences", Width: rest},
		}
	}
}

func residentRow(r api.Resident) table.Row {
	return table.Row{fullName(r.FirstName, r.LastName), r.BedName, r.RoomName, r.FloorName}
}

func bedRow(b api.Bed) table.Row {
	occupied := "no"
	if b.ResidentID != nil {
		occupied = "yes"
	}
	return table.Row{b.Name, b.RoomName, b.FloorName, occupied}
}

func templateRow(t api.TaskTemplate) table.Row {
	return table.Row{t.Name, t.CategoryName, t.Description}
}

func staffRow(s api.StaffMember) table.Row {
	scope := "all"
	if len(s.ResidenceIDs) > 0 {
		scope = strconv.Itoa(len(s.ResidenceIDs))
	}
	return table.Row{fullName(s.FirstName, s.LastName), s.Email, scope}
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
