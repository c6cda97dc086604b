package api

import (
	"time"

	"github.com/curanet/careadm/pkg/enums"
)

// User is the authenticated profile returned by the backend.
type User struct {
	ID        string     `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Role      enums.Role `json:"role"`
}

// Residence is the top-level facility unit; root of the hierarchical filter.
type Residence struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Floor belongs to a residence. Rows carry the residence name denormalized
// for display, so listings do not need ancestor lookups.
type Floor struct {
	ID            string    `json:"id"`
	ResidenceID   string    `json:"residence_id"`
	Name          string    `json:"name"`
	ResidenceName string    `json:"residence_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Room belongs to a floor.
type Room struct {
	ID            string    `json:"id"`
	FloorID       string    `json:"floor_id"`
	Name          string    `json:"name"`
	FloorName     string    `json:"floor_name,omitempty"`
	ResidenceName string    `json:"residence_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Bed belongs to a room and may have a resident assigned.
type Bed struct {
	ID            string    `json:"id"`
	RoomID        string    `json:"room_id"`
	Name          string    `json:"name"`
	RoomName      string    `json:"room_name,omitempty"`
	FloorName     string    `json:"floor_name,omitempty"`
	ResidenceName string    `json:"residence_name,omitempty"`
	ResidentID    *string   `json:"resident_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Resident is a person optionally assigned to a bed.
type Resident struct {
	ID            string     `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	BedID         *string    `json:"bed_id,omitempty"`
	BedName       string     `json:"bed_name,omitempty"`
	RoomName      string     `json:"room_name,omitempty"`
	FloorName     string     `json:"floor_name,omitempty"`
	ResidenceName string     `json:"residence_name,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TaskCategory groups task templates.
type TaskCategory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskTemplate is a reusable care-task definition.
type TaskTemplate struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StaffMember is a manager or professional account scoped to residences.
type StaffMember struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Role         enums.Role `json:"role"`
	ResidenceIDs []string   `json:"residence_ids,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
