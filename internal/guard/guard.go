// Package guard decides where a navigation attempt actually lands. It is
// consulted on every screen change: an unauthenticated session is sent to
// the login surface and a session without the required residence context
// detours through the picker.
package guard

import "github.com/curanet/careadm/pkg/enums"

// Screen names a navigable console surface.
type Screen string

const (
	ScreenLogin  Screen = "login"
	ScreenPicker Screen = "residence-picker"
)

// Session is the slice of the session holder the guard reads.
type Session interface {
	IsAuthenticated() bool
	Role() enums.Role
}

// Gate is the slice of the residence context the guard reads.
type Gate interface {
	NeedsSelection(role enums.Role) bool
}

// Route returns the screen a navigation to target actually reaches.
func Route(session Session, gate Gate, target Screen) Screen {
	if target == ScreenLogin {
		return ScreenLogin
	}
	if !session.IsAuthenticated() {
		return ScreenLogin
	}
	if target != ScreenPicker && gate.NeedsSelection(session.Role()) {
		return ScreenPicker
	}
	return target
}
