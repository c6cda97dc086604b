package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/curanet/careadm/internal/guard"
	"github.com/curanet/careadm/pkg/enums"
)

type fakeSession struct {
	authed bool
	role   enums.Role
}

func (f fakeSession) IsAuthenticated() bool { return f.authed }
func (f fakeSession) Role() enums.Role      { return f.role }

type fakeGate struct {
	needs bool
}

func (f fakeGate) NeedsSelection(enums.Role) bool { return f.needs }

func TestRoute(t *testing.T) {
	const browser = guard.Screen("residents")

	tests := []struct {
		name    string
		session fakeSession
		gate    fakeGate
		target  guard.Screen
		want    guard.Screen
	}{
		{
			name:    "unauthenticated lands on login",
			session: fakeSession{authed: false},
			target:  browser,
			want:    guard.ScreenLogin,
		},
		{
			name:    "unauthenticated picker attempt lands on login",
			session: fakeSession{authed: false},
			target:  guard.ScreenPicker,
			want:    guard.ScreenLogin,
		},
		{
			name:    "login target always allowed",
			session: fakeSession{authed: true, role: enums.RoleManager},
			gate:    fakeGate{needs: true},
			target:  guard.ScreenLogin,
			want:    guard.ScreenLogin,
		},
		{
			name:    "selection pending detours to picker",
			session: fakeSession{authed: true, role: enums.RoleManager},
			gate:    fakeGate{needs: true},
			target:  browser,
			want:    guard.ScreenPicker,
		},
		{
			name:    "picker itself passes while selection pending",
			session: fakeSession{authed: true, role: enums.RoleManager},
			gate:    fakeGate{needs: true},
			target:  guard.ScreenPicker,
			want:    guard.ScreenPicker,
		},
		{
			name:    "selection satisfied reaches target",
			session: fakeSession{authed: true, role: enums.RoleProfessional},
			gate:    fakeGate{needs: false},
			target:  browser,
			want:    browser,
		},
		{
			name:    "superadmin with gate closed reaches target",
			session: fakeSession{authed: true, role: enums.RoleSuperAdmin},
			gate:    fakeGate{needs: false},
			target:  browser,
			want:    browser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := guard.Route(tt.session, tt.gate, tt.target)
			assert.Equal(t, tt.want, got)
		})
	}
}
