package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffective_PriorityOrder(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  Role
	}{
		{"admin wins over employee", []string{"employee", "admin"}, RoleAdmin},
		{"admin wins regardless of order", []string{"admin", "employee"}, RoleAdmin},
		{"admin wins over sul and cx", []string{"cx", "sul", "admin"}, RoleAdmin},
		{"sul wins over cx", []string{"cx", "sul"}, RoleSUL},
		{"sul alone", []string{"sul"}, RoleSUL},
		{"pl is an alias for sul", []string{"pl"}, RoleSUL},
		{"cx alone", []string{"cx"}, RoleCX},
		{"employee alone", []string{"employee"}, RoleEmployee},
		{"empty resolves to employee", []string{}, RoleEmployee},
		{"nil resolves to employee", nil, RoleEmployee},
		{"unknown tags resolve to employee", []string{"superuser", "root"}, RoleEmployee},
		{"case insensitive", []string{"ADMIN"}, RoleAdmin},
		{"mixed case alias", []string{"Pl"}, RoleSUL},
		{"whitespace tolerated", []string{"  admin  "}, RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Effective(tt.roles))
		})
	}
}

func TestRouteFor(t *testing.T) {
	assert.Equal(t, "/admin", RouteFor(RoleAdmin).InitialRoute)
	assert.Equal(t, "/sul", RouteFor(RoleSUL).InitialRoute)
	assert.Equal(t, "/cx", RouteFor(RoleCX).InitialRoute)
	assert.Equal(t, "/dashboard", RouteFor(RoleEmployee).InitialRoute)

	// Total: never panics, unknown values fall back to employee
	assert.Equal(t, "/dashboard", RouteFor(Role("bogus")).InitialRoute)
	assert.Equal(t, "/dashboard", RouteFor(Role("")).InitialRoute)
}

func TestRouteFor_NavIsNonEmpty(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleSUL, RoleCX, RoleEmployee} {
		assert.NotEmpty(t, RouteFor(r).Nav, "role %s has no nav items", r)
	}
}
