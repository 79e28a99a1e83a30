package role

import "strings"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full directory management access
	RoleSUL      Role = "sul"      // Supervisor/lead ("pl" is a legacy alias)
	RoleCX       Role = "cx"       // Customer experience team
	RoleEmployee Role = "employee" // Default/fallback
)

// priority is the first-match-wins resolution order.
var priority = []Role{RoleAdmin, RoleSUL, RoleCX, RoleEmployee}

// normalize maps a raw role tag to a member of the closed role set,
// or "" when the tag is unrecognized.
func normalize(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin
	case "sul", "pl":
		return RoleSUL
	case "cx":
		return RoleCX
	case "employee":
		return RoleEmployee
	}
	return ""
}

// Effective derives the single role used for routing and UI gating from a raw
// roles collection. Matching is case-insensitive and first-match-wins in
// priority order admin > sul > cx > employee. An empty, nil, or entirely
// unrecognized collection resolves to employee; the function is total and
// never fails.
func Effective(raw []string) Role {
	present := make(map[Role]bool, len(raw))
	for _, r := range raw {
		if n := normalize(r); n != "" {
			present[n] = true
		}
	}
	for _, r := range priority {
		if present[r] {
			return r
		}
	}
	return RoleEmployee
}

// NavItem is a single navigation entry for the role's dashboard.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Destination is the initial route and navigation link set for a role.
type Destination struct {
	InitialRoute string    `json:"initial_route"`
	Nav          []NavItem `json:"nav"`
}

// One navigation table instead of per-role navbar variants.
var destinations = map[Role]Destination{
	RoleAdmin: {
		InitialRoute: "/admin",
		Nav: []NavItem{
			{Label: "Dashboard", Path: "/admin"},
			{Label: "Approvals", Path: "/admin/approvals"},
			{Label: "Leave Tracker", Path: "/admin/leave-tracker"},
			{Label: "Masterlist", Path: "/admin/masterlist"},
		},
	},
	RoleSUL: {
		InitialRoute: "/sul",
		Nav: []NavItem{
			{Label: "Dashboard", Path: "/sul"},
			{Label: "Teams", Path: "/sul/teams"},
		},
	},
	RoleCX: {
		InitialRoute: "/cx",
		Nav: []NavItem{
			{Label: "Dashboard", Path: "/cx"},
			{Label: "Teams", Path: "/cx/teams"},
		},
	},
	RoleEmployee: {
		InitialRoute: "/dashboard",
		Nav: []NavItem{
			{Label: "Dashboard", Path: "/dashboard"},
			{Label: "Calendar", Path: "/dashboard/calendar"},
			{Label: "My Requests", Path: "/dashboard/requests"},
		},
	},
}

// RouteFor maps a role to its dashboard destination. Total: anything outside
// the closed set falls back to the employee destination.
func RouteFor(r Role) Destination {
	if d, ok := destinations[r]; ok {
		return d
	}
	return destinations[RoleEmployee]
}
