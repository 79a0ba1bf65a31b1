package engine

import (
	"fmt"
	"strings"
)

// Role identifies the five concealed card types.
type Role int

const (
	RoleLord      Role = 1
	RoleBandit    Role = 2
	RoleMercenary Role = 3
	RoleMedic     Role = 4
	RoleDiplomat  Role = 5
)

var roleNames = map[Role]string{
	RoleLord:      "Lord",
	RoleBandit:    "Bandit",
	RoleMercenary: "Mercenary",
	RoleMedic:     "Medic",
	RoleDiplomat:  "Diplomat",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "Unknown"
}

// MarshalText lets roles travel as names in JSON views.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ParseRole is the inverse of Role.String. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if strings.EqualFold(name, s) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// AllRoles returns the five roles in order.
func AllRoles() []Role {
	return []Role{RoleLord, RoleBandit, RoleMercenary, RoleMedic, RoleDiplomat}
}

// roleEnables is the legitimacy table consulted when a claim is challenged.
var roleEnables = map[Role][]ActionKind{
	RoleLord:      {ActionTithe, ActionBlockDonations},
	RoleBandit:    {ActionMug, ActionBlockMug},
	RoleMercenary: {ActionMurder},
	RoleMedic:     {ActionBlockMurder},
	RoleDiplomat:  {ActionDiplomacy, ActionBlockMug},
}

// Legitimizes reports whether holding r entitles a player to perform kind.
func (r Role) Legitimizes(kind ActionKind) bool {
	for _, k := range roleEnables[r] {
		if k == kind {
			return true
		}
	}
	return false
}

// Enables returns the action kinds r legitimizes.
func (r Role) Enables() []ActionKind {
	out := make([]ActionKind, len(roleEnables[r]))
	copy(out, roleEnables[r])
	return out
}

// RolesFor returns every role that legitimizes kind.
func RolesFor(kind ActionKind) []Role {
	var out []Role
	for _, r := range AllRoles() {
		if r.Legitimizes(kind) {
			out = append(out, r)
		}
	}
	return out
}

func roleStrings(roles []Role) []string {
	s := make([]string, len(roles))
	for i, r := range roles {
		s[i] = r.String()
	}
	return s
}
