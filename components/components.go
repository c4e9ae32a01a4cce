// Package components defines ECS components for the simulation.
package components

// Role determines whether a helper can lyse bacteria on its own.
type Role uint8

const (
	RoleSwarmer Role = iota // Pressures and orbits bacteria, never lyses
	RoleStriker             // May lyse a bacterium in strike range, gated by cooldown
)

// String returns the display name for a Role.
func (r Role) String() string {
	names := RoleNames()
	if int(r) < len(names) {
		return names[r]
	}
	return "Unknown"
}

// RoleNames returns the display names for all roles.
// The order matches the Role constants.
func RoleNames() []string {
	return []string{"swarmer", "striker"}
}
