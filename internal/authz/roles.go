package authz

const (
	RoleAgent      = 10
	RoleSupervisor = 20
	RoleAdmin      = 50
)

func IsKnownRole(roleID int) bool {
	switch roleID {
	case RoleAgent, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// IsElevated reports whether the role may see and manage every agent's work.
func IsElevated(roleID int) bool {
	return roleID == RoleSupervisor || roleID == RoleAdmin
}

func RoleName(roleID int) string {
	switch roleID {
	case RoleAgent:
		return "agent"
	case RoleSupervisor:
		return "supervisor"
	case RoleAdmin:
		return "admin"
	}
	return "unknown"
}
