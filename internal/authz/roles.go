package authz

const (
	RoleMember    = 10
	RoleOrganizer = 20
	RoleAdmin     = 30
)

func IsElevated(roleID int) bool {
	return roleID == RoleOrganizer || roleID == RoleAdmin
}
