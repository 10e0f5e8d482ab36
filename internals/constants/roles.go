package constants

// Roles stored on the users table and carried in JWT claims.
// PARENT can only touch children linked through a relationship.
// STAFF is scoped to one kindergarten via its staff profile.
// BOSS is a staff profile with ownership rights over its kindergarten.
const (
	RoleParent = "PARENT"
	RoleStaff  = "STAFF"
	RoleBoss   = "BOSS"
)

// Person types recorded on check-in/out rows and absence reports.
const (
	PersonTypeParent = "PARENT"
	PersonTypeStaff  = "STAFF"
	PersonTypeOther  = "OTHER"
)

var AllRoles = []string{RoleParent, RoleStaff, RoleBoss}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
