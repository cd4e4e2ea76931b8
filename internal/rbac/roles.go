package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts.
const (
	RoleFieldRep     = "field_rep"
	RoleSalesManager = "sales_manager"
	RoleAdmin        = "admin"
	RoleSuperAdmin   = "super_admin"
	RoleOpsSupport   = "ops_support" // hidden role
)

func IsSuperAdmin(role string) bool { return role == RoleSuperAdmin }

func IsHiddenRole(role string) bool { return role == RoleOpsSupport }
