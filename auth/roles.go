package auth

// Role is the trusted role string carried in the JWT. The core does not
// verify it against the identity store again; callers own that.
type Role string

const (
	RoleManager  Role = "manager"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleManager, RoleStaff, RoleCustomer:
		return Role(s), true
	}
	return "", false
}

// Capability predicates. Controllers ask these instead of comparing role
// strings at every call site.

// CanApproveReservation -> staff and managers work the reservation queue.
func (r Role) CanApproveReservation() bool {
	return r == RoleManager || r == RoleStaff
}

// CanManageTables -> create, rename and delete tables.
func (r Role) CanManageTables() bool {
	return r == RoleManager || r == RoleStaff
}

// CanManageUsers -> list users and change roles.
func (r Role) CanManageUsers() bool {
	return r == RoleManager
}

// CanEditMenu -> dish and category CRUD.
func (r Role) CanEditMenu() bool {
	return r == RoleManager || r == RoleStaff
}

// CanViewStats -> revenue statistics and charts.
func (r Role) CanViewStats() bool {
	return r == RoleManager
}

// CanApproveInvoice -> bookkeeping approval of paid invoices.
func (r Role) CanApproveInvoice() bool {
	return r == RoleManager || r == RoleStaff
}

// CanReserveTable -> customers place reservations for themselves.
func (r Role) CanReserveTable() bool {
	return r == RoleCustomer
}
