package enums

// StaffRole identifies the back-office role carried in access tokens.
type StaffRole string

const (
	StaffRoleAdmin StaffRole = "admin"
	StaffRoleStaff StaffRole = "staff"
)

var validStaffRoles = map[StaffRole]struct{}{
	StaffRoleAdmin: {},
	StaffRoleStaff: {},
}

func (r StaffRole) String() string {
	return string(r)
}

// IsValid reports whether the role is one of the known values.
func (r StaffRole) IsValid() bool {
	_, ok := validStaffRoles[r]
	return ok
}
