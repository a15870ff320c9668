package user

type Permission string

const (
	// Leave Management
	PermissionLeaveViewOwn       Permission = "leave.view_own"
	PermissionLeaveCreate        Permission = "leave.create"
	PermissionLeaveViewAll       Permission = "leave.view_all"
	PermissionLeaveApprove       Permission = "leave.approve"
	PermissionLeaveDelete        Permission = "leave.delete"
	PermissionLeaveManageBalance Permission = "leave.manage_balance"

	// Staff records
	PermissionUserViewAll    Permission = "user.view_all"
	PermissionUserManage     Permission = "user.manage"
	PermissionDepartmentView Permission = "department.view"
	PermissionDepartmentEdit Permission = "department.manage"
	PermissionJobViewAll     Permission = "job.view_all"
	PermissionJobManage      Permission = "job.manage"

	// Payroll
	PermissionFinancialViewAll Permission = "financial.view_all"
	PermissionFinancialManage  Permission = "financial.manage"

	// Certificates
	PermissionCertificateViewAll Permission = "certificate.view_all"
	PermissionCertificateManage  Permission = "certificate.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionLeaveDelete,
		PermissionLeaveManageBalance,
		PermissionUserViewAll,
		PermissionUserManage,
		PermissionDepartmentView,
		PermissionDepartmentEdit,
		PermissionJobViewAll,
		PermissionJobManage,
		PermissionFinancialViewAll,
		PermissionFinancialManage,
		PermissionCertificateViewAll,
		PermissionCertificateManage,
	},
	RoleManager: {
		// Manager approves leave and views staff data
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionUserViewAll,
		PermissionDepartmentView,
		PermissionJobViewAll,
		PermissionCertificateViewAll,
	},
	RoleEmployee: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionDepartmentView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
