package auth

// Role is carried in the "role" claim of every access token.
type Role string

const (
	RoleAdmin   Role = "admin"   // HR administration
	RoleScanner Role = "scanner" // gate/scanner device
	RoleViewer  Role = "viewer"  // dashboards only
)

// TokenType is carried in the "type" claim.
type TokenType string

const (
	TokenTypeAccess TokenType = "access"
	TokenTypeSSE    TokenType = "sse"
)

type Permission string

const (
	PermissionAttendanceScan   Permission = "attendance.scan"
	PermissionAttendanceView   Permission = "attendance.view"
	PermissionCredentialIssue  Permission = "credential.issue"
	PermissionMonitoringView   Permission = "monitoring.view"
	PermissionMonitoringManage Permission = "monitoring.manage"
	PermissionEventsSubscribe  Permission = "events.subscribe"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceScan,
		PermissionAttendanceView,
		PermissionCredentialIssue,
		PermissionMonitoringView,
		PermissionMonitoringManage,
		PermissionEventsSubscribe,
	},
	RoleScanner: {
		PermissionAttendanceScan,
	},
	RoleViewer: {
		PermissionAttendanceView,
		PermissionMonitoringView,
		PermissionEventsSubscribe,
	},
}

// ParseRole returns the role and whether it is known.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := RolePermissions[r]
	return r, ok
}

// HasPermission reports whether role grants p.
func (r Role) HasPermission(p Permission) bool {
	for _, granted := range RolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}
