package rbac

import "api/internal/models"

var roleRank = map[models.Role]int{
	models.RoleGuest: 0,
	models.RoleUser:  1,
	models.RoleAdmin: 2,
}

// HasRole reports whether userRole satisfies requiredRole, hierarchically
// (Admin > User > Guest).
func HasRole(userRole, requiredRole models.Role) bool {
	userRank, ok := roleRank[userRole]
	if !ok {
		return false
	}
	requiredRank, ok := roleRank[requiredRole]
	if !ok {
		return false
	}
	return userRank >= requiredRank
}
