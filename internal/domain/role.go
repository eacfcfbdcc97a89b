package domain

import "strings"

// Role is a canonical marketplace role.
type Role string

// Canonical roles.
const (
	RoleAdmin          Role = "ADMIN"
	RoleMerchant       Role = "MERCHANT"
	RoleWarehouseOwner Role = "WAREHOUSE_OWNER"
)

// Well-known front end routes.
const (
	PathHome              = "/"
	PathLogin             = "/login"
	PathRegister          = "/register"
	PathSearch            = "/search"
	PathAdminDashboard    = "/admin/dashboard"
	PathMerchantDashboard = "/merchant/dashboard"
	PathOwnerDashboard    = "/owner/dashboard"
	PathAddListing        = "/dashboard/owner/add"
)

var roleHome = map[Role]string{
	RoleAdmin:          PathAdminDashboard,
	RoleMerchant:       PathMerchantDashboard,
	RoleWarehouseOwner: PathOwnerDashboard,
}

// NormalizeRole maps any historical role spelling to its canonical form.
// Unknown non-empty strings are upper-cased and kept. The second return
// value is false for empty input.
func NormalizeRole(raw string) (Role, bool) {
	if raw == "" {
		return "", false
	}
	switch strings.ToLower(raw) {
	case "admin":
		return RoleAdmin, true
	case "merchant", "mer":
		return RoleMerchant, true
	case "owner", "warehouse_owner", "warehouse-owner":
		return RoleWarehouseOwner, true
	}
	return Role(strings.ToUpper(raw)), true
}

// ListingEditPath is the wizard route for an existing draft.
func ListingEditPath(id ID) string {
	return "/dashboard/owner/listings/" + id.String() + "/edit"
}

// IsWizardPath reports whether path is one of the listing wizard's pages.
func IsWizardPath(path string) bool {
	if path == PathAddListing {
		return true
	}
	rest, ok := strings.CutPrefix(path, "/dashboard/owner/listings/")
	if !ok {
		return false
	}
	id, ok := strings.CutSuffix(rest, "/edit")
	return ok && id != "" && !strings.Contains(id, "/")
}
