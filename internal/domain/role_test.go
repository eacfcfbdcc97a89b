package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		raw    string
		want   Role
		wantOK bool
	}{
		{"admin", RoleAdmin, true},
		{"ADMIN", RoleAdmin, true},
		{"merchant", RoleMerchant, true},
		{"Mer", RoleMerchant, true},
		{"owner", RoleWarehouseOwner, true},
		{"warehouse_owner", RoleWarehouseOwner, true},
		{"Warehouse-Owner", RoleWarehouseOwner, true},
		{"auditor", Role("AUDITOR"), true},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := NormalizeRole(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserRolesFromMixedShapes(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":5,"role":"owner","roles":["merchant",7,null,"OWNER","admin"]}`), &u))

	assert.Equal(t, ID("5"), u.ID)
	assert.Equal(t, []Role{RoleWarehouseOwner, RoleMerchant, RoleAdmin}, u.NormalizedRoles())

	primary, ok := u.PrimaryRole()
	assert.True(t, ok)
	assert.Equal(t, RoleWarehouseOwner, primary)
	assert.Equal(t, PathOwnerDashboard, RoleHome(&u))
}

func TestUserRolesAsSingleString(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"role":42,"roles":"mer"}`), &u))
	assert.Equal(t, []Role{RoleMerchant}, u.NormalizedRoles())
	assert.True(t, u.HasRole("merchant"))
	assert.False(t, u.HasRole("admin"))
}

func TestNilUserHasNoRoles(t *testing.T) {
	var u *User
	assert.Nil(t, u.NormalizedRoles())
	assert.False(t, u.HasRole("admin"))
	assert.False(t, u.HasAnyRole(RoleAdmin, RoleMerchant))
	assert.Equal(t, PathHome, RoleHome(u))
}

func TestRoleHome(t *testing.T) {
	assert.Equal(t, PathAdminDashboard, RoleHome(&User{Role: "admin"}))
	assert.Equal(t, PathMerchantDashboard, RoleHome(&User{Roles: []string{"merchant", "admin"}}))
	assert.Equal(t, PathHome, RoleHome(&User{Role: "auditor"}))
}

func TestHasRoleEmptyInput(t *testing.T) {
	u := &User{Role: "admin"}
	assert.False(t, u.HasRole(""))
}

func TestListingEditPath(t *testing.T) {
	assert.Equal(t, "/dashboard/owner/listings/41/edit", ListingEditPath("41"))
}

func TestIsWizardPath(t *testing.T) {
	assert.True(t, IsWizardPath(PathAddListing))
	assert.True(t, IsWizardPath(ListingEditPath("41")))
	assert.False(t, IsWizardPath("/dashboard/owner/listings//edit"))
	assert.False(t, IsWizardPath("/dashboard/owner/listings/41"))
	assert.False(t, IsWizardPath(PathOwnerDashboard))
}
