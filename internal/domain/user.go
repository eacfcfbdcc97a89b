package domain

import (
	"bytes"
	"encoding/json"
)

// User is the profile returned by the marketplace API.
//
// Role is the legacy single-role field, Roles the current list. Older
// accounts may carry either, both, or values of the wrong JSON type;
// decoding keeps only string values.
type User struct {
	ID    ID       `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  string   `json:"role,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// UnmarshalJSON tolerates the historical shapes of role and roles.
func (u *User) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID    ID              `json:"id"`
		Name  string          `json:"name"`
		Email string          `json:"email"`
		Role  json.RawMessage `json:"role"`
		Roles json.RawMessage `json:"roles"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	u.ID = raw.ID
	u.Name = raw.Name
	u.Email = raw.Email
	u.Role = rawString(raw.Role)
	u.Roles = rawStrings(raw.Roles)
	return nil
}

// NormalizedRoles returns the user's canonical roles, legacy role first,
// without duplicates and in first-seen order.
func (u *User) NormalizedRoles() []Role {
	if u == nil {
		return nil
	}
	raw := make([]string, 0, len(u.Roles)+1)
	if u.Role != "" {
		raw = append(raw, u.Role)
	}
	raw = append(raw, u.Roles...)

	seen := make(map[Role]bool, len(raw))
	out := make([]Role, 0, len(raw))
	for _, r := range raw {
		role, ok := NormalizeRole(r)
		if !ok || seen[role] {
			continue
		}
		seen[role] = true
		out = append(out, role)
	}
	return out
}

// HasRole reports whether the user holds role, compared in normalized form.
func (u *User) HasRole(role string) bool {
	want, ok := NormalizeRole(role)
	if !ok {
		return false
	}
	for _, r := range u.NormalizedRoles() {
		if r == want {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user holds at least one of roles.
func (u *User) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if u.HasRole(string(r)) {
			return true
		}
	}
	return false
}

// PrimaryRole is the first normalized role.
func (u *User) PrimaryRole() (Role, bool) {
	roles := u.NormalizedRoles()
	if len(roles) == 0 {
		return "", false
	}
	return roles[0], true
}

// RoleHome resolves the landing route for the user's primary role,
// falling back to the public home page.
func RoleHome(u *User) string {
	role, ok := u.PrimaryRole()
	if !ok {
		return PathHome
	}
	if path, ok := roleHome[role]; ok {
		return path
	}
	return PathHome
}

func rawString(b json.RawMessage) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '"' {
		return ""
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ""
	}
	return s
}

func rawStrings(b json.RawMessage) []string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		if s := rawString(b); s != "" {
			return []string{s}
		}
		return nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(b, &items); err != nil {
			return nil
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s := rawString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
