package domain

// Session holds the bearer token and profile for one client.
// A user is only meaningful alongside a token; a token may exist while the
// profile is still being fetched.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Valid reports whether the session honours the token/user invariant.
func (s Session) Valid() bool {
	return s.User == nil || s.Token != ""
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Credentials are the login form fields.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up form.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Roles    []Role `json:"roles"`
}
