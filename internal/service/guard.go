package service

import "github.com/Beawareofme/warehouse-frontend/internal/domain"

// Denial says why a guard refused a route.
type Denial string

const (
	DenyNone            Denial = ""
	DenyUnauthenticated Denial = "unauthenticated"
	DenyForbidden       Denial = "forbidden"
)

// Decision is the outcome of a route guard.
type Decision struct {
	Allow    bool
	Redirect string
	Reason   Denial
}

// RequireAuth admits any client holding a token.
func RequireAuth(state SessionState) Decision {
	if !state.Authenticated() {
		return Decision{Redirect: domain.PathLogin, Reason: DenyUnauthenticated}
	}
	return Decision{Allow: true}
}

// RequireRole admits clients with a token whose profile holds one of the
// allowed roles. Other signed-in clients are sent home.
func RequireRole(state SessionState, allowed ...domain.Role) Decision {
	if d := RequireAuth(state); !d.Allow {
		return d
	}
	if state.User.HasAnyRole(allowed...) {
		return Decision{Allow: true}
	}
	return Decision{Redirect: domain.PathHome, Reason: DenyForbidden}
}
