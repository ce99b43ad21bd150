// config/security_config.go
package config

import "carsharing-backend/internal/domain"

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointPolicy describes who may call a route. An empty Roles list admits
// any authenticated user.
type EndpointPolicy struct {
	Level SecurityLevel
	Roles []domain.Role
}

var (
	public        = EndpointPolicy{Level: SecurityPublic}
	authenticated = EndpointPolicy{Level: SecurityAccess}
	managerOnly   = EndpointPolicy{Level: SecurityAccess, Roles: []domain.Role{domain.RoleManager}}
	anyRole       = EndpointPolicy{Level: SecurityAccess, Roles: []domain.Role{domain.RoleManager, domain.RoleCustomer}}
)

// EndpointSecurityConfig maps "METHOD path-template" to its policy. Routes
// missing from the table are rejected.
var EndpointSecurityConfig = map[string]EndpointPolicy{
	// Auth - Public
	"POST /auth/register": public,
	"POST /auth/login":    public,

	// Cars
	"POST /cars":        managerOnly,
	"GET /cars":         anyRole,
	"GET /cars/{id}":    anyRole,
	"PUT /cars/{id}":    managerOnly,
	"DELETE /cars/{id}": anyRole,

	// Rentals
	"POST /rentals":             anyRole,
	"GET /rentals":              managerOnly,
	"GET /rentals/{id}":         managerOnly,
	"POST /rentals/{id}/return": anyRole,

	// Payments
	"POST /payments":                    anyRole,
	"GET /payments":                     managerOnly,
	"GET /payments/success/{sessionId}": anyRole,
	"GET /payments/cancel/{sessionId}":  anyRole,

	// Users
	"PUT /users/{id}/role": managerOnly,
	"GET /users/me":        authenticated,
	"PUT /users/me":        authenticated,
}

// GetPolicy returns the policy for a route; unknown routes are denied.
func GetPolicy(method, pathTemplate string) (EndpointPolicy, bool) {
	p, ok := EndpointSecurityConfig[method+" "+pathTemplate]
	return p, ok
}

// Allows reports whether role satisfies the policy.
func (p EndpointPolicy) Allows(role domain.Role) bool {
	if len(p.Roles) == 0 {
		return true
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
