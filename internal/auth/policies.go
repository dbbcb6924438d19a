package auth

import (
	"college-site/internal/logger"
	"fmt"

	"github.com/casbin/casbin/v2"
)

// Subjects the enforcer knows. A request with a signed-in admin in its
// session is RoleAdmin; every other request is RoleAnonymous.
const (
	RoleAnonymous = "anonymous"
	RoleAdmin     = "admin"
)

// DefaultPolicies are the rules for the admin console. Public pages are
// served outside the gate.
var DefaultPolicies = [][]string{
	// Anonymous users can reach the sign-in, sign-up and single sign-on routes.
	{RoleAnonymous, "/admin/auth", "GET|POST"},
	{RoleAnonymous, "/admin/auth/*", "GET|POST"},

	// Admins can use the whole console.
	{RoleAdmin, "/admin", "GET|POST"},
	{RoleAdmin, "/admin/*", "GET|POST"},
}

// SeedDefaultPolicies ensures that the application has a baseline set of authorization rules.
// It checks if each default policy exists before adding it, making the operation idempotent
// and safe to run on every application start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	for _, p := range DefaultPolicies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	// Admins can do everything anonymous users can.
	if has, _ := e.HasRoleForUser(RoleAdmin, RoleAnonymous); !has {
		if _, err := e.AddRoleForUser(RoleAdmin, RoleAnonymous); err != nil {
			log.Error(err, "Failed to add role 'admin' -> 'anonymous'")
		}
	}
	log.Info("Policy seeding complete.")
}
