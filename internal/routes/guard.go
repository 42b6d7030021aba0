// ABOUTME: Pure route-guard policy for the dashboard sections
// ABOUTME: Decides allow or redirect from the current user, loading flag, and path

package routes

import (
	"strings"

	"github.com/egl-devs/cyrlab-admin/internal/client"
)

// Section paths. These mirror the web dashboard's routes.
const (
	PathLogin           = "/login"
	PathDashboard       = "/dashboard"
	PathPedidos         = "/pedidos"
	PathMantenimientos  = "/mantenimientos"
	PathVisitas         = "/visitas"
	PathUsuarios        = "/usuarios"
	PathReportes        = "/reportes"
	PathCatalogos       = "/catalogos"
	PathProductos       = "/catalogos/productos"
)

// adminOnlyPrefixes are the sections (and their sub-paths) restricted to the
// Admin role.
var adminOnlyPrefixes = []string{PathUsuarios, PathReportes, PathCatalogos}

// Decision is the guard outcome: either allow, or redirect to a target path.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Decide applies the guard policy in order, first match wins:
//  1. while the session is loading, allow (render a loading indicator)
//  2. no user → redirect to the login screen
//  3. admin-restricted path without the Admin role → redirect home
//  4. otherwise allow
//
// Callers must re-evaluate whenever the user, the loading flag, or the path
// changes. This is a UX convenience only; the remote API enforces
// authorization on every request.
func Decide(user *client.User, isLoading bool, path string) Decision {
	if isLoading {
		return Decision{Allow: true}
	}
	if user == nil {
		return Decision{RedirectTo: PathLogin}
	}
	if IsAdminOnly(path) && !user.HasRole(client.RoleAdmin) {
		return Decision{RedirectTo: PathDashboard}
	}
	return Decision{Allow: true}
}

// IsAdminOnly reports whether the path falls under an admin-restricted
// prefix.
func IsAdminOnly(path string) bool {
	for _, prefix := range adminOnlyPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
