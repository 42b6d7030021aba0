// ABOUTME: Tests for the route-guard decision table
// ABOUTME: Exercises loading, anonymous, admin, and non-admin cases per path

package routes

import (
	"testing"

	"github.com/egl-devs/cyrlab-admin/internal/client"
)

var allPaths = []string{
	PathDashboard,
	PathPedidos,
	PathMantenimientos,
	PathVisitas,
	PathUsuarios,
	PathReportes,
	PathCatalogos,
	PathProductos,
}

var adminPaths = []string{
	PathUsuarios,
	PathReportes,
	PathCatalogos,
	PathProductos,
	"/usuarios/u1",
	"/reportes/ventas",
}

func adminUser() *client.User {
	return &client.User{ID: "u1", UserName: "maria", Roles: []string{"Admin"}}
}

func employeeUser() *client.User {
	return &client.User{ID: "u2", UserName: "pedro", Roles: []string{"Employee"}}
}

func TestLoadingAllowsEverything(t *testing.T) {
	for _, path := range allPaths {
		d := Decide(nil, true, path)
		if !d.Allow {
			t.Errorf("expected allow while loading for %s, got redirect to %s", path, d.RedirectTo)
		}
	}
}

func TestAnonymousRedirectsToLogin(t *testing.T) {
	for _, path := range allPaths {
		d := Decide(nil, false, path)
		if d.Allow {
			t.Errorf("expected redirect for anonymous user on %s", path)
		}
		if d.RedirectTo != PathLogin {
			t.Errorf("expected redirect to %s for %s, got %s", PathLogin, path, d.RedirectTo)
		}
	}
}

func TestNonAdminRedirectedFromRestrictedPaths(t *testing.T) {
	for _, path := range adminPaths {
		d := Decide(employeeUser(), false, path)
		if d.Allow {
			t.Errorf("expected redirect for non-admin on %s", path)
		}
		if d.RedirectTo != PathDashboard {
			t.Errorf("expected redirect to %s for %s, got %s", PathDashboard, path, d.RedirectTo)
		}
	}
}

func TestAdminAllowedOnRestrictedPaths(t *testing.T) {
	for _, path := range adminPaths {
		d := Decide(adminUser(), false, path)
		if !d.Allow {
			t.Errorf("expected allow for admin on %s, got redirect to %s", path, d.RedirectTo)
		}
	}
}

func TestNonAdminAllowedOnOpenPaths(t *testing.T) {
	for _, path := range []string{PathDashboard, PathPedidos, PathMantenimientos, PathVisitas} {
		d := Decide(employeeUser(), false, path)
		if !d.Allow {
			t.Errorf("expected allow for non-admin on %s, got redirect to %s", path, d.RedirectTo)
		}
	}
}

func TestPrefixMatchingDoesNotOverreach(t *testing.T) {
	// A path that merely shares leading characters is not restricted.
	if IsAdminOnly("/usuariosx") {
		t.Error("expected /usuariosx not to match the /usuarios prefix")
	}
	if !IsAdminOnly("/usuarios/u1/detalle") {
		t.Error("expected sub-paths of /usuarios to be restricted")
	}
	if !IsAdminOnly(PathProductos) {
		t.Error("expected /catalogos/productos to be restricted")
	}
}

func TestLoadingWinsOverAnonymous(t *testing.T) {
	d := Decide(nil, true, PathUsuarios)
	if !d.Allow {
		t.Error("expected loading to suppress the anonymous redirect")
	}
}
