package handlers

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/pocketbase/pocketbase/core"
)

// Config holds the runtime settings read from the environment at startup.
type Config struct {
	// AdminToken guards the waitlist administration endpoints. When empty,
	// those endpoints are disabled entirely.
	AdminToken string
	// ProExports enables the report/history download endpoints.
	ProExports bool
}

// LoadConfig reads the configuration from the environment. main loads the
// .env file before calling this.
func LoadConfig() Config {
	return Config{
		AdminToken: os.Getenv("ADMIN_TOKEN"),
		ProExports: os.Getenv("PRO_EXPORTS") == "true",
	}
}

// adminToken extracts the admin token from the request, accepting either an
// Authorization bearer header or the X-Admin-Token header.
func adminToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return r.Header.Get("X-Admin-Token")
}

// RequireAdmin wraps a handler so it only runs when the request carries the
// configured admin token.
func RequireAdmin(cfg Config, next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if cfg.AdminToken == "" {
			log.Printf("middleware: admin endpoint hit but no ADMIN_TOKEN configured")
			return e.JSON(http.StatusForbidden, map[string]string{"error": "Administración deshabilitada"})
		}
		if adminToken(e.Request) != cfg.AdminToken {
			return e.JSON(http.StatusUnauthorized, map[string]string{"error": "Token de administrador inválido"})
		}
		return next(e)
	}
}

// RequireProExports wraps a download handler so it only runs when the PRO
// export capability is enabled.
func RequireProExports(cfg Config, next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if !cfg.ProExports {
			return e.JSON(http.StatusForbidden, map[string]string{"error": "Las exportaciones requieren el plan PRO"})
		}
		return next(e)
	}
}
