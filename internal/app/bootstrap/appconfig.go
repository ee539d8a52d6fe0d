// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and format, and request body size limits.
// AppConfig is everything specific to this service.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Token configuration
	JWTSecret string        // HMAC signing secret for bearer tokens (must be strong in production)
	TokenTTL  time.Duration // Token lifetime (default: 24h)

	// Bootstrap admin. When both are set, Startup ensures an active
	// admin account with these credentials exists.
	BootstrapAdminEmail    string
	BootstrapAdminPassword string
}
