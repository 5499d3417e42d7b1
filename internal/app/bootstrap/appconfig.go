// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration — ports, TLS, log level
// and the like live in WAFFLE's CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Identity verification
	AuthSigningKey string // HMAC key for verifying bearer tokens (must be strong in production)

	// Join endpoint rate limiting
	JoinRateLimit  int           // Max join attempts per window per caller
	JoinRateWindow time.Duration // Window duration for the join limiter
}
