// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const devSigningKey = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for ChallengeHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, auth_signing_key, etc.
//   - Environment variables: CHALLENGEHUB_MONGO_URI, CHALLENGEHUB_AUTH_SIGNING_KEY, etc.
//   - Command-line flags: --mongo_uri, --auth_signing_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "challenge_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "auth_signing_key", Default: devSigningKey, Desc: "HMAC key for verifying bearer tokens (must be strong in production)"},

	{Name: "join_rate_limit", Default: 30, Desc: "Max join attempts per caller per window"},
	{Name: "join_rate_window", Default: "1m", Desc: "Join rate-limit window (e.g., 30s, 1m)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// config.LoadWithAppConfig merges flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CHALLENGEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		AuthSigningKey: appValues.String("auth_signing_key"),

		JoinRateLimit:  appValues.Int("join_rate_limit"),
		JoinRateWindow: appValues.Duration("join_rate_window", time.Minute),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI is checked up front so a typo fails startup instead
// of the first request. The dev signing key is rejected outside dev.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" && appCfg.AuthSigningKey == devSigningKey {
		return fmt.Errorf("auth_signing_key must be set in production")
	}

	if appCfg.JoinRateLimit < 1 {
		return fmt.Errorf("join_rate_limit must be at least 1, got %d", appCfg.JoinRateLimit)
	}

	return nil
}
