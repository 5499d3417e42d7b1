// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	challengesfeature "github.com/dalemusser/challengehub/internal/app/features/challenges"
	errorsfeature "github.com/dalemusser/challengehub/internal/app/features/errors"
	eventsfeature "github.com/dalemusser/challengehub/internal/app/features/events"
	healthfeature "github.com/dalemusser/challengehub/internal/app/features/health"
	mefeature "github.com/dalemusser/challengehub/internal/app/features/me"
	tipsfeature "github.com/dalemusser/challengehub/internal/app/features/tips"
	"github.com/dalemusser/challengehub/internal/app/system/auth"
	"github.com/dalemusser/challengehub/internal/app/system/metrics"
	"github.com/dalemusser/challengehub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. It creates the chi router,
// applies the identity and metrics middleware, and mounts the feature
// subrouters.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	errs := errorsfeature.NewRenderer(logger)

	r := chi.NewRouter()

	// Global identity middleware: resolves the bearer token (if any)
	// into an Identity available via auth.CurrentIdentity(r). Requests
	// without a token pass through anonymous; a bad token is a 401.
	verifier := auth.NewJWTVerifier(appCfg.AuthSigningKey)
	r.Use(auth.LoadIdentity(verifier))
	r.Use(metrics.Middleware)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus scrape endpoint.
	r.Handle("/metrics", metrics.Handler())

	// The challenge catalogue and join pipeline. The join endpoint is
	// rate limited per caller.
	joinLimiter := ratelimit.New(appCfg.JoinRateLimit, appCfg.JoinRateWindow)
	challengesHandler := challengesfeature.NewHandler(deps.MongoDatabase, errs, logger)
	r.Mount("/challenges", challengesfeature.Routes(challengesHandler, joinLimiter.Middleware))

	// The signed-in user's memberships.
	meHandler := mefeature.NewHandler(deps.MongoDatabase, errs, logger)
	r.Mount("/me", mefeature.Routes(meHandler))

	// Read-only editorial listings.
	tipsHandler := tipsfeature.NewHandler(deps.MongoDatabase, errs, logger)
	r.Mount("/tips", tipsfeature.Routes(tipsHandler))

	eventsHandler := eventsfeature.NewHandler(deps.MongoDatabase, errs, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler))

	return r, nil
}
