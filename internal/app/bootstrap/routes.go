// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminusersfeature "github.com/dalemusser/accounthub/internal/app/features/adminusers"
	authfeature "github.com/dalemusser/accounthub/internal/app/features/auth"
	healthfeature "github.com/dalemusser/accounthub/internal/app/features/health"
	profilefeature "github.com/dalemusser/accounthub/internal/app/features/profile"
	"github.com/dalemusser/accounthub/internal/app/system/auth"
	"github.com/dalemusser/accounthub/internal/app/system/authz"
	"github.com/dalemusser/accounthub/internal/app/system/token"
	"github.com/dalemusser/accounthub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed.
//
// The surface is small: public signup/login under /auth, and
// everything under /users behind the bearer-token guard, with the
// admin views additionally behind the role guard.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := token.New(appCfg.JWTSecret, appCfg.TokenTTL)
	if err != nil {
		logger.Error("token service init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Public authentication endpoints
	authHandler := authfeature.NewHandler(deps.MongoDatabase, tokens, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	// Everything under /users requires a valid bearer token.
	profileHandler := profilefeature.NewHandler(deps.MongoDatabase, logger)
	adminHandler := adminusersfeature.NewHandler(deps.MongoDatabase, logger)

	r.Route("/users", func(ur chi.Router) {
		ur.Use(auth.RequireToken(tokens))

		// Self-service profile
		ur.Mount("/me", profilefeature.Routes(profileHandler))

		// Admin directory and status toggle
		ur.Mount("/", adminusersfeature.Routes(adminHandler, authz.RequireRole(models.RoleAdmin)))
	})

	return r, nil
}
