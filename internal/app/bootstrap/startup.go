// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	userstore "github.com/dalemusser/accounthub/internal/app/store/users"
	"github.com/dalemusser/accounthub/internal/app/system/passwords"
	"github.com/dalemusser/accounthub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
//
// AccountHub uses it to guarantee an admin exists: every admin-only
// endpoint is unreachable until some account holds the admin role, and
// signup only ever creates regular users.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.BootstrapAdminEmail == "" {
		return nil
	}
	return ensureBootstrapAdmin(ctx, userstore.New(deps.MongoDatabase), appCfg, logger)
}

// ensureBootstrapAdmin creates the configured admin account, or
// promotes it when the email already belongs to a user. Idempotent: a
// second startup with the same config is a no-op.
func ensureBootstrapAdmin(ctx context.Context, store *userstore.Store, appCfg AppConfig, logger *zap.Logger) error {
	existing, err := store.GetByEmail(ctx, appCfg.BootstrapAdminEmail)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			return err
		}

		hash, err := passwords.Hash(appCfg.BootstrapAdminPassword)
		if err != nil {
			return err
		}
		created, err := store.Create(ctx, models.User{
			FullName:     "Administrator",
			Email:        appCfg.BootstrapAdminEmail,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
		})
		if err != nil {
			// Lost a create race to another instance; the account exists.
			if err == userstore.ErrDuplicateEmail {
				return nil
			}
			return err
		}
		logger.Info("bootstrap admin created", zap.String("user_id", created.ID.Hex()))
		return nil
	}

	if existing.Role == models.RoleAdmin && existing.Status == models.StatusActive {
		return nil
	}

	if err := store.PromoteToAdmin(ctx, existing.ID); err != nil {
		return err
	}
	logger.Info("bootstrap admin promoted", zap.String("user_id", existing.ID.Hex()))
	return nil
}
