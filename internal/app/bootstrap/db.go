// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	userstore "github.com/dalemusser/accounthub/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema sets up indexes or schema as needed.
//
// The unique email index is the backstop for signup races; the
// handlers' pre-checks exist only to give friendlier errors.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := userstore.New(deps.MongoDatabase).EnsureIndexes(ctx); err != nil {
		logger.Error("user index creation failed", zap.Error(err))
		return err
	}
	return nil
}
