// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Cleanup != nil {
		deps.Cleanup.Start()
		logger.Info("provider cleanup worker started",
			zap.Duration("interval", appCfg.ProviderSweepInterval),
			zap.Duration("idle_ttl", appCfg.ProviderIdleTTL))
	}
	return nil
}
