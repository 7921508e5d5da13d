// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops background work, unmounts every device provider (which
// cancels in-flight bootstraps) and disconnects MongoDB.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Cleanup != nil {
		deps.Cleanup.Stop()
	}
	if deps.Devices != nil {
		logger.Info("unmounting device providers", zap.Int("count", deps.Devices.Len()))
		deps.Devices.Close()
	}
	if deps.TutorHubMongoClient != nil {
		logger.Info("disconnecting TutorHub MongoDB client")
		if err := deps.TutorHubMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
