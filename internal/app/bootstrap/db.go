// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/dalemusser/tutorhub/internal/app/store/sessions"
	"github.com/dalemusser/tutorhub/internal/app/system/apiclient"
	"github.com/dalemusser/tutorhub/internal/app/system/session"
	"github.com/dalemusser/tutorhub/internal/app/system/timeouts"
	"github.com/dalemusser/tutorhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens the backends the app depends on: MongoDB when remembered
// sessions live there, the marketplace API client, and the per-device
// provider registry built on top of them.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	timeouts.Configure(timeouts.Config{
		Request:   appCfg.RequestTimeout,
		Bootstrap: appCfg.BootstrapTimeout,
		Retries:   appCfg.RequestRetries,
	})
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts overridden from environment", zap.Int("count", n))
	}

	codec, err := session.NewCodec(appCfg.SessionKey, appCfg.RememberMaxAge)
	if err != nil {
		return DBDeps{}, fmt.Errorf("session codec: %w", err)
	}

	var deps DBDeps
	switch appCfg.DurableBackend {
	case DurableMongo:
		client, err := connectMongo(ctx, appCfg, logger)
		if err != nil {
			return DBDeps{}, err
		}
		deps.TutorHubMongoClient = client
		deps.TutorHubMongoDatabase = client.Database(appCfg.MongoDatabase)
		deps.Remembered = sessions.New(deps.TutorHubMongoDatabase, codec, appCfg.RememberMaxAge)
	case DurableFile:
		if err := os.MkdirAll(appCfg.DurableDir, 0o700); err != nil {
			return DBDeps{}, fmt.Errorf("create durable_dir: %w", err)
		}
	}

	api, err := apiclient.New(appCfg.APIBaseURL, apiclient.Options{Logger: logger})
	if err != nil {
		disconnect(deps.TutorHubMongoClient, logger)
		return DBDeps{}, err
	}
	deps.API = api

	durable := fileScopes(appCfg.DurableDir, codec)
	var sweeper workers.ExpiredSweeper
	if deps.Remembered != nil {
		durable = deps.Remembered.Scope
		sweeper = deps.Remembered
	}
	deps.Devices = newRegistry(api, durable, logger)
	deps.Cleanup = workers.NewProviderCleanup(deps.Devices, sweeper, logger,
		appCfg.ProviderSweepInterval, appCfg.ProviderIdleTTL)

	logger.Info("backends ready",
		zap.String("api_base_url", appCfg.APIBaseURL),
		zap.String("durable_backend", appCfg.DurableBackend))
	return deps, nil
}

func connectMongo(ctx context.Context, appCfg AppConfig, logger *zap.Logger) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error("MongoDB connect failed", zap.Error(err))
		return nil, fmt.Errorf("connect MongoDB: %w", err)
	}

	pingCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Ping(), logger, "mongo ping")
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnect(client, logger)
		logger.Error("MongoDB ping failed", zap.Error(err))
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	return client, nil
}

func disconnect(client *mongo.Client, logger *zap.Logger) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Short())
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.Warn("MongoDB disconnect failed", zap.Error(err))
	}
}

// EnsureSchema sets up indexes or schema as needed.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Remembered == nil {
		return nil
	}
	if err := deps.Remembered.EnsureIndexes(ctx); err != nil {
		logger.Error("ensure remembered session indexes failed", zap.Error(err))
		return err
	}
	return nil
}
