// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for TutorHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, session_name, etc.
//   - Environment variables: TUTORHUB_API_BASE_URL, TUTORHUB_SESSION_NAME, etc.
//   - Command-line flags: --api_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "http://localhost:5000/api", Desc: "Marketplace backend base URL"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "tutorhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "durable_backend", Default: DurableMongo, Desc: "Where remembered sessions live: 'mongo' or 'file'"},
	{Name: "durable_dir", Default: "./data/sessions", Desc: "Directory for remembered sessions when durable_backend is 'file'"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Device cookie signing and token encryption key (must be strong in production)"},
	{Name: "session_name", Default: "tutorhub-device", Desc: "Device cookie name"},
	{Name: "session_domain", Default: "", Desc: "Device cookie domain (blank means current host)"},
	{Name: "device_cookie_age", Default: "8760h", Desc: "Device cookie lifetime"},
	{Name: "remember_max_age", Default: "720h", Desc: "Remembered session lifetime (0 keeps it until logout)"},

	{Name: "request_timeout", Default: "0s", Desc: "Per-request timeout for backend calls (0 means none)"},
	{Name: "bootstrap_timeout", Default: "0s", Desc: "Timeout for a whole bootstrap run (0 means none)"},
	{Name: "request_retries", Default: 0, Desc: "Retries for failed backend reads (default: 0)"},

	{Name: "provider_idle_ttl", Default: "30m", Desc: "Drop a device's in-memory state after this long unused"},
	{Name: "provider_sweep_interval", Default: "1m", Desc: "How often idle device state is swept"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, TUTORHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TUTORHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL: appValues.String("api_base_url"),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		DurableBackend: appValues.String("durable_backend"),
		DurableDir:     appValues.String("durable_dir"),

		SessionKey:      appValues.String("session_key"),
		SessionName:     appValues.String("session_name"),
		SessionDomain:   appValues.String("session_domain"),
		DeviceCookieAge: appValues.Duration("device_cookie_age", 365*24*time.Hour),
		RememberMaxAge:  appValues.Duration("remember_max_age", 30*24*time.Hour),

		RequestTimeout:   appValues.Duration("request_timeout", 0),
		BootstrapTimeout: appValues.Duration("bootstrap_timeout", 0),
		RequestRetries:   appValues.Int("request_retries"),

		ProviderIdleTTL:       appValues.Duration("provider_idle_ttl", 30*time.Minute),
		ProviderSweepInterval: appValues.Duration("provider_sweep_interval", time.Minute),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	u, err := url.Parse(appCfg.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url %q must be an absolute http(s) URL", appCfg.APIBaseURL)
	}

	switch appCfg.DurableBackend {
	case DurableMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return fmt.Errorf("mongo_database is required when durable_backend is %q", DurableMongo)
		}
	case DurableFile:
		if appCfg.DurableDir == "" {
			return fmt.Errorf("durable_dir is required when durable_backend is %q", DurableFile)
		}
	default:
		return fmt.Errorf("durable_backend must be %q or %q, got %q", DurableMongo, DurableFile, appCfg.DurableBackend)
	}

	if len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters, got %d", len(appCfg.SessionKey))
	}
	if appCfg.SessionName == "" {
		return fmt.Errorf("session_name is required")
	}
	if coreCfg != nil && coreCfg.Env == "prod" && appCfg.SessionKey == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("session_key must be changed from its development default in prod")
	}

	if appCfg.RequestTimeout < 0 || appCfg.BootstrapTimeout < 0 || appCfg.RememberMaxAge < 0 {
		return fmt.Errorf("request_timeout, bootstrap_timeout and remember_max_age must not be negative")
	}
	if appCfg.RequestRetries < 0 {
		return fmt.Errorf("request_retries must not be negative, got %d", appCfg.RequestRetries)
	}
	if appCfg.ProviderIdleTTL <= 0 || appCfg.ProviderSweepInterval <= 0 {
		return fmt.Errorf("provider_idle_ttl and provider_sweep_interval must be positive")
	}

	return nil
}
