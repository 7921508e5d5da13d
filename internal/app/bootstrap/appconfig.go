// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// Durable session backends.
const (
	DurableMongo = "mongo"
	DurableFile  = "file"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, CORS); everything specific
// to TutorHub lives here.
type AppConfig struct {
	// Marketplace backend
	APIBaseURL string // e.g. https://api.tutorhub.example

	// MongoDB (only used when DurableBackend is "mongo")
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Where remembered ("keep me signed in") sessions are kept
	DurableBackend string // "mongo" or "file"
	DurableDir     string // directory for the file backend

	// Device cookie and session token encryption
	SessionKey       string        // ≥32 chars; signs device cookies and encrypts stored tokens
	SessionName      string        // device cookie name
	SessionDomain    string        // cookie domain (blank means current host)
	DeviceCookieAge  time.Duration // device cookie lifetime
	RememberMaxAge   time.Duration // remembered session lifetime; 0 keeps it until logout
	RequestTimeout   time.Duration // per backend request; 0 means none
	BootstrapTimeout time.Duration // per bootstrap run; 0 means none
	RequestRetries   int           // extra attempts for failed backend reads

	// Device providers
	ProviderIdleTTL       time.Duration // unused providers are dropped after this long
	ProviderSweepInterval time.Duration // how often idle providers are looked for
}
