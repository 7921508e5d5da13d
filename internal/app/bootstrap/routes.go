// internal/app/bootstrap/routes.go
package bootstrap

import (
	"errors"
	"net/http"

	errorsfeature "github.com/dalemusser/tutorhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/tutorhub/internal/app/features/health"
	loginfeature "github.com/dalemusser/tutorhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/tutorhub/internal/app/features/logout"
	statefeature "github.com/dalemusser/tutorhub/internal/app/features/state"
	"github.com/dalemusser/tutorhub/internal/app/system/auth"
	"github.com/dalemusser/tutorhub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// TutorHub serves JSON only. /health is public and cookie-free; every other
// route runs behind the device cookie, which selects the per-device state
// container the handler works on.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	if deps.Devices == nil {
		return nil, errors.New("device registry not initialized")
	}

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	devices, err := auth.NewDeviceManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain,
		appCfg.DeviceCookieAge, secure, logger)
	if err != nil {
		logger.Error("device manager init failed", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.NotFound(errorsfeature.NotFound)
	r.MethodNotAllowed(errorsfeature.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.TutorHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Group(func(dr chi.Router) {
		dr.Use(devices.LoadDevice)

		// Authentication
		loginHandler := loginfeature.NewHandler(deps.Devices, errLog, logger)
		loginHandler.Limiter = ratelimit.NewLoginLimiter()
		dr.Mount("/login", loginfeature.Routes(loginHandler))

		logoutHandler := logoutfeature.NewHandler(deps.Devices, errLog, logger)
		dr.Mount("/logout", logoutfeature.Routes(logoutHandler))

		// State container
		stateHandler := statefeature.NewHandler(deps.Devices, errLog, logger)
		dr.Mount("/state", statefeature.Routes(stateHandler))
	})

	return r, nil
}
