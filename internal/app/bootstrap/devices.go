// internal/app/bootstrap/devices.go
package bootstrap

import (
	"github.com/dalemusser/tutorhub/internal/app/system/provider"
	"github.com/dalemusser/tutorhub/internal/app/system/session"
	"go.uber.org/zap"
)

// durableScopes returns the remembered-session scope of a device.
type durableScopes func(deviceID string) session.Scope

func fileScopes(dir string, codec *session.Codec) durableScopes {
	return func(deviceID string) session.Scope {
		return session.NewFileScope(dir, deviceID, codec)
	}
}

// newRegistry builds the provider registry. Each device gets its own state
// container, with a durable scope that survives the provider and an
// ephemeral one that dies with it.
func newRegistry(backend provider.Backend, durable durableScopes, logger *zap.Logger) *provider.Registry {
	return provider.NewRegistry(func(deviceID string) (*provider.Provider, error) {
		return provider.New(provider.Deps{
			Backend:  backend,
			Sessions: session.New(durable(deviceID), session.NewMemoryScope()),
			Logger:   logger.With(zap.String("device_id", deviceID)),
		}), nil
	}, logger)
}
