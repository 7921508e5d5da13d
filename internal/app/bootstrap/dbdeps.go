// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/tutorhub/internal/app/store/sessions"
	"github.com/dalemusser/tutorhub/internal/app/system/apiclient"
	"github.com/dalemusser/tutorhub/internal/app/system/provider"
	"github.com/dalemusser/tutorhub/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	// Nil unless remembered sessions are kept in Mongo.
	TutorHubMongoClient   *mongo.Client
	TutorHubMongoDatabase *mongo.Database
	Remembered            *sessions.Store

	API     *apiclient.Client
	Devices *provider.Registry
	Cleanup *workers.ProviderCleanup
}
