// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like ports, TLS,
// logging level and request limits. AppConfig carries what is specific to
// ServeHub: the MongoDB connection and the schedule wizard settings.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in the driver pool
	MongoMinPoolSize uint64 // Minimum idle connections kept open

	// Schedule wizard configuration
	WizardStepsFile string        // YAML step definitions; blank uses the built-in steps
	WizardDraftTTL  time.Duration // Idle lifetime of a wizard draft
	WizardStartRate int           // Wizard starts allowed per client IP per minute; 0 disables
}
