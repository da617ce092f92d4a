// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"os"

	wizarddraftstore "github.com/dalemusser/servehub/internal/app/store/wizarddrafts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvPrefix is the environment prefix of every app key (SERVEHUB_MONGO_URI, ...).
const EnvPrefix = "SERVEHUB"

// appConfigKeys defines the configuration keys for ServeHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, wizard_steps_file, etc.
//   - Environment variables: SERVEHUB_MONGO_URI, SERVEHUB_WIZARD_DRAFT_TTL, etc.
//   - Command-line flags: --mongo_uri, --wizard_draft_ttl, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "servehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Schedule wizard
	{Name: "wizard_steps_file", Default: "", Desc: "YAML file with wizard step definitions (blank uses built-in steps)"},
	{Name: "wizard_draft_ttl", Default: "24h", Desc: "Idle lifetime of a wizard draft (e.g., 30m, 24h)"},
	{Name: "wizard_start_rate", Default: 30, Desc: "Wizard starts allowed per client IP per minute (0 disables)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, SERVEHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		WizardStepsFile: appValues.String("wizard_steps_file"),
		WizardDraftTTL:  appValues.Duration("wizard_draft_ttl", wizarddraftstore.DefaultTTL),
		WizardStartRate: appValues.Int("wizard_start_rate"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// ServeHub validates the MongoDB URI format and the wizard settings to
// catch configuration errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	if appCfg.WizardDraftTTL <= 0 {
		return fmt.Errorf("wizard_draft_ttl must be positive, got %s", appCfg.WizardDraftTTL)
	}
	if appCfg.WizardStartRate < 0 {
		return fmt.Errorf("wizard_start_rate must not be negative, got %d", appCfg.WizardStartRate)
	}
	if appCfg.WizardStepsFile != "" {
		if _, err := os.Stat(appCfg.WizardStepsFile); err != nil {
			logger.Error("wizard steps file not readable", zap.String("path", appCfg.WizardStepsFile), zap.Error(err))
			return fmt.Errorf("wizard_steps_file: %w", err)
		}
	}
	return nil
}
