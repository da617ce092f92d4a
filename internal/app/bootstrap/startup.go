// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/servehub/internal/app/system/timeouts"
	"github.com/dalemusser/servehub/internal/app/system/wizard"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// steps is the wizard registry loaded by Startup and used by BuildHandler.
var steps *wizard.Registry

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// ServeHub applies timeout overrides from the environment and loads the
// wizard step registry. An invalid step configuration aborts startup.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(EnvPrefix); n > 0 {
		cur := timeouts.Current()
		logger.Info("timeouts overridden from environment",
			zap.Int("overrides", n),
			zap.Duration("ping", cur.Ping),
			zap.Duration("short", cur.Short),
			zap.Duration("medium", cur.Medium),
			zap.Duration("long", cur.Long))
	}

	reg, err := LoadRegistry(appCfg)
	if err != nil {
		logger.Error("wizard step registry invalid", zap.String("path", appCfg.WizardStepsFile), zap.Error(err))
		return err
	}
	steps = reg
	logger.Info("wizard steps loaded", zap.Strings("steps", reg.Names()))
	return nil
}

// LoadRegistry builds the wizard step registry from the configured file, or
// from the built-in definitions when none is set.
func LoadRegistry(appCfg AppConfig) (*wizard.Registry, error) {
	if appCfg.WizardStepsFile == "" {
		return wizard.DefaultRegistry()
	}
	reg, err := wizard.LoadDefinitionsFile(appCfg.WizardStepsFile)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", appCfg.WizardStepsFile, err)
	}
	return reg, nil
}
