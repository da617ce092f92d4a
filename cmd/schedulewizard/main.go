// cmd/schedulewizard/main.go
//
// Terminal schedule wizard. It reads the same configuration as the servehub
// service (SERVEHUB_* environment, config files, flags), connects to
// MongoDB directly and runs the wizard in the terminal.
//
// Set SERVEHUB_WIZARD_SCHEDULE_ID to edit an existing schedule. Logs go to
// SERVEHUB_WIZARD_LOG (default schedulewizard.log) so the screen stays clean.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dalemusser/servehub/internal/app/bootstrap"
	schedulestore "github.com/dalemusser/servehub/internal/app/store/schedules"
	"github.com/dalemusser/servehub/internal/app/system/scheduledraft"
	"github.com/dalemusser/servehub/internal/app/system/timeouts"
	"github.com/dalemusser/servehub/internal/app/tui"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "schedulewizard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logPath := os.Getenv("SERVEHUB_WIZARD_LOG")
	if logPath == "" {
		logPath = "schedulewizard.log"
	}
	logger, err := newFileLogger(logPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	_, appCfg, err := bootstrap.LoadConfig(logger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := bootstrap.ValidateConfig(nil, appCfg, logger); err != nil {
		return err
	}
	timeouts.ConfigureFromEnv(bootstrap.EnvPrefix)

	reg, err := bootstrap.LoadRegistry(appCfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	deps, err := bootstrap.Connect(ctx, appCfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = deps.ServeHubMongoClient.Disconnect(context.Background()) }()

	draft := scheduledraft.New(reg)
	if id := strings.TrimSpace(os.Getenv("SERVEHUB_WIZARD_SCHEDULE_ID")); id != "" {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return fmt.Errorf("invalid schedule id %q: %w", id, err)
		}
		lctx, cancel := context.WithTimeout(ctx, timeouts.Short())
		sch, err := schedulestore.New(deps.ServeHubMongoDatabase).GetByID(lctx, oid)
		cancel()
		if err != nil {
			return fmt.Errorf("load schedule %s: %w", id, err)
		}
		draft = scheduledraft.Edit(reg, sch)
	}

	backend := tui.NewStoreBackend(deps.ServeHubMongoDatabase, logger)
	p := tea.NewProgram(tui.NewApp(draft, backend, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

// newFileLogger writes JSON logs to path.
func newFileLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	return logger, nil
}
