package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/notify"
	"github.com/sandeepkv93/habitd/internal/reminder"
	"github.com/sandeepkv93/habitd/internal/scheduler"
	"github.com/sandeepkv93/habitd/internal/storage"
	"github.com/sandeepkv93/habitd/internal/tracker"
	"github.com/sandeepkv93/habitd/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "habitd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := update.LoadRuntimeConfig(update.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	repo, err := storage.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer repo.Close()
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	svc := tracker.NewService(repo)
	rec := reminder.NewReconciler(scheduler.NewNotifier(engine))

	var desktop notify.DesktopNotifier = notify.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		desktop = notify.ExecDesktopNotifier{}
	}

	program := tea.NewProgram(update.NewModelWithDeps(svc, engine, rec, desktop, cfg))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
