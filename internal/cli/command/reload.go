package command

import (
	"github.com/moonblokz/telemetry-cli/internal/cli/config"
	"github.com/moonblokz/telemetry-cli/internal/cli/connection"
	"github.com/moonblokz/telemetry-cli/internal/infra/confloader"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/logger"
)

// watchConfig starts a watcher that reloads path on change.
func watchConfig(path string, client *connection.HubClient, keepLevel bool, log logger.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(logger.Slog(log)))
	if err != nil {
		return nil, err
	}

	if err := w.Watch(path); err != nil {
		w.Stop()
		return nil, err
	}

	w.OnChange(func(string) {
		reloadConfig(path, client, keepLevel, log)
	})
	w.StartAsync()

	return w, nil
}

// reloadConfig re-reads and verifies path and swaps the hub credentials.
// An invalid file leaves the current settings in place.
func reloadConfig(path string, client *connection.HubClient, keepLevel bool, log logger.Logger) error {
	cfg, err := config.Load(path)
	if err != nil {
		log.Warn("config reload failed, keeping current settings",
			"path", path,
			"error", err,
		)
		return err
	}

	client.UpdateCredentials(cfg.HubURL, cfg.APIKey)
	if !keepLevel {
		logger.SetLevel(cfg.LogLevel)
	}

	log.Info("configuration reloaded", "path", path, "hub_url", cfg.HubURL)
	return nil
}
