package main

import (
	"github.com/nasifowls01-ui/opb/internal/config"
	"github.com/nasifowls01-ui/opb/internal/duel"
	"github.com/nasifowls01-ui/opb/internal/logging"
	"github.com/nasifowls01-ui/opb/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid duel configuration", err, logging.Fields{"config_path": path, "hint": "create a duel_config.json with a 'unit_list' array of unit objects (name,power,attack_range,special_attack{name,range},health) and optional keys: server.address, engine.{decision_timeout_seconds,challenge_timeout_seconds,resolve_delay_seconds}"})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, units []duel.UnitDefinition) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath, units)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db, units)
}
