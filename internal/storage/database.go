package storage

import (
	"errors"
	"strings"

	"github.com/nasifowls01-ui/opb/internal/duel"
	"github.com/nasifowls01-ui/opb/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database, keeps the schema updated via
// AutoMigrate and seeds catalog rows for any configured unit that does not
// have one yet. Combat stats stay in the config; only identity rows persist.
func OpenAndMigrate(dataSourceName string, unitsFromConfig []duel.UnitDefinition) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&duel.UnitDefinition{},
		&duel.PlayerProfile{},
		&duel.UnitProgress{},
		&duel.EconomyAccount{},
		&duel.DuelRecord{},
		&duel.QuestProgress{},
	)
	if err != nil {
		return nil, err
	}

	seedUnitCatalog(db, unitsFromConfig)
	return db, nil
}

// seedUnitCatalog creates missing unit_templates rows by name. Failures are
// logged and do not abort startup; a unit missing from the table simply
// cannot appear on a team yet.
func seedUnitCatalog(db *gorm.DB, unitsFromConfig []duel.UnitDefinition) {
	for _, u := range unitsFromConfig {
		var existing duel.UnitDefinition
		err := db.Where("name = ?", u.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logging.Error("failed to check unit catalog row", err, logging.Fields{"name": u.Name})
			continue
		}
		row := duel.UnitDefinition{Name: strings.TrimSpace(u.Name)}
		if err := db.Create(&row).Error; err != nil {
			logging.Error("failed to seed unit catalog row", err, logging.Fields{"name": u.Name})
		}
	}
}
