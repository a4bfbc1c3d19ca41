package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nasifowls01-ui/opb/internal/duel"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// configByName maps lowercase unit name -> config definition (stats).
	configByName map[string]duel.UnitDefinition
}

func NewSQLiteRepository(db *gorm.DB, configUnits []duel.UnitDefinition) Repository {
	m := make(map[string]duel.UnitDefinition, len(configUnits))
	for _, u := range configUnits {
		m[strings.ToLower(u.Name)] = u
	}
	return &sqliteRepository{db: db, configByName: m}
}

// applyConfigStats overlays the config-sourced combat stats onto a persisted
// catalog row (config is the source of truth for stats).
func (r *sqliteRepository) applyConfigStats(u *duel.UnitDefinition) error {
	conf, ok := r.configByName[strings.ToLower(u.Name)]
	if !ok {
		return fmt.Errorf("unit %q not present in configured catalog", u.Name)
	}
	u.Power = conf.Power
	u.AttackMin = conf.AttackMin
	u.AttackMax = conf.AttackMax
	u.HasSpecial = conf.HasSpecial
	u.SpecialName = conf.SpecialName
	u.SpecialMin = conf.SpecialMin
	u.SpecialMax = conf.SpecialMax
	u.MaxHealth = conf.MaxHealth
	return nil
}

func (r *sqliteRepository) GetUnitDefinitions() ([]duel.UnitDefinition, error) {
	var units []duel.UnitDefinition
	if err := r.db.Order("id").Find(&units).Error; err != nil {
		return nil, err
	}
	for i := range units {
		if err := r.applyConfigStats(&units[i]); err != nil {
			return nil, err
		}
	}
	return units, nil
}

func (r *sqliteRepository) GetProfileByUUID(uuid string) (*duel.PlayerProfile, error) {
	var p duel.PlayerProfile
	if err := r.db.Where("player_uuid = ?", uuid).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) GetProfileByEmail(email string) (*duel.PlayerProfile, error) {
	var p duel.PlayerProfile
	if err := r.db.Where("email = ?", email).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) UpsertProfile(email, uuid, name string) error {
	var p duel.PlayerProfile
	err := r.db.Where("email = ?", email).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&duel.PlayerProfile{Email: email, PlayerUUID: uuid, PlayerName: name}).Error
	}
	if err != nil {
		return err
	}
	// keep the stored uuid stable; refresh the display name
	p.PlayerName = name
	return r.db.Save(&p).Error
}

func (r *sqliteRepository) UpdateProfileName(email, name string) error {
	return r.db.Model(&duel.PlayerProfile{}).Where("email = ?", email).Update("player_name", name).Error
}

func (r *sqliteRepository) GetRoster(playerID uint) ([]duel.RosterUnit, error) {
	var rows []duel.UnitProgress
	if err := r.db.Where("player_id = ? AND team_slot >= 0", playerID).
		Order("team_slot").Limit(3).Find(&rows).Error; err != nil {
		return nil, err
	}
	roster := make([]duel.RosterUnit, 0, len(rows))
	for _, row := range rows {
		var def duel.UnitDefinition
		if err := r.db.First(&def, row.UnitID).Error; err != nil {
			return nil, fmt.Errorf("team references unknown unit %d: %w", row.UnitID, err)
		}
		if err := r.applyConfigStats(&def); err != nil {
			return nil, err
		}
		roster = append(roster, duel.RosterUnit{Def: def, Level: row.Level, XP: row.XP})
	}
	return roster, nil
}

func (r *sqliteRepository) GetEconomy(playerID uint) (*duel.EconomyAccount, error) {
	var eco duel.EconomyAccount
	err := r.db.Where("player_id = ?", playerID).First(&eco).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &duel.EconomyAccount{PlayerID: playerID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &eco, nil
}

func (r *sqliteRepository) CreditEconomy(playerID uint, currency int64, xp int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var eco duel.EconomyAccount
		err := tx.Where("player_id = ?", playerID).First(&eco).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			eco = duel.EconomyAccount{PlayerID: playerID}
		} else if err != nil {
			return err
		}
		eco.Currency += currency
		eco.XP += xp
		return tx.Save(&eco).Error
	})
}

func (r *sqliteRepository) GetDuelRecord(playerID uint) (*duel.DuelRecord, error) {
	var rec duel.DuelRecord
	err := r.db.Where("player_id = ?", playerID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &duel.DuelRecord{PlayerID: playerID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) UpdateDuelRecord(playerID uint, mutate func(*duel.DuelRecord) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var rec duel.DuelRecord
		err := tx.Where("player_id = ?", playerID).First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rec = duel.DuelRecord{PlayerID: playerID}
		} else if err != nil {
			return err
		}
		if err := mutate(&rec); err != nil {
			return err
		}
		return tx.Save(&rec).Error
	})
}

func (r *sqliteRepository) RecordDuelOutcome(winnerID, loserID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&duel.PlayerProfile{}).Where("id = ?", winnerID).
			Updates(map[string]interface{}{
				"duels_played": gorm.Expr("duels_played + 1"),
				"wins":         gorm.Expr("wins + 1"),
			}).Error; err != nil {
			return err
		}
		return tx.Model(&duel.PlayerProfile{}).Where("id = ?", loserID).
			Update("duels_played", gorm.Expr("duels_played + 1")).Error
	})
}

func (r *sqliteRepository) IncrementQuestProgress(playerID uint, action string, amount int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var q duel.QuestProgress
		err := tx.Where("player_id = ? AND action = ?", playerID, action).First(&q).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			q = duel.QuestProgress{PlayerID: playerID, Action: action}
		} else if err != nil {
			return err
		}
		q.Count += amount
		return tx.Save(&q).Error
	})
}

func (r *sqliteRepository) GetTopPlayers(limit int) ([]duel.PlayerProfile, error) {
	var players []duel.PlayerProfile
	if err := r.db.Where("is_bot = ?", false).
		Order("wins DESC, duels_played ASC").Limit(limit).Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}
