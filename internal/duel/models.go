package duel

import (
	"encoding/json"

	"gorm.io/gorm"
)

// UnitDefinition is one entry of the global unit catalog. Combat stats are
// configured via the server config (duel_config.json) and should NOT be
// persisted in the database. Mark them with `gorm:"-"` so GORM ignores them
// for schema/migration purposes while keeping the fields available in-memory
// and in JSON responses.
type UnitDefinition struct {
	gorm.Model
	Name        string `json:"name" gorm:"uniqueIndex"`
	Power       int    `json:"power" gorm:"-"`
	AttackMin   int    `json:"attack_min" gorm:"-"`
	AttackMax   int    `json:"attack_max" gorm:"-"`
	HasSpecial  bool   `json:"has_special" gorm:"-"`
	SpecialName string `json:"special_name" gorm:"-"`
	SpecialMin  int    `json:"special_min" gorm:"-"`
	SpecialMax  int    `json:"special_max" gorm:"-"`
	MaxHealth   int    `json:"max_health" gorm:"-"`
}

// TableName overrides the default GORM table name for UnitDefinition so the
// persisted table is `unit_templates` instead of the default `unit_definitions`.
func (UnitDefinition) TableName() string { return "unit_templates" }

// PlayerProfile stores unique player identity and aggregate duel stats.
type PlayerProfile struct {
	gorm.Model
	PlayerUUID  string `json:"player_uuid" gorm:"uniqueIndex"`
	PlayerName  string `json:"player_name"`
	Email       string `json:"-" gorm:"uniqueIndex"`
	IsBot       bool   `json:"is_bot"`
	DuelsPlayed int    `json:"duels_played"`
	Wins        int    `json:"wins"`
}

func (PlayerProfile) TableName() string { return "player_profiles" }

// UnitProgress tracks one player's ownership of a catalog unit: its level,
// accumulated experience and team placement. TeamSlot is -1 when the unit is
// not on the active team; slots 0..2 define the battle roster order.
type UnitProgress struct {
	gorm.Model
	PlayerID uint `json:"-" gorm:"index:idx_unit_progress_player_unit,unique"`
	UnitID   uint `json:"unit_id" gorm:"index:idx_unit_progress_player_unit,unique"`
	Level    int  `json:"level"`
	XP       int  `json:"xp"`
	TeamSlot int  `json:"team_slot" gorm:"default:-1"`
}

func (UnitProgress) TableName() string { return "unit_progress" }

// EconomyAccount holds a player's currency balance and lifetime experience.
type EconomyAccount struct {
	gorm.Model
	PlayerID uint  `json:"-" gorm:"uniqueIndex"`
	Currency int64 `json:"currency"`
	XP       int   `json:"xp"`
}

func (EconomyAccount) TableName() string { return "economy_accounts" }

// DuelRecord carries a player's rolling daily duel counters: experience
// earned today (capped at MaxDailyDuelXP) and per-opponent duel counts used
// to enforce the 3-duels-per-opponent-per-day limit. Both reset when their
// day bucket changes.
type DuelRecord struct {
	gorm.Model
	PlayerID uint  `json:"-" gorm:"uniqueIndex"`
	XPToday  int   `json:"xp_today"`
	XPWindow int64 `json:"xp_window"`
	// OpponentCounts is a JSON object mapping opponent UUID -> duels today.
	// SQLite has no native map column, so it is (de)serialized explicitly.
	OpponentCounts string `json:"-" gorm:"column:opponent_counts"`
	DuelWindow     int64  `json:"duel_window"`
}

func (DuelRecord) TableName() string { return "duel_records" }

// RollWindows resets whichever daily counters belong to a stale day bucket.
func (r *DuelRecord) RollWindows(bucket int64) {
	if r.XPWindow != bucket {
		r.XPWindow = bucket
		r.XPToday = 0
	}
	if r.DuelWindow != bucket {
		r.DuelWindow = bucket
		r.OpponentCounts = ""
	}
}

// CountAgainst returns how many duels this player fought against the given
// opponent in the current window.
func (r *DuelRecord) CountAgainst(opponentUUID string) int {
	return r.opponentMap()[opponentUUID]
}

// BumpOpponent increments the per-opponent duel counter.
func (r *DuelRecord) BumpOpponent(opponentUUID string) {
	m := r.opponentMap()
	m[opponentUUID]++
	b, err := json.Marshal(m)
	if err != nil {
		return
	}
	r.OpponentCounts = string(b)
}

func (r *DuelRecord) opponentMap() map[string]int {
	m := map[string]int{}
	if r.OpponentCounts != "" {
		_ = json.Unmarshal([]byte(r.OpponentCounts), &m)
	}
	return m
}

// QuestProgress is the concrete collaborator behind best-effort quest
// notifications: a per-player counter per quest action.
type QuestProgress struct {
	gorm.Model
	PlayerID uint   `json:"-" gorm:"index:idx_quest_progress_player_action,unique"`
	Action   string `json:"action" gorm:"index:idx_quest_progress_player_action,unique"`
	Count    int    `json:"count"`
}

func (QuestProgress) TableName() string { return "quest_progress" }

// RosterUnit pairs a catalog definition with the owning player's progress,
// as returned by the repository for battle setup.
type RosterUnit struct {
	Def   UnitDefinition
	Level int
	XP    int
}
