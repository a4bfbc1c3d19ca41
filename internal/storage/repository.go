package storage

import "github.com/nasifowls01-ui/opb/internal/duel"

// Repository is the boundary to the external player stores the combat engine
// consumes: unit catalog, rosters and progress for battle setup, economy,
// daily duel counters and quest progress for settlement.
type Repository interface {
	GetUnitDefinitions() ([]duel.UnitDefinition, error)

	GetProfileByUUID(uuid string) (*duel.PlayerProfile, error)
	GetProfileByEmail(email string) (*duel.PlayerProfile, error)
	UpsertProfile(email, uuid, name string) error
	UpdateProfileName(email, name string) error

	// GetRoster returns the player's battle team in slot order (at most
	// three units), joined with the catalog definitions. It fails when a
	// team slot references an unknown unit.
	GetRoster(playerID uint) ([]duel.RosterUnit, error)

	GetEconomy(playerID uint) (*duel.EconomyAccount, error)
	CreditEconomy(playerID uint, currency int64, xp int) error

	GetDuelRecord(playerID uint) (*duel.DuelRecord, error)
	// UpdateDuelRecord runs mutate on the player's duel record inside one
	// transaction, creating the record when missing. The per-player daily
	// counters are a small critical section; the transaction prevents lost
	// updates under concurrent duel completions.
	UpdateDuelRecord(playerID uint, mutate func(*duel.DuelRecord) error) error

	RecordDuelOutcome(winnerID, loserID uint) error
	IncrementQuestProgress(playerID uint, action string, amount int) error

	// Leaderboard
	GetTopPlayers(limit int) ([]duel.PlayerProfile, error)
}
