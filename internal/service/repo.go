package service

import "github.com/nasifowls01-ui/opb/internal/duel"

// Repo is the slice of the storage repository the duel lifecycle needs. The
// engine treats these as external key-value collaborators: roster and
// progress reads at setup, economy/throttle/quest writes at settlement.
type Repo interface {
	GetProfileByUUID(uuid string) (*duel.PlayerProfile, error)
	GetRoster(playerID uint) ([]duel.RosterUnit, error)
	GetEconomy(playerID uint) (*duel.EconomyAccount, error)
	CreditEconomy(playerID uint, currency int64, xp int) error
	GetDuelRecord(playerID uint) (*duel.DuelRecord, error)
	// UpdateDuelRecord runs the read-modify-write of a player's daily
	// counters in one transaction so concurrent settlements do not lose
	// updates.
	UpdateDuelRecord(playerID uint, mutate func(*duel.DuelRecord) error) error
	RecordDuelOutcome(winnerID, loserID uint) error
	IncrementQuestProgress(playerID uint, action string, amount int) error
}
