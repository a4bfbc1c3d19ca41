package engine

import (
	"errors"
	"math"

	"github.com/nasifowls01-ui/opb/internal/duel"
)

const maxRosterSize = 3

var (
	ErrEmptyRoster    = errors.New("roster is empty")
	ErrRosterTooLarge = errors.New("roster exceeds three units")
)

// scaleStat applies the flat 1%-per-level multiplier used for every derived
// combat stat.
func scaleStat(base, level int) int {
	return int(math.Round(float64(base) * (1 + float64(level)*0.01)))
}

// BuildSide converts a player's stored roster into a battle-scoped Side with
// level-scaled unit snapshots. The snapshots are value copies: later catalog
// or progress changes never reach an in-progress session.
func BuildSide(playerID uint, playerUUID, playerName string, roster []duel.RosterUnit) (duel.Side, error) {
	if len(roster) == 0 {
		return duel.Side{}, ErrEmptyRoster
	}
	if len(roster) > maxRosterSize {
		return duel.Side{}, ErrRosterTooLarge
	}

	units := make([]duel.UnitSnapshot, 0, len(roster))
	for _, r := range roster {
		health := scaleStat(r.Def.MaxHealth, r.Level)
		u := duel.UnitSnapshot{
			UnitID:        r.Def.ID,
			Name:          r.Def.Name,
			Level:         r.Level,
			Power:         scaleStat(r.Def.Power, r.Level),
			AttackMin:     scaleStat(r.Def.AttackMin, r.Level),
			AttackMax:     scaleStat(r.Def.AttackMax, r.Level),
			MaxHealth:     health,
			CurrentHealth: health,
		}
		if r.Def.HasSpecial {
			u.HasSpecial = true
			u.SpecialName = r.Def.SpecialName
			u.SpecialMin = scaleStat(r.Def.SpecialMin, r.Level)
			u.SpecialMax = scaleStat(r.Def.SpecialMax, r.Level)
		}
		units = append(units, u)
	}

	s := duel.Side{
		PlayerID:   playerID,
		PlayerUUID: playerUUID,
		PlayerName: playerName,
		Units:      units,
	}
	Normalize(&s)
	return s, nil
}

// FirstTurnOwner grants the first turn to the side whose strongest unit has
// the higher power; ties favor the challenger.
func FirstTurnOwner(challenger, opponent duel.Side) string {
	if maxPower(challenger.Units) >= maxPower(opponent.Units) {
		return challenger.PlayerUUID
	}
	return opponent.PlayerUUID
}

func maxPower(units []duel.UnitSnapshot) int {
	best := 0
	for i := range units {
		if units[i].Power > best {
			best = units[i].Power
		}
	}
	return best
}
