package service

import (
	"time"

	"github.com/nasifowls01-ui/opb/internal/duel"
)

// UnitView is the render-ready projection of one battle unit. HPPercent is
// precomputed so the presentation layer can draw HP bars without reaching
// into engine state.
type UnitView struct {
	Name        string `json:"name"`
	Level       int    `json:"level"`
	HP          int    `json:"hp"`
	MaxHP       int    `json:"max_hp"`
	HPPercent   int    `json:"hp_percent"`
	Alive       bool   `json:"alive"`
	AttackMin   int    `json:"attack_min"`
	AttackMax   int    `json:"attack_max"`
	HasSpecial  bool   `json:"has_special"`
	SpecialName string `json:"special_name,omitempty"`
	SpecialMin  int    `json:"special_min,omitempty"`
	SpecialMax  int    `json:"special_max,omitempty"`
}

type SideView struct {
	PlayerUUID  string     `json:"player_uuid"`
	PlayerName  string     `json:"player_name"`
	Units       []UnitView `json:"units"`
	ActiveIndex int        `json:"active_index"`
	Defeated    bool       `json:"defeated"`
}

// View is the read-only session projection exposed to the presentation
// layer: current state, whose decision is pending, the active prompt and
// both rosters' HP. The engine stays agnostic to how this is displayed.
type View struct {
	SessionID        string             `json:"session_id"`
	State            duel.DecisionState `json:"state"`
	CurrentTurnOwner string             `json:"current_turn_owner"`
	Prompt           string             `json:"prompt"`
	Deadline         time.Time          `json:"deadline"`
	Challenger       SideView           `json:"challenger"`
	Opponent         SideView           `json:"opponent"`
	LastResult       *duel.AttackResult `json:"last_result,omitempty"`
}

// BuildView projects a session for rendering. Call under the session lock.
func BuildView(s *duel.Session) View {
	return View{
		SessionID:        s.ID,
		State:            s.State,
		CurrentTurnOwner: s.CurrentTurnOwner,
		Prompt:           promptFor(s),
		Deadline:         s.Deadline,
		Challenger:       sideView(&s.Challenger),
		Opponent:         sideView(&s.Opponent),
		LastResult:       s.LastResult,
	}
}

func promptFor(s *duel.Session) string {
	attacker := s.Attacker()
	name := ""
	if attacker != nil {
		name = attacker.PlayerName
	}
	switch s.State {
	case duel.StateAwaitingUnitChoice:
		return name + ", choose a unit to attack with"
	case duel.StateAwaitingAttackType:
		return name + ", choose an attack"
	case duel.StateAwaitingTarget:
		return name + ", select a target"
	case duel.StateResolving:
		return "resolving the attack..."
	case duel.StateSettled:
		return "duel finished"
	}
	return ""
}

func sideView(side *duel.Side) SideView {
	units := make([]UnitView, len(side.Units))
	for i := range side.Units {
		u := &side.Units[i]
		pct := 0
		if u.MaxHealth > 0 {
			pct = u.CurrentHealth * 100 / u.MaxHealth
		}
		units[i] = UnitView{
			Name:        u.Name,
			Level:       u.Level,
			HP:          u.CurrentHealth,
			MaxHP:       u.MaxHealth,
			HPPercent:   pct,
			Alive:       u.Alive(),
			AttackMin:   u.AttackMin,
			AttackMax:   u.AttackMax,
			HasSpecial:  u.HasSpecial,
			SpecialName: u.SpecialName,
			SpecialMin:  u.SpecialMin,
			SpecialMax:  u.SpecialMax,
		}
	}
	return SideView{
		PlayerUUID:  side.PlayerUUID,
		PlayerName:  side.PlayerName,
		Units:       units,
		ActiveIndex: side.ActiveIndex,
		Defeated:    side.ActiveIndex >= len(side.Units),
	}
}
