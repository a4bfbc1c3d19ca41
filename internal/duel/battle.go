package duel

import "time"

// AttackKind is the player's chosen attack flavor for a turn.
type AttackKind string

const (
	AttackNormal  AttackKind = "normal"
	AttackSpecial AttackKind = "special"
)

// Outcome classifies a resolved attack.
type Outcome string

const (
	OutcomeMiss    Outcome = "miss"
	OutcomeNormal  Outcome = "normal"
	OutcomeSpecial Outcome = "special"
)

// DecisionState is the pending decision of a live session. The attacker
// walks unit choice -> attack type -> target; Resolving is the short pacing
// window after damage is shown; Settled is terminal.
type DecisionState string

const (
	StateAwaitingUnitChoice DecisionState = "awaiting_unit_choice"
	StateAwaitingAttackType DecisionState = "awaiting_attack_type"
	StateAwaitingTarget     DecisionState = "awaiting_target"
	StateResolving          DecisionState = "resolving"
	StateSettled            DecisionState = "settled"
)

// UnitSnapshot is a battle-scoped copy of one roster unit with level-scaled
// stats. It is derived once at session start and never re-reads the stored
// progress, so mid-duel leveling cannot affect an in-progress session. Only
// CurrentHealth mutates, clamped to [0, MaxHealth].
type UnitSnapshot struct {
	UnitID        uint       `json:"unit_id"`
	Name          string     `json:"name"`
	Level         int        `json:"level"`
	Power         int        `json:"power"`
	AttackMin     int        `json:"attack_min"`
	AttackMax     int        `json:"attack_max"`
	HasSpecial    bool       `json:"has_special"`
	SpecialName   string     `json:"special_name,omitempty"`
	SpecialMin    int        `json:"special_min,omitempty"`
	SpecialMax    int        `json:"special_max,omitempty"`
	MaxHealth     int        `json:"max_health"`
	CurrentHealth int        `json:"current_health"`
}

// Alive reports whether the unit can still act or be targeted.
func (u *UnitSnapshot) Alive() bool { return u.CurrentHealth > 0 }

// Side is one of the two combatants: the owner identity and their roster in
// fixed order. ActiveIndex always points at the lowest-index living unit, or
// len(Units) when none remain.
type Side struct {
	PlayerID    uint           `json:"-"`
	PlayerUUID  string         `json:"player_uuid"`
	PlayerName  string         `json:"player_name"`
	Units       []UnitSnapshot `json:"units"`
	ActiveIndex int            `json:"active_index"`
}

// AttackResult is the outcome of one resolved attack, kept on the session so
// the presentation layer can render it during the pacing window.
type AttackResult struct {
	AttackerName string     `json:"attacker_name"`
	TargetName   string     `json:"target_name"`
	Kind         AttackKind `json:"kind"`
	Outcome      Outcome    `json:"outcome"`
	Damage       int        `json:"damage"`
	TargetHealth int        `json:"target_health"`
	TargetMax    int        `json:"target_max"`
	Lethal       bool       `json:"lethal"`
}

// Session is the live state of one in-progress duel. It exists only in
// memory; a process restart abandons in-flight sessions with no economic
// effect. All mutation happens under the session store's per-session lock.
type Session struct {
	ID               string
	Challenger       Side
	Opponent         Side
	CurrentTurnOwner string // player UUID whose decision is pending
	State            DecisionState
	// Deadline bounds the current decision (or the Resolving pacing window).
	Deadline  time.Time
	PromptRef string // presentation reference of the current prompt

	// In-flight turn selections.
	PendingUnitIndex int
	PendingAttack    AttackKind

	LastResult *AttackResult
	ChannelRef string
	CreatedAt  time.Time
	Settled    bool
}

// SideOf returns the side owned by uuid, or nil.
func (s *Session) SideOf(uuid string) *Side {
	switch uuid {
	case s.Challenger.PlayerUUID:
		return &s.Challenger
	case s.Opponent.PlayerUUID:
		return &s.Opponent
	}
	return nil
}

// OpposingSide returns the side NOT owned by uuid, or nil when uuid is not a
// participant.
func (s *Session) OpposingSide(uuid string) *Side {
	switch uuid {
	case s.Challenger.PlayerUUID:
		return &s.Opponent
	case s.Opponent.PlayerUUID:
		return &s.Challenger
	}
	return nil
}

// Attacker and Defender are relative to the current turn owner.
func (s *Session) Attacker() *Side { return s.SideOf(s.CurrentTurnOwner) }
func (s *Session) Defender() *Side { return s.OpposingSide(s.CurrentTurnOwner) }

// Challenge is a pending duel proposal awaiting the opponent's response.
// Like sessions, challenges live only in memory and expire on their own
// deadline with no session created.
type Challenge struct {
	ID             string
	ChallengerUUID string
	ChallengerName string
	OpponentUUID   string
	OpponentName   string
	ChannelRef     string
	PromptRef      string
	Deadline       time.Time
	CreatedAt      time.Time
}
