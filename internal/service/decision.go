package service

import (
	"time"

	"github.com/nasifowls01-ui/opb/internal/duel"
	"github.com/nasifowls01-ui/opb/internal/engine"
	"github.com/nasifowls01-ui/opb/internal/logging"
	"github.com/nasifowls01-ui/opb/internal/session"
)

// Decision is one player-submitted choice advancing the turn state machine.
// Only the field matching the session's pending state is consulted.
type Decision struct {
	UnitIndex   *int            `json:"unit_index,omitempty"`
	Attack      duel.AttackKind `json:"attack,omitempty"`
	TargetIndex *int            `json:"target_index,omitempty"`
	// PromptRef ties the decision to the prompt it answers; stale refs are
	// ignored so a withdrawn prompt cannot advance a later state.
	PromptRef string `json:"prompt_ref,omitempty"`
}

// SubmitResult reports what a decision did. Ignored decisions (wrong actor,
// wrong state, stale prompt) carry a transient notice and change nothing.
type SubmitResult struct {
	Ignored    bool
	Notice     string
	Resolved   bool // damage was applied this call
	Settlement *Settlement // non-nil when the duel ended and settlement ran
	View       *View
}

// SubmitDecision feeds one decision event into the session's state machine.
// Everything runs under the per-session lock; misdirected input never
// corrupts state or surfaces as an error to the initiator.
func SubmitDecision(repo Repo, store *session.Store, sessionID, actorUUID string, d Decision, decisionTimeout, resolveDelay time.Duration) (SubmitResult, error) {
	var res SubmitResult
	err := store.With(sessionID, func(s *duel.Session) error {
		res = applyDecision(s, actorUUID, d, decisionTimeout, resolveDelay)
		v := BuildView(s)
		res.View = &v
		return nil
	})
	if err != nil {
		return res, err
	}
	if res.Resolved && resolveDelay <= 0 {
		// zero pacing delay: finish the turn immediately (used by tests and
		// synchronous callers); otherwise the deadline scanner finishes it
		st, ferr := FinishResolving(repo, store, sessionID, decisionTimeout)
		res.Settlement = st
		return res, ferr
	}
	return res, nil
}

func applyDecision(s *duel.Session, actorUUID string, d Decision, decisionTimeout, resolveDelay time.Duration) SubmitResult {
	if s.Settled || s.State == duel.StateSettled {
		return ignored(s, actorUUID, "this duel is over")
	}
	if actorUUID != s.CurrentTurnOwner {
		return ignored(s, actorUUID, "it's not your turn")
	}
	if d.PromptRef != "" && s.PromptRef != "" && d.PromptRef != s.PromptRef {
		return ignored(s, actorUUID, "that prompt is no longer active")
	}

	attacker := s.Attacker()
	defender := s.Defender()

	switch s.State {
	case duel.StateAwaitingUnitChoice:
		if d.UnitIndex == nil || *d.UnitIndex < 0 || *d.UnitIndex >= len(attacker.Units) {
			return ignored(s, actorUUID, "pick one of your units")
		}
		if !attacker.Units[*d.UnitIndex].Alive() {
			return SubmitResult{Ignored: true, Notice: "that unit is already defeated"}
		}
		s.PendingUnitIndex = *d.UnitIndex
		advance(s, duel.StateAwaitingAttackType, decisionTimeout)
		return SubmitResult{}

	case duel.StateAwaitingAttackType:
		unit := &attacker.Units[s.PendingUnitIndex]
		switch d.Attack {
		case duel.AttackNormal:
		case duel.AttackSpecial:
			// units without a special never get the option; reject instead
			// of silently downgrading the roll
			if !unit.HasSpecial {
				return SubmitResult{Ignored: true, Notice: "that unit has no special attack"}
			}
		default:
			return ignored(s, actorUUID, "choose normal or special")
		}
		s.PendingAttack = d.Attack
		advance(s, duel.StateAwaitingTarget, decisionTimeout)
		return SubmitResult{}

	case duel.StateAwaitingTarget:
		if d.TargetIndex == nil || *d.TargetIndex < 0 || *d.TargetIndex >= len(defender.Units) {
			return ignored(s, actorUUID, "pick an opposing unit")
		}
		unit := &attacker.Units[s.PendingUnitIndex]
		target := &defender.Units[*d.TargetIndex]
		result, err := engine.ResolveAttack(unit, s.PendingAttack, target)
		if err != nil {
			// dead target: local notice, no state advance, turn not consumed
			return SubmitResult{Ignored: true, Notice: "that target is already knocked out"}
		}
		engine.Normalize(defender)
		s.LastResult = &result
		advance(s, duel.StateResolving, resolveDelay)
		return SubmitResult{Resolved: true}

	default:
		return ignored(s, actorUUID, "hold on, resolving the attack")
	}
}

// advance moves the session to the next decision state and re-arms its
// deadline. The prompt ref is cleared; the presentation layer sets a new one
// when it posts the next prompt.
func advance(s *duel.Session, next duel.DecisionState, wait time.Duration) {
	s.State = next
	s.Deadline = time.Now().Add(wait)
	s.PromptRef = ""
}

func ignored(s *duel.Session, actorUUID, notice string) SubmitResult {
	logging.Warn("decision ignored", logging.Fields{
		"session_id": s.ID,
		"state":      string(s.State),
		"actor":      actorUUID,
	})
	return SubmitResult{Ignored: true, Notice: notice}
}

// FinishResolving completes the turn after the pacing window: either the
// defender is out of units and the duel settles, or turn ownership flips and
// a fresh unit choice begins for the other side. Returns the settlement when
// the duel ended.
func FinishResolving(repo Repo, store *session.Store, sessionID string, decisionTimeout time.Duration) (*Settlement, error) {
	var settled *Settlement
	err := store.With(sessionID, func(s *duel.Session) error {
		if s.State != duel.StateResolving || s.Settled {
			return nil
		}
		defender := s.Defender()
		if engine.Defeated(defender) {
			winner := s.Attacker()
			s.State = duel.StateSettled
			s.Settled = true
			s.Deadline = time.Time{}
			st := Settle(repo, s, winner, defender)
			settled = &st
			return nil
		}
		s.CurrentTurnOwner = defender.PlayerUUID
		s.PendingUnitIndex = -1
		s.PendingAttack = ""
		advance(s, duel.StateAwaitingUnitChoice, decisionTimeout)
		return nil
	})
	if settled != nil {
		// cleanup is unconditional: external store failures during Settle
		// never resurrect the session
		store.Delete(sessionID)
	}
	return settled, err
}
