package service

import (
	"time"

	"github.com/nasifowls01-ui/opb/internal/duel"
	"github.com/nasifowls01-ui/opb/internal/logging"
	"github.com/nasifowls01-ui/opb/internal/session"
)

// HandleTimedOutSession applies deadline expiry for a single session.
// Behavior per state:
//   - any awaiting-* state: the acting side forfeits the remainder of the
//     turn; ownership passes unconditionally and a fresh unit choice begins
//     for the other side. No partial damage, no carry-over.
//   - resolving: the pacing window elapsed; finish the turn (flip or settle).
//
// Timeouts are first-class transitions, not errors.
func HandleTimedOutSession(repo Repo, store *session.Store, sessionID string, now time.Time, decisionTimeout time.Duration) (*Settlement, error) {
	resolving := false
	err := store.With(sessionID, func(s *duel.Session) error {
		if s.Settled || s.Deadline.IsZero() || now.Before(s.Deadline) {
			return nil
		}
		switch s.State {
		case duel.StateResolving:
			resolving = true
			return nil
		case duel.StateAwaitingUnitChoice, duel.StateAwaitingAttackType, duel.StateAwaitingTarget:
			skipped := s.CurrentTurnOwner
			s.CurrentTurnOwner = s.Defender().PlayerUUID
			s.PendingUnitIndex = -1
			s.PendingAttack = ""
			advance(s, duel.StateAwaitingUnitChoice, decisionTimeout)
			logging.Info("turn forfeited on timeout", logging.Fields{
				"session_id": s.ID,
				"skipped":    skipped,
				"next":       s.CurrentTurnOwner,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if resolving {
		return FinishResolving(repo, store, sessionID, decisionTimeout)
	}
	return nil, nil
}

// ExpireChallenges withdraws every pending challenge whose response window
// closed. The expired challenges are returned so the presentation layer can
// edit the original prompts.
func ExpireChallenges(reg *session.Challenges, now time.Time) []*duel.Challenge {
	expired := reg.Expired(now)
	for _, ch := range expired {
		logging.Info("challenge expired", logging.Fields{"challenge_id": ch.ID})
	}
	return expired
}
