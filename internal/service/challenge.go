package service

import (
	"errors"
	"time"

	"github.com/nasifowls01-ui/opb/internal/duel"
	"github.com/nasifowls01-ui/opb/internal/engine"
	"github.com/nasifowls01-ui/opb/internal/keys"
	"github.com/nasifowls01-ui/opb/internal/logging"
	"github.com/nasifowls01-ui/opb/internal/session"
)

// MaxDuelsPerOpponentPerDay caps repeat duels against the same opponent.
const MaxDuelsPerOpponentPerDay = 3

var (
	ErrSelfChallenge      = errors.New("cannot challenge yourself")
	ErrBotOpponent        = errors.New("cannot challenge a bot")
	ErrNoRoster           = errors.New("challenger has no team")
	ErrOpponentNoRoster   = errors.New("opponent has no team")
	ErrThrottleExceeded   = errors.New("daily duel limit against this opponent reached")
	ErrChallengePending   = errors.New("a challenge between these players is already pending")
	ErrChallengeNotFound  = errors.New("challenge not found or expired")
	ErrNotChallengeTarget = errors.New("only the challenged player can respond")
)

// ProposeChallenge validates a duel proposal and registers it with a
// 30-second response window. No session exists until the opponent accepts.
func ProposeChallenge(repo Repo, reg *session.Challenges, challengerUUID, opponentUUID, channelRef string, timeout time.Duration) (*duel.Challenge, error) {
	if challengerUUID == opponentUUID {
		return nil, ErrSelfChallenge
	}
	challenger, err := repo.GetProfileByUUID(challengerUUID)
	if err != nil {
		return nil, err
	}
	opponent, err := repo.GetProfileByUUID(opponentUUID)
	if err != nil {
		return nil, err
	}
	if opponent.IsBot {
		return nil, ErrBotOpponent
	}
	if err := requireRoster(repo, challenger.ID, ErrNoRoster); err != nil {
		return nil, err
	}
	if err := requireRoster(repo, opponent.ID, ErrOpponentNoRoster); err != nil {
		return nil, err
	}
	if reg.PendingAgainst(challengerUUID, opponentUUID) > 0 {
		return nil, ErrChallengePending
	}

	rec, err := repo.GetDuelRecord(challenger.ID)
	if err != nil {
		return nil, err
	}
	rec.RollWindows(keys.DayBucket(time.Now()))
	if rec.CountAgainst(opponentUUID) >= MaxDuelsPerOpponentPerDay {
		return nil, ErrThrottleExceeded
	}

	ch := &duel.Challenge{
		ID:             session.NewID(),
		ChallengerUUID: challengerUUID,
		ChallengerName: challenger.PlayerName,
		OpponentUUID:   opponentUUID,
		OpponentName:   opponent.PlayerName,
		ChannelRef:     channelRef,
		Deadline:       time.Now().Add(timeout),
		CreatedAt:      time.Now(),
	}
	reg.Add(ch)
	logging.Info("challenge proposed", logging.Fields{"challenge_id": ch.ID, "pair": keys.PairKey(challengerUUID, opponentUUID)})
	return ch, nil
}

func requireRoster(repo Repo, playerID uint, missing error) error {
	roster, err := repo.GetRoster(playerID)
	if err != nil {
		return err
	}
	if len(roster) == 0 {
		return missing
	}
	return nil
}

// AcceptChallenge consumes the pending challenge, snapshots both rosters and
// creates the live session awaiting the first unit choice.
func AcceptChallenge(repo Repo, reg *session.Challenges, store *session.Store, challengeID, actorUUID string, decisionTimeout time.Duration) (*duel.Session, error) {
	ch, err := reg.Take(challengeID)
	if err != nil {
		return nil, ErrChallengeNotFound
	}
	if ch.OpponentUUID != actorUUID {
		// put it back; someone else cannot consume another player's prompt
		reg.Add(ch)
		return nil, ErrNotChallengeTarget
	}

	challengerSide, err := buildSideFor(repo, ch.ChallengerUUID)
	if err != nil {
		return nil, err
	}
	opponentSide, err := buildSideFor(repo, ch.OpponentUUID)
	if err != nil {
		return nil, err
	}

	s := &duel.Session{
		ID:               session.NewID(),
		Challenger:       challengerSide,
		Opponent:         opponentSide,
		CurrentTurnOwner: engine.FirstTurnOwner(challengerSide, opponentSide),
		State:            duel.StateAwaitingUnitChoice,
		Deadline:         time.Now().Add(decisionTimeout),
		PendingUnitIndex: -1,
		ChannelRef:       ch.ChannelRef,
		CreatedAt:        time.Now(),
	}
	if err := store.Create(s); err != nil {
		return nil, err
	}
	logging.Info("duel started", logging.Fields{"session_id": s.ID, "first_turn": s.CurrentTurnOwner})
	return s, nil
}

// DeclineChallenge is the terminal transition before any session exists.
func DeclineChallenge(reg *session.Challenges, challengeID, actorUUID string) (*duel.Challenge, error) {
	ch, err := reg.Take(challengeID)
	if err != nil {
		return nil, ErrChallengeNotFound
	}
	if ch.OpponentUUID != actorUUID {
		reg.Add(ch)
		return nil, ErrNotChallengeTarget
	}
	logging.Info("challenge declined", logging.Fields{"challenge_id": ch.ID})
	return ch, nil
}

func buildSideFor(repo Repo, uuid string) (duel.Side, error) {
	p, err := repo.GetProfileByUUID(uuid)
	if err != nil {
		return duel.Side{}, err
	}
	roster, err := repo.GetRoster(p.ID)
	if err != nil {
		return duel.Side{}, err
	}
	return engine.BuildSide(p.ID, p.PlayerUUID, p.PlayerName, roster)
}
