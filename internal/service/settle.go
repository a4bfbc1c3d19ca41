package service

import (
	"time"

	"github.com/nasifowls01-ui/opb/internal/dedupe"
	"github.com/nasifowls01-ui/opb/internal/duel"
	"github.com/nasifowls01-ui/opb/internal/engine"
	"github.com/nasifowls01-ui/opb/internal/keys"
	"github.com/nasifowls01-ui/opb/internal/logging"
)

// questActionDuel is the quest action reported for a duel victory.
const questActionDuel = "duel"

// Settlement is the committed outcome of one duel, returned for rendering.
type Settlement struct {
	WinnerUUID string `json:"winner_uuid"`
	WinnerName string `json:"winner_name"`
	Bounty     int    `json:"bounty"`
	XPGained   int    `json:"xp_gained"`
}

// Settle computes and commits the winner's rewards and both players' daily
// duel counters. It runs exactly once per session (singleflight keyed on the
// session id) and is deliberately non-transactional across stores: a failed
// experience commit after a successful bounty credit is logged and accepted,
// since duels are low-stakes entertainment economy.
func Settle(repo Repo, s *duel.Session, winner, loser *duel.Side) Settlement {
	v, _, _ := dedupe.SettleGroup.Do(s.ID, func() (interface{}, error) {
		return settle(repo, s, winner, loser), nil
	})
	return v.(Settlement)
}

func settle(repo Repo, s *duel.Session, winner, loser *duel.Side) Settlement {
	out := Settlement{WinnerUUID: winner.PlayerUUID, WinnerName: winner.PlayerName}
	bucket := keys.DayBucket(time.Now())

	bounty := 0
	if eco, err := repo.GetEconomy(loser.PlayerID); err != nil {
		logging.Error("settlement: loser economy read failed", err, logging.Fields{"session_id": s.ID})
		bounty = engine.RollBounty(0)
	} else {
		bounty = engine.RollBounty(eco.XP)
	}

	xpGain := 0
	if err := repo.UpdateDuelRecord(winner.PlayerID, func(rec *duel.DuelRecord) error {
		rec.RollWindows(bucket)
		xpGain = engine.XPGain(rec.XPToday)
		rec.XPToday += xpGain
		rec.BumpOpponent(loser.PlayerUUID)
		return nil
	}); err != nil {
		logging.Error("settlement: winner duel record update failed", err, logging.Fields{"session_id": s.ID})
	}

	if err := repo.CreditEconomy(winner.PlayerID, int64(bounty), xpGain); err != nil {
		logging.Error("settlement: bounty credit failed", err, logging.Fields{"session_id": s.ID, "bounty": bounty})
	}

	if err := repo.UpdateDuelRecord(loser.PlayerID, func(rec *duel.DuelRecord) error {
		rec.RollWindows(bucket)
		rec.BumpOpponent(winner.PlayerUUID)
		return nil
	}); err != nil {
		logging.Error("settlement: loser duel record update failed", err, logging.Fields{"session_id": s.ID})
	}

	if err := repo.RecordDuelOutcome(winner.PlayerID, loser.PlayerID); err != nil {
		logging.Error("settlement: stats update failed", err, logging.Fields{"session_id": s.ID})
	}

	// best-effort: quest failures never block or roll back the payout
	if err := repo.IncrementQuestProgress(winner.PlayerID, questActionDuel, 1); err != nil {
		logging.Error("settlement: quest progress failed", err, logging.Fields{"session_id": s.ID})
	}

	out.Bounty = bounty
	out.XPGained = xpGain
	logging.Info("duel settled", logging.Fields{
		"session_id": s.ID,
		"winner":     winner.PlayerUUID,
		"loser":      loser.PlayerUUID,
		"bounty":     bounty,
		"xp_gained":  xpGain,
	})
	return out
}
