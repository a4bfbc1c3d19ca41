package service

import (
	"testing"
	"time"

	"github.com/nasifowls01-ui/opb/internal/duel"
	"github.com/nasifowls01-ui/opb/internal/session"
)

func intp(v int) *int { return &v }

// startDuel proposes and accepts a challenge between the two fixture players
// and returns the live session id.
func startDuel(t *testing.T, repo *mockRepo, store *session.Store) string {
	t.Helper()
	reg := session.NewChallenges()
	ch, err := ProposeChallenge(repo, reg, "uuid-a", "uuid-b", "chan", 30*time.Second)
	if err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	s, err := AcceptChallenge(repo, reg, store, ch.ID, "uuid-b", 30*time.Second)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	return s.ID
}

func firstAliveIndex(side *duel.Side) int {
	for i := range side.Units {
		if side.Units[i].Alive() {
			return i
		}
	}
	return 0
}

// TestDuelRunsToSettlement drives a full duel with normal attacks until one
// side wins. Player A (power 100, attack 10-20, 100 health) faces player B
// (power 80, attack 1-2, 50 health): A opens and, outside of vanishingly
// unlikely miss streaks, wins well before B can chip through 100 health.
func TestDuelRunsToSettlement(t *testing.T) {
	repo := newMockRepo()
	repo.addPlayer(1, "uuid-a", "Ace", false)
	repo.addPlayer(2, "uuid-b", "Buggy", false)
	repo.rosters[1] = []duel.RosterUnit{rosterUnit(10, "Swordsman", 100, 10, 20, 100)}
	repo.rosters[2] = []duel.RosterUnit{rosterUnit(11, "Sniper", 80, 1, 2, 50)}
	store := session.NewStore()

	id := startDuel(t, repo, store)

	var settlement *Settlement
	for turn := 0; turn < 500; turn++ {
		var actor string
		var targetIdx int
		var unitIdx int
		err := store.With(id, func(s *duel.Session) error {
			actor = s.CurrentTurnOwner
			unitIdx = firstAliveIndex(s.Attacker())
			targetIdx = firstAliveIndex(s.Defender())
			return nil
		})
		if err != nil {
			t.Fatalf("turn %d: session lookup failed: %v", turn, err)
		}

		submit := func(d Decision) SubmitResult {
			res, err := SubmitDecision(repo, store, id, actor, d, 30*time.Second, 0)
			if err != nil {
				t.Fatalf("turn %d: submit failed: %v", turn, err)
			}
			if res.Ignored {
				t.Fatalf("turn %d: well-formed decision ignored: %s", turn, res.Notice)
			}
			return res
		}

		submit(Decision{UnitIndex: intp(unitIdx)})
		submit(Decision{Attack: duel.AttackNormal})
		res := submit(Decision{TargetIndex: intp(targetIdx)})
		if res.Settlement != nil {
			settlement = res.Settlement
			break
		}
	}

	if settlement == nil {
		t.Fatal("duel never settled")
	}
	if settlement.WinnerUUID != "uuid-a" {
		t.Fatalf("winner = %s, want uuid-a", settlement.WinnerUUID)
	}
	// loser has zero lifetime XP, so the bounty floor applies
	if settlement.Bounty < 100 || settlement.Bounty > 200 {
		t.Fatalf("bounty = %d, want between 100 and 200", settlement.Bounty)
	}
	if settlement.XPGained != 10 {
		t.Fatalf("xp gained = %d, want 10", settlement.XPGained)
	}

	eco := repo.economies[1]
	if eco == nil || eco.Currency != int64(settlement.Bounty) || eco.XP != 10 {
		t.Fatalf("winner economy = %+v, want currency %d and xp 10", eco, settlement.Bounty)
	}
	rec := repo.records[1]
	if rec == nil || rec.XPToday != 10 || rec.CountAgainst("uuid-b") != 1 {
		t.Fatalf("winner duel record = %+v, want xp_today 10 and one duel vs uuid-b", rec)
	}
	if repo.records[2] == nil || repo.records[2].CountAgainst("uuid-a") != 1 {
		t.Fatal("loser duel record missing the opponent counter bump")
	}
	if repo.outcomes != 1 {
		t.Fatalf("RecordDuelOutcome called %d times, want exactly 1", repo.outcomes)
	}
	if repo.quests[1] != 1 {
		t.Fatalf("winner quest progress = %d, want 1", repo.quests[1])
	}
	// settled sessions leave the store
	if store.Len() != 0 {
		t.Fatalf("store still holds %d sessions after settlement", store.Len())
	}
}

func TestSubmitDecisionWrongActorIgnored(t *testing.T) {
	repo := challengeFixture()
	store := session.NewStore()
	id := startDuel(t, repo, store)

	// uuid-b is the defender on turn one
	res, err := SubmitDecision(repo, store, id, "uuid-b", Decision{UnitIndex: intp(0)}, 30*time.Second, 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !res.Ignored || res.Notice == "" {
		t.Fatalf("expected ignored result with notice, got %+v", res)
	}

	store.With(id, func(s *duel.Session) error {
		if s.State != duel.StateAwaitingUnitChoice || s.CurrentTurnOwner != "uuid-a" {
			t.Fatalf("misdirected decision mutated state: %s owned by %s", s.State, s.CurrentTurnOwner)
		}
		for _, side := range []*duel.Side{&s.Challenger, &s.Opponent} {
			for i := range side.Units {
				if side.Units[i].CurrentHealth != side.Units[i].MaxHealth {
					t.Fatal("misdirected decision changed unit health")
				}
			}
		}
		return nil
	})
}

func TestSubmitDecisionStalePromptIgnored(t *testing.T) {
	repo := challengeFixture()
	store := session.NewStore()
	id := startDuel(t, repo, store)

	store.With(id, func(s *duel.Session) error {
		s.PromptRef = "prompt-2"
		return nil
	})
	res, err := SubmitDecision(repo, store, id, "uuid-a", Decision{UnitIndex: intp(0), PromptRef: "prompt-1"}, 30*time.Second, 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !res.Ignored {
		t.Fatal("stale prompt ref was not ignored")
	}
}

func TestSubmitDecisionDeadUnitAndTarget(t *testing.T) {
	repo := newMockRepo()
	repo.addPlayer(1, "uuid-a", "Ace", false)
	repo.addPlayer(2, "uuid-b", "Buggy", false)
	repo.rosters[1] = []duel.RosterUnit{
		rosterUnit(10, "Swordsman", 100, 10, 20, 100),
		rosterUnit(12, "Cook", 90, 8, 15, 90),
	}
	repo.rosters[2] = []duel.RosterUnit{
		rosterUnit(11, "Sniper", 80, 5, 10, 50),
		rosterUnit(13, "Doctor", 70, 4, 8, 60),
	}
	store := session.NewStore()
	id := startDuel(t, repo, store)

	store.With(id, func(s *duel.Session) error {
		s.Challenger.Units[0].CurrentHealth = 0
		s.Opponent.Units[0].CurrentHealth = 0
		return nil
	})

	// choosing a knocked-out unit does not advance the state
	res, err := SubmitDecision(repo, store, id, "uuid-a", Decision{UnitIndex: intp(0)}, 30*time.Second, 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !res.Ignored {
		t.Fatal("dead unit choice was accepted")
	}

	// walk a living unit up to target selection
	if res, _ = SubmitDecision(repo, store, id, "uuid-a", Decision{UnitIndex: intp(1)}, 30*time.Second, 0); res.Ignored {
		t.Fatalf("living unit choice ignored: %s", res.Notice)
	}
	if res, _ = SubmitDecision(repo, store, id, "uuid-a", Decision{Attack: duel.AttackNormal}, 30*time.Second, 0); res.Ignored {
		t.Fatalf("attack choice ignored: %s", res.Notice)
	}

	// dead target: notice, no damage, turn not consumed
	res, err = SubmitDecision(repo, store, id, "uuid-a", Decision{TargetIndex: intp(0)}, 30*time.Second, 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !res.Ignored || res.Resolved {
		t.Fatalf("dead target should be rejected without resolving, got %+v", res)
	}
	store.With(id, func(s *duel.Session) error {
		if s.State != duel.StateAwaitingTarget || s.CurrentTurnOwner != "uuid-a" {
			t.Fatalf("dead target consumed the turn: state %s, owner %s", s.State, s.CurrentTurnOwner)
		}
		return nil
	})

	// a living target resolves and flips the turn
	res, err = SubmitDecision(repo, store, id, "uuid-a", Decision{TargetIndex: intp(1)}, 30*time.Second, 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !res.Resolved {
		t.Fatalf("living target did not resolve: %+v", res)
	}
	store.With(id, func(s *duel.Session) error {
		if s.CurrentTurnOwner != "uuid-b" || s.State != duel.StateAwaitingUnitChoice {
			t.Fatalf("turn did not flip after resolution: state %s, owner %s", s.State, s.CurrentTurnOwner)
		}
		return nil
	})
}

func TestSubmitDecisionSpecialWithoutSpecialRejected(t *testing.T) {
	repo := challengeFixture()
	store := session.NewStore()
	id := startDuel(t, repo, store)

	if res, _ := SubmitDecision(repo, store, id, "uuid-a", Decision{UnitIndex: intp(0)}, 30*time.Second, 0); res.Ignored {
		t.Fatalf("unit choice ignored: %s", res.Notice)
	}
	res, err := SubmitDecision(repo, store, id, "uuid-a", Decision{Attack: duel.AttackSpecial}, 30*time.Second, 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !res.Ignored {
		t.Fatal("special attack accepted for a unit with no special")
	}
	store.With(id, func(s *duel.Session) error {
		if s.State != duel.StateAwaitingAttackType {
			t.Fatalf("state advanced to %s on rejected attack choice", s.State)
		}
		return nil
	})
}

func TestSettlementXPRespectsDailyCap(t *testing.T) {
	repo := newMockRepo()
	repo.addPlayer(1, "uuid-a", "Ace", false)
	repo.addPlayer(2, "uuid-b", "Buggy", false)
	rec := currentBucketRecord(1)
	rec.XPToday = 95
	repo.records[1] = rec

	s := &duel.Session{ID: "SESSIONCAP01"}
	winner := &duel.Side{PlayerID: 1, PlayerUUID: "uuid-a", PlayerName: "Ace"}
	loser := &duel.Side{PlayerID: 2, PlayerUUID: "uuid-b", PlayerName: "Buggy"}

	out := Settle(repo, s, winner, loser)
	if out.XPGained != 5 {
		t.Fatalf("xp gained = %d, want the 5 left under the daily cap", out.XPGained)
	}
	if repo.records[1].XPToday != 100 {
		t.Fatalf("xp_today = %d, want 100", repo.records[1].XPToday)
	}
}
