package engine

import (
	"testing"

	"github.com/nasifowls01-ui/opb/internal/duel"
)

func attackerUnit() duel.UnitSnapshot {
	return duel.UnitSnapshot{
		Name: "Zoro", AttackMin: 10, AttackMax: 20,
		HasSpecial: true, SpecialName: "Onigiri", SpecialMin: 30, SpecialMax: 40,
		MaxHealth: 100, CurrentHealth: 100,
	}
}

func targetUnit(hp int) duel.UnitSnapshot {
	return duel.UnitSnapshot{Name: "Dummy", MaxHealth: 100, CurrentHealth: hp}
}

func TestResolveAttack_HealthNeverNegative(t *testing.T) {
	atk := attackerUnit()
	for i := 0; i < 2000; i++ {
		tgt := targetUnit(5)
		res, err := ResolveAttack(&atk, duel.AttackNormal, &tgt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tgt.CurrentHealth < 0 || tgt.CurrentHealth > tgt.MaxHealth {
			t.Fatalf("health out of bounds: %d", tgt.CurrentHealth)
		}
		if res.TargetHealth != tgt.CurrentHealth {
			t.Fatalf("result health %d != target health %d", res.TargetHealth, tgt.CurrentHealth)
		}
		if res.Lethal != (tgt.CurrentHealth == 0) {
			t.Fatalf("lethal flag mismatch: %+v", res)
		}
	}
}

func TestResolveAttack_DeadTargetRejected(t *testing.T) {
	atk := attackerUnit()
	tgt := targetUnit(0)
	if _, err := ResolveAttack(&atk, duel.AttackNormal, &tgt); err != ErrTargetDown {
		t.Fatalf("expected ErrTargetDown, got %v", err)
	}
	if tgt.CurrentHealth != 0 {
		t.Fatalf("rejected attack must not touch health")
	}
}

func TestResolveAttack_SpecialWithoutSpecialRejected(t *testing.T) {
	atk := attackerUnit()
	atk.HasSpecial = false
	tgt := targetUnit(50)
	if _, err := ResolveAttack(&atk, duel.AttackSpecial, &tgt); err != ErrNoSpecial {
		t.Fatalf("expected ErrNoSpecial, got %v", err)
	}
	if tgt.CurrentHealth != 50 {
		t.Fatalf("rejected attack must not touch health")
	}
}

func TestResolveAttack_NormalDistribution(t *testing.T) {
	atk := attackerUnit()
	const trials = 20000
	misses := 0
	for i := 0; i < trials; i++ {
		tgt := targetUnit(1000)
		tgt.MaxHealth = 1000
		res, err := ResolveAttack(&atk, duel.AttackNormal, &tgt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		switch res.Outcome {
		case duel.OutcomeMiss:
			misses++
			if res.Damage != 0 {
				t.Fatalf("miss must deal 0 damage, got %d", res.Damage)
			}
		case duel.OutcomeNormal:
			if res.Damage < atk.AttackMin || res.Damage > atk.AttackMax {
				t.Fatalf("normal damage %d outside [%d,%d]", res.Damage, atk.AttackMin, atk.AttackMax)
			}
		default:
			t.Fatalf("unexpected outcome %s for a normal attack", res.Outcome)
		}
	}
	missRate := float64(misses) / trials
	if missRate < 0.035 || missRate > 0.065 {
		t.Fatalf("normal miss rate %.4f too far from 0.05", missRate)
	}
}

func TestResolveAttack_SpecialDistribution(t *testing.T) {
	atk := attackerUnit()
	const trials = 20000
	counts := map[duel.Outcome]int{}
	for i := 0; i < trials; i++ {
		tgt := targetUnit(1000)
		tgt.MaxHealth = 1000
		res, err := ResolveAttack(&atk, duel.AttackSpecial, &tgt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		counts[res.Outcome]++
		switch res.Outcome {
		case duel.OutcomeNormal:
			if res.Damage < atk.AttackMin || res.Damage > atk.AttackMax {
				t.Fatalf("normal-magnitude damage %d outside [%d,%d]", res.Damage, atk.AttackMin, atk.AttackMax)
			}
		case duel.OutcomeSpecial:
			if res.Damage < atk.SpecialMin || res.Damage > atk.SpecialMax {
				t.Fatalf("special damage %d outside [%d,%d]", res.Damage, atk.SpecialMin, atk.SpecialMax)
			}
		}
	}
	within := func(o duel.Outcome, want, tol float64) {
		rate := float64(counts[o]) / trials
		if rate < want-tol || rate > want+tol {
			t.Fatalf("outcome %s rate %.4f too far from %.2f", o, rate, want)
		}
	}
	within(duel.OutcomeNormal, 0.60, 0.02)
	within(duel.OutcomeSpecial, 0.20, 0.02)
	within(duel.OutcomeMiss, 0.20, 0.02)
}

func TestRollBounty_Bounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		b := RollBounty(0)
		if b < 100 || b > 200 {
			t.Fatalf("bounty %d outside [100,200] for zero xp", b)
		}
	}
	for i := 0; i < 1000; i++ {
		b := RollBounty(10000)
		if b < 1000 || b > 1500 {
			t.Fatalf("bounty %d outside [1000,1500] for 10000 xp", b)
		}
	}
}

func TestXPGain_DailyCap(t *testing.T) {
	cases := []struct{ today, want int }{
		{0, 10},
		{90, 10},
		{95, 5},
		{100, 0},
		{150, 0},
	}
	for _, c := range cases {
		if got := XPGain(c.today); got != c.want {
			t.Fatalf("XPGain(%d) = %d, want %d", c.today, got, c.want)
		}
	}
}
