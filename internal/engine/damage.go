package engine

import (
	"errors"
	"math/rand"

	"github.com/nasifowls01-ui/opb/internal/duel"
)

var (
	ErrTargetDown = errors.New("target is already knocked out")
	ErrNoSpecial  = errors.New("unit has no special attack")
)

// Attack probability policy. A normal attack misses 5% of the time. A special
// attempt is a single draw: below 0.60 it lands as a normal-magnitude hit,
// below 0.80 as a special-magnitude hit, the rest misses outright.
const (
	normalMissChance    = 0.05
	specialNormalCutoff = 0.60
	specialHitCutoff    = 0.80
)

// ResolveAttack rolls the outcome of one attack and applies the damage to
// the target's current health, clamped at zero. The target must be alive and
// a special attack requires the attacker to have one defined; both are
// rejected without touching any state so the caller can re-prompt.
func ResolveAttack(attacker *duel.UnitSnapshot, kind duel.AttackKind, target *duel.UnitSnapshot) (duel.AttackResult, error) {
	if !target.Alive() {
		return duel.AttackResult{}, ErrTargetDown
	}
	if kind == duel.AttackSpecial && !attacker.HasSpecial {
		return duel.AttackResult{}, ErrNoSpecial
	}

	res := duel.AttackResult{
		AttackerName: attacker.Name,
		TargetName:   target.Name,
		Kind:         kind,
		TargetMax:    target.MaxHealth,
	}

	switch kind {
	case duel.AttackSpecial:
		switch roll := rand.Float64(); {
		case roll < specialNormalCutoff:
			res.Outcome = duel.OutcomeNormal
			res.Damage = randRange(attacker.AttackMin, attacker.AttackMax)
		case roll < specialHitCutoff:
			res.Outcome = duel.OutcomeSpecial
			res.Damage = randRange(attacker.SpecialMin, attacker.SpecialMax)
		default:
			res.Outcome = duel.OutcomeMiss
		}
	default:
		if rand.Float64() < normalMissChance {
			res.Outcome = duel.OutcomeMiss
		} else {
			res.Outcome = duel.OutcomeNormal
			res.Damage = randRange(attacker.AttackMin, attacker.AttackMax)
		}
	}

	target.CurrentHealth -= res.Damage
	if target.CurrentHealth < 0 {
		target.CurrentHealth = 0
	}
	res.TargetHealth = target.CurrentHealth
	res.Lethal = target.CurrentHealth == 0
	return res, nil
}

// randRange draws a uniform integer from [min, max] inclusive.
func randRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.Intn(max-min+1)
}
