package combat

import (
	"math"

	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Damage is the health attacker takes from defender under multiplier m
func Damage(attacker, defender *entities.Unit, m Multiplier) int32 {
	base := min(max(int64(attacker.Attack)-int64(defender.Defence), 0), math.MaxInt32)
	return m.Apply(int32(base))
}

// Resolve decides one round between a (side A) and b (side B) given each
// side's completion ratio
func Resolve(a, b *entities.Unit, ratioA, ratioB float64) (*Result, error) {
	if a == nil || b == nil {
		return nil, errors.InvalidArgument("both units are required")
	}
	if a == b {
		return nil, errors.InvalidArgumentf("unit %s cannot fight itself", a.Name).WithMeta("unit_id", a.ID)
	}
	if a.IsFainted() || b.IsFainted() {
		return nil, errors.InvalidArgument("fainted units cannot fight")
	}

	mA, mB := Multipliers(CompletionFromRatio(ratioA), CompletionFromRatio(ratioB))
	res := &Result{
		HealthA:     a.Health,
		HealthB:     b.Health,
		MultiplierA: mA,
		MultiplierB: mB,
	}

	switch {
	case a.Speed > b.Speed:
		res.FirstStrike = entities.SideA
		res.DamageToB = Damage(a, b, mA)
		res.HealthB -= res.DamageToB
		if res.HealthB > 0 {
			res.Countered = true
			res.DamageToA = Damage(b, a, mB)
			res.HealthA -= res.DamageToA
		}
	case b.Speed > a.Speed:
		res.FirstStrike = entities.SideB
		res.DamageToA = Damage(b, a, mB)
		res.HealthA -= res.DamageToA
		if res.HealthA > 0 {
			res.Countered = true
			res.DamageToB = Damage(a, b, mA)
			res.HealthB -= res.DamageToB
		}
	default:
		res.Simultaneous = true
		res.DamageToB = Damage(a, b, mA)
		res.DamageToA = Damage(b, a, mB)
		res.HealthA -= res.DamageToA
		res.HealthB -= res.DamageToB
	}

	if res.HealthA > 0 && res.HealthB > 0 {
		res.Fatigue = true
		res.HealthA -= FatigueDamage
		res.HealthB -= FatigueDamage
	}

	switch {
	case res.FaintedA() && res.FaintedB():
		res.Verdict = VerdictDraw
	case res.FaintedB():
		res.Verdict = VerdictSideA
	case res.FaintedA():
		res.Verdict = VerdictSideB
	default:
		res.Verdict = VerdictStalemate
	}

	return res, nil
}
