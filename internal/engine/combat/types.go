package combat

import (
	"fmt"
	"math"

	"github.com/KirkDiggler/rpg-battle/internal/entities"
)

// FatigueDamage is the health both units lose when neither faints in the
// attack phase
const FatigueDamage int32 = 1

// Completion is a completion ratio in hundredths, 0 through 100
type Completion int64

// CompletionFromRatio quantizes a ratio in [0,1] to hundredths. Values
// outside the range are clamped.
func CompletionFromRatio(ratio float64) Completion {
	switch {
	case math.IsNaN(ratio) || ratio <= 0:
		return 0
	case ratio >= 1:
		return 100
	}
	return Completion(math.Round(ratio * 100))
}

// Ratio returns the completion as a float in [0,1]
func (c Completion) Ratio() float64 {
	return float64(c) / 100
}

// Multiplier is an exact damage multiplier Num/Den
type Multiplier struct {
	Num int64 `json:"num"`
	Den int64 `json:"den"`
}

// Neutral is the multiplier that leaves damage unchanged
var Neutral = Multiplier{Num: 1, Den: 1}

// Float64 returns the multiplier as a float
func (m Multiplier) Float64() float64 {
	return float64(m.Num) / float64(m.Den)
}

// Apply returns ceil(base * m) for a non-negative base, saturating at
// math.MaxInt32
func (m Multiplier) Apply(base int32) int32 {
	if base <= 0 || m.Num <= 0 || m.Den <= 0 {
		return 0
	}
	q := (int64(base)*m.Num + m.Den - 1) / m.Den
	if q > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(q)
}

// String implements fmt.Stringer
func (m Multiplier) String() string {
	return fmt.Sprintf("%d/%d", m.Num, m.Den)
}

// Multipliers returns each side's multiplier, own completion over the
// opponent's. If either completion is zero both sides fight at Neutral.
func Multipliers(a, b Completion) (Multiplier, Multiplier) {
	if a <= 0 || b <= 0 {
		return Neutral, Neutral
	}
	return Multiplier{Num: int64(a), Den: int64(b)}, Multiplier{Num: int64(b), Den: int64(a)}
}

// Verdict is the decision of one round
type Verdict string

// Round verdicts
const (
	VerdictSideA     Verdict = "side_a"
	VerdictSideB     Verdict = "side_b"
	VerdictDraw      Verdict = "draw"
	VerdictStalemate Verdict = "stalemate"
)

// Decisive reports whether the round removed at least one unit
func (v Verdict) Decisive() bool {
	return v != VerdictStalemate
}

// Result describes a resolved round. Health values are raw and may be
// negative; the caller clamps when applying them.
type Result struct {
	Verdict Verdict `json:"verdict"`

	// FirstStrike is the side that attacked first, empty when simultaneous
	FirstStrike  entities.Side `json:"first_strike,omitempty"`
	Simultaneous bool          `json:"simultaneous"`
	Countered    bool          `json:"countered"`
	Fatigue      bool          `json:"fatigue"`

	DamageToA int32 `json:"damage_to_a"`
	DamageToB int32 `json:"damage_to_b"`
	HealthA   int32 `json:"health_a"`
	HealthB   int32 `json:"health_b"`

	MultiplierA Multiplier `json:"multiplier_a"`
	MultiplierB Multiplier `json:"multiplier_b"`
}

// Winner returns the winning side, or "" for a draw or stalemate
func (r *Result) Winner() entities.Side {
	switch r.Verdict {
	case VerdictSideA:
		return entities.SideA
	case VerdictSideB:
		return entities.SideB
	}
	return ""
}

// FaintedA reports whether side A's unit ended the round fainted
func (r *Result) FaintedA() bool {
	return r.HealthA <= 0
}

// FaintedB reports whether side B's unit ended the round fainted
func (r *Result) FaintedB() bool {
	return r.HealthB <= 0
}
