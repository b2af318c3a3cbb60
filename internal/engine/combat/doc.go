// Package combat resolves a single round between two units.
//
// Resolve is a pure function: it reads both units and both completion ratios
// and returns a Result describing what happened. It never mutates its inputs;
// applying the result (health, level, registry) is the caller's job.
//
// A round runs in three phases:
//
//  1. Attack. The faster unit strikes first and the round ends if the
//     defender faints; otherwise the defender counterattacks. Equal speeds
//     strike simultaneously.
//  2. Fatigue. If both units are still standing each loses 1 health.
//  3. Verdict. One survivor wins, no survivor is a draw, two survivors are a
//     stalemate.
//
// Damage is ceil(max(attack - defence, 0) * multiplier) where a side's
// multiplier is its completion ratio divided by the opponent's. Ratios are
// quantized to hundredths so damage is computed exactly in integers.
package combat
