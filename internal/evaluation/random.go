package evaluation

import (
	"fmt"
	"math/rand"
)

// Random is the seeded generator behind all dice notation. The same seed
// and call sequence always produce the same outcomes, which the tests and
// any replay tooling depend on. It is not safe for concurrent use; the
// engine is synchronous and threads one instance through every call.
//
// All arguments must be strictly positive. That is a contract precondition,
// not a recoverable error.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a generator from a 64-bit seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Die returns the sum of rolling amount dice with the given sides, sampled
// as a single uniform draw over [amount, amount*sides]. The combined-range
// draw is deliberate: replacing it with a loop of per-die draws would shift
// the distribution and desync every seeded sequence.
func (r *Random) Die(amount, sides int) int {
	mustBePositive("die", amount, sides)
	min := amount
	max := amount * sides
	return min + r.rng.Intn(max-min+1)
}

// Pool rolls amount single dice and counts how many land at or above the
// threshold.
func (r *Random) Pool(amount, sides, threshold int) int {
	mustBePositive("pool", amount, sides, threshold)
	hits := 0
	for i := 0; i < amount; i++ {
		if r.Die(1, sides) >= threshold {
			hits++
		}
	}
	return hits
}

// PoolReverse rolls amount single dice and counts how many land at or below
// the threshold.
func (r *Random) PoolReverse(amount, sides, threshold int) int {
	mustBePositive("pool reverse", amount, sides, threshold)
	hits := 0
	for i := 0; i < amount; i++ {
		if r.Die(1, sides) <= threshold {
			hits++
		}
	}
	return hits
}

// DieExplode rolls amount dice, rerolling and accumulating every die that
// shows its maximum until it doesn't, and sums everything rolled.
func (r *Random) DieExplode(amount, sides int) int {
	mustBePositive("die explode", amount, sides)
	total := 0
	for i := 0; i < amount; i++ {
		for {
			roll := r.Die(1, sides)
			total += roll
			if roll != sides {
				break
			}
		}
	}
	return total
}

func mustBePositive(op string, args ...int) {
	for _, a := range args {
		if a <= 0 {
			panic(fmt.Sprintf("random %s: arguments must be positive, got %v", op, args))
		}
	}
}
