package core

import (
	"fmt"
	"math"
	"sort"
)

// GenParams configures the queue generator behavior.
type GenParams struct {
	Lanes    int     // Number of queues shooters are dealt into
	MinAmmo  int     // Lower edge of the ammo window (e.g., 10)
	MaxAmmo  int     // Upper edge of the ammo window (e.g., 40)
	AmmoStep int     // Ammo values are rounded down to a multiple of this
	Skew     float64 // Exponent applied to the uniform draw; < 1 favours large ammo
}

// DefaultGenParams returns sensible defaults for queue generation.
func DefaultGenParams() GenParams {
	return GenParams{
		Lanes:    3,
		MinAmmo:  10,
		MaxAmmo:  40,
		AmmoStep: 5,
		Skew:     0.5,
	}
}

// Rand is the random source used by the generator.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64 // In [0, 1)
	Intn(n int) int   // In [0, n)
}

// SimpleRNG is a deterministic pseudo-random number generator (xorshift64).
type SimpleRNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *SimpleRNG {
	if seed == 0 {
		seed = 88172645463325252 // Default seed
	}
	return &SimpleRNG{state: seed}
}

// Next returns the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float64 returns a random float64 in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// IDSeq hands out shooter ids for one session: "s0", "s1", ...
// The zero value starts at "s0".
type IDSeq struct {
	next int
}

// Next returns a fresh id.
func (q *IDSeq) Next() string {
	id := fmt.Sprintf("s%d", q.next)
	q.next++
	return id
}

// GenerateQueues builds the lanes of shooters for a level.
// The generated queues guarantee, for every layer:
//
//	sum(ammo of that layer) == cells of that layer * capacity
//
// Shooters of all layers are shuffled together and dealt round-robin.
func GenerateQueues(l *Level, p GenParams, rng Rand, ids *IDSeq) [][]Shooter {
	lanes := p.Lanes
	if lanes < 1 {
		lanes = 1
	}

	counts := l.CellCounts()
	layers := make([]LayerID, 0, len(counts))
	for layer := range counts {
		layers = append(layers, layer)
	}
	sort.Slice(layers, func(i, j int) bool { return layers[i] < layers[j] })

	all := make([]Shooter, 0)
	for _, layer := range layers {
		remaining := counts[layer] * l.Capacity
		for remaining > 0 {
			ammo := drawAmmo(remaining, p, rng)
			all = append(all, Shooter{
				ID:    ids.Next(),
				Color: l.ColorName(layer),
				Layer: layer,
				Ammo:  ammo,
			})
			remaining -= ammo
		}
	}

	// Fisher-Yates over the whole deck
	for i := len(all) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		all[i], all[j] = all[j], all[i]
	}

	queues := make([][]Shooter, lanes)
	for i := range queues {
		queues[i] = make([]Shooter, 0, len(all)/lanes+1)
	}
	for i, s := range all {
		queues[i%lanes] = append(queues[i%lanes], s)
	}
	return queues
}

// drawAmmo picks one shooter's ammo, never more than remaining and never 0.
func drawAmmo(remaining int, p GenParams, rng Rand) int {
	hi := min(p.MaxAmmo, remaining)
	if hi < 1 {
		hi = remaining
	}
	lo := min(p.MinAmmo, remaining)
	if lo < 1 {
		lo = 1
	}
	if hi <= lo {
		return hi
	}

	span := hi - lo
	skew := p.Skew
	if skew <= 0 {
		skew = 1
	}
	ammo := lo + int(math.Floor(float64(span+1)*math.Pow(rng.Float64(), skew)))
	if ammo > hi {
		ammo = hi
	}
	if p.AmmoStep > 1 {
		ammo -= ammo % p.AmmoStep
		if ammo < lo {
			ammo = lo
		}
	}
	return ammo
}
