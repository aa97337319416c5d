package ward

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync/atomic"

	"fortio.org/safecast"
)

// DefaultSampleBudget is the number of container elements validated per
// check when the container is larger than the budget. Containers at or
// below the budget are validated in full.
const DefaultSampleBudget = 8

// sampler picks element indices for container checks. Index selection is
// pseudo-random without replacement, uniform over the index range, and
// reproducible: the generator is seeded from the configured seed, the
// container length, and a per-sampler call counter.
type sampler struct {
	budget int
	seed   uint64
	calls  atomic.Uint64
}

func newSampler(budget int, seed uint64) *sampler {
	if budget <= 0 {
		budget = DefaultSampleBudget
	}
	return &sampler{budget: budget, seed: seed}
}

// pick returns the indices to validate for a container of length n, in
// ascending order. For n <= budget every index is returned, which makes
// small containers exhaustively checked and deterministic.
func (s *sampler) pick(n int) []int {
	if n <= 0 {
		return nil
	}
	if n <= s.budget {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	un, err := safecast.Conv[uint64](n)
	if err != nil {
		panic(fmt.Errorf("sample length overflow: %w", err))
	}
	seq := s.calls.Add(1)
	rng := rand.New(rand.NewPCG(s.seed, seq*0x9e3779b97f4a7c15^un))

	// Floyd's sampling: budget distinct indices out of n.
	chosen := make(map[int]struct{}, s.budget)
	out := make([]int, 0, s.budget)
	for j := n - s.budget; j < n; j++ {
		t := int(rng.Int64N(int64(j) + 1))
		if _, dup := chosen[t]; dup {
			t = j
		}
		chosen[t] = struct{}{}
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// limit reports how many entries of an n-entry container the budget
// covers. Used for maps, where entries are drawn from iteration order
// rather than by index.
func (s *sampler) limit(n int) int {
	if n < s.budget {
		return n
	}
	return s.budget
}
