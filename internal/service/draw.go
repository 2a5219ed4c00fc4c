package service

import "math/rand/v2"

// Draw picks min(n, len(pool)) distinct elements of pool uniformly at random.
//
// It runs a partial Fisher-Yates shuffle over a copy, stopping after n swaps,
// so the cost is O(len(pool)) for the copy plus O(n) for the draw. The order of
// the returned slice is the draw order. pool itself is never modified.
func Draw[T any](rng *rand.Rand, pool []T, n int) []T {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	if n > len(pool) {
		n = len(pool)
	}

	work := make([]T, len(pool))
	copy(work, pool)

	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(work)-i)
		work[i], work[j] = work[j], work[i]
	}
	return work[:n]
}
