package crypto

import (
	"crypto/rand"
	"math/big"
)

// Shuffle returns a copy of items in a uniformly random order, using a
// Fisher-Yates shuffle driven by crypto/rand.
func Shuffle[T any](items []T) ([]T, error) {
	out := make([]T, len(items))
	copy(out, items)

	for i := len(out) - 1; i > 0; i-- {
		j, err := randIndex(i + 1)
		if err != nil {
			return nil, err
		}
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// randIndex returns a uniform random integer in [0, n).
func randIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
