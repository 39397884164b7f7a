package scaling

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinear_Flat(t *testing.T) {
	assert.Equal(t, []int{1, 1, 1, 1, 1}, Linear([]int{1660, 1660, 1660, 1660, 1660}))
}

func TestLinear_Band(t *testing.T) {
	got := Linear([]int{0, 50, 100, 33})
	assert.Equal(t, []int{100, 150, 200, 133}, got)
}

func TestLinear_Truncates(t *testing.T) {
	// (1 * 100) / 3 = 33.33 -> 33
	assert.Equal(t, []int{100, 133, 166, 200}, Linear([]int{10, 11, 12, 13}))
}

func TestLinear_Empty(t *testing.T) {
	assert.Empty(t, Linear(nil))
}

func TestLinear_Monotone(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 50; trial++ {
		raw := make([]int, 30)
		for i := range raw {
			raw[i] = rng.Intn(5000)
		}
		scaled := Linear(raw)

		idx := make([]int, len(raw))
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(a, b int) bool { return raw[idx[a]] < raw[idx[b]] })
		for k := 1; k < len(idx); k++ {
			assert.LessOrEqual(t, scaled[idx[k-1]], scaled[idx[k]])
		}
		for _, s := range scaled {
			if s != Flat {
				assert.GreaterOrEqual(t, s, Low)
				assert.LessOrEqual(t, s, High)
			}
		}
	}
}
