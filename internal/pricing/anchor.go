package pricing

import (
	"fmt"
	"sort"
)

// ResolveAnchor picks the anchor tier for a requested quantity.
//
// Tiers are volume-discount thresholds: the result is the largest tier
// quantity that is at or below the request. A request below every
// known tier still pays the smallest tier's price; there is no
// extrapolation and no interpolation between tiers.
func ResolveAnchor(tiers map[int]float64, qty int) (int, float64, error) {
	if len(tiers) == 0 {
		return 0, 0, fmt.Errorf("no anchors available: %w", ErrNoPriceData)
	}

	keys := make([]int, 0, len(tiers))
	for k := range tiers {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for i := len(keys) - 1; i >= 0; i-- {
		if qty >= keys[i] {
			return keys[i], tiers[keys[i]], nil
		}
	}

	// Below the smallest tier: charge the smallest tier anyway.
	return keys[0], tiers[keys[0]], nil
}
