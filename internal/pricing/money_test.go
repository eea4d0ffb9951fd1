package pricing

import "testing"

func TestRoundPrice(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{4500, 4500},
		{4500.4, 4500},
		{4500.5, 4501},
		{4500.6, 4501},
		{0, 0},
	}

	for _, tc := range cases {
		if got := RoundPrice(tc.in); got != tc.want {
			t.Errorf("RoundPrice(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
