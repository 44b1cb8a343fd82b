package db

import "testing"

func TestWeightClassForVolume(t *testing.T) {
	t.Parallel()

	cases := []struct {
		volume int
		want   string
	}{
		{volume: 5000, want: "A/A"},
		{volume: 1001, want: "A/A"},
		{volume: 1000, want: "A/B"},
		{volume: 200, want: "A/B"},
		{volume: 199, want: "B/C"},
		{volume: 0, want: "B/C"},
	}

	for _, tc := range cases {
		if got := WeightClassForVolume(tc.volume).String(); got != tc.want {
			t.Fatalf("WeightClassForVolume(%d) = %s, want %s", tc.volume, got, tc.want)
		}
	}
}
