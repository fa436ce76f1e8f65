package kivi

import (
	"reflect"
	"testing"
)

func valuesAt(sources []int, indices []int) []int {
	if len(indices) == 0 {
		return nil
	}
	out := make([]int, len(indices))
	for i, idx := range indices {
		out[i] = sources[idx]
	}
	return out
}

func TestLongestIncreasingSubsequence(t *testing.T) {
	cases := []struct {
		name       string
		in         []int
		wantValues []int
	}{
		{"empty", nil, nil},
		{"all increasing", []int{0, 1, 2, 3}, []int{0, 1, 2, 3}},
		{"skips sentinel", []int{2, -1, 0, 3, 1}, []int{0, 1}},
		{"classic", []int{3, 1, 0, 2, 4, 1}, []int{0, 2, 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := longestIncreasingSubsequence(tc.in)
			gotValues := valuesAt(tc.in, got)
			if !reflect.DeepEqual(gotValues, tc.wantValues) {
				t.Fatalf("values = %v, want %v (indices %v)", gotValues, tc.wantValues, got)
			}
			for i := 1; i < len(got); i++ {
				if tc.in[got[i-1]] >= tc.in[got[i]] {
					t.Fatalf("result %v not strictly increasing in source values", got)
				}
			}
		})
	}
}
