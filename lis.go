package kivi

// longestIncreasingSubsequence returns the indices (into sources) of a
// strictly increasing subsequence of maximum length, skipping -1 sentinels
// (§4.2). It is the classical O(n log n) patience-sort variant with a
// predecessors array.
func longestIncreasingSubsequence(sources []int) []int {
	n := len(sources)
	if n == 0 {
		return nil
	}

	predecessors := make([]int, n)
	// tails[k] is the index into sources of the smallest tail value of any
	// increasing subsequence of length k+1 found so far.
	tails := make([]int, 0, n)

	for i := 0; i < n; i++ {
		v := sources[i]
		if v == -1 {
			continue
		}

		if len(tails) == 0 || sources[tails[len(tails)-1]] < v {
			if len(tails) > 0 {
				predecessors[i] = tails[len(tails)-1]
			} else {
				predecessors[i] = -1
			}
			tails = append(tails, i)
			continue
		}

		lo, hi := 0, len(tails)-1
		pos := len(tails)
		for lo <= hi {
			mid := (lo + hi) / 2
			if sources[tails[mid]] >= v {
				pos = mid
				hi = mid - 1
			} else {
				lo = mid + 1
			}
		}
		if pos > 0 {
			predecessors[i] = tails[pos-1]
		} else {
			predecessors[i] = -1
		}
		tails[pos] = i
	}

	if len(tails) == 0 {
		return nil
	}
	result := make([]int, len(tails))
	k := tails[len(tails)-1]
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = k
		k = predecessors[k]
	}
	return result
}
