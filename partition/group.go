package partition

import "sort"

// GroupByModule returns the node sets of r ordered by ascending module id,
// each set sorted by ascending node index. Every node appears exactly once.
// Complexity: O(N log N).
func GroupByModule(r *Result) [][]int {
	if r == nil || len(r.Module) == 0 {
		return nil
	}
	ids := make([]int, 0)
	groups := make(map[int][]int)
	var i, m int
	for i, m = range r.Module {
		if _, ok := groups[m]; !ok {
			ids = append(ids, m)
		}
		groups[m] = append(groups[m], i)
	}
	sort.Ints(ids)
	out := make([][]int, len(ids))
	for i, m = range ids {
		out[i] = groups[m] // already ascending: appended in index order
	}

	return out
}

// NumModules returns the number of distinct module ids in r.
// Complexity: O(N).
func NumModules(r *Result) int {
	if r == nil {
		return 0
	}
	seen := make(map[int]struct{}, len(r.Module))
	var m int
	for _, m = range r.Module {
		seen[m] = struct{}{}
	}

	return len(seen)
}
