package services

import (
	"sync"

	"deliveryplanner/internal/pkg/errs"
)

// MaxRouteStops is the longest route the planner searches exhaustively.
const MaxRouteStops = 8

// PermutationTable hands out all orderings of [0..k-1] for k in
// [1..MaxRouteStops]. Each length is generated once on first use; the returned
// slices are shared and must not be modified. Safe for concurrent use.
type PermutationTable struct {
	plain      [MaxRouteStops + 1]lazyPermutations
	firstFixed [MaxRouteStops + 1]lazyPermutations
}

type lazyPermutations struct {
	once  sync.Once
	perms [][]int
}

// NewPermutationTable returns an empty table.
func NewPermutationTable() *PermutationTable {
	return &PermutationTable{}
}

// Permutations returns all k! orderings of [0..k-1].
func (t *PermutationTable) Permutations(k int) ([][]int, error) {
	if err := checkStops(k); err != nil {
		return nil, err
	}
	slot := &t.plain[k]
	slot.once.Do(func() {
		slot.perms = permute(k)
	})
	return slot.perms, nil
}

// PermutationsFirstFixed returns the (k-1)! orderings of [0..k-1] that keep 0
// at the first position.
func (t *PermutationTable) PermutationsFirstFixed(k int) ([][]int, error) {
	if err := checkStops(k); err != nil {
		return nil, err
	}
	slot := &t.firstFixed[k]
	slot.once.Do(func() {
		if k == 1 {
			slot.perms = [][]int{{0}}
			return
		}
		rest := permute(k - 1)
		slot.perms = make([][]int, len(rest))
		for i, p := range rest {
			fixed := make([]int, k)
			for j, v := range p {
				fixed[j+1] = v + 1
			}
			slot.perms[i] = fixed
		}
	})
	return slot.perms, nil
}

func checkStops(k int) error {
	if k < 1 || k > MaxRouteStops {
		return errs.NewValueIsOutOfRangeError("route length", k, 1, MaxRouteStops)
	}
	return nil
}

// permute lists permutations in lexicographic order.
func permute(k int) [][]int {
	current := make([]int, k)
	for i := range current {
		current[i] = i
	}

	out := make([][]int, 0, factorial(k))
	for {
		out = append(out, append([]int(nil), current...))

		i := k - 2
		for i >= 0 && current[i] >= current[i+1] {
			i--
		}
		if i < 0 {
			return out
		}
		j := k - 1
		for current[j] <= current[i] {
			j--
		}
		current[i], current[j] = current[j], current[i]
		for l, r := i+1, k-1; l < r; l, r = l+1, r-1 {
			current[l], current[r] = current[r], current[l]
		}
	}
}

func factorial(k int) int {
	f := 1
	for i := 2; i <= k; i++ {
		f *= i
	}
	return f
}
