package translate

import (
	"container/heap"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/kegliz/qtranslate/qc/circuit"
	"github.com/kegliz/qtranslate/qc/equiv"
	"github.com/kegliz/qtranslate/qc/param"
)

// Names of instructions assumed supported by any backend; they are
// never rewritten.
var basicInstrs = []string{"measure", "reset", "barrier", "snapshot"}

// transform is one planned rewrite step: every remaining instance of
// Name is to be replaced by Template with Params bound.
type transform struct {
	Name     string
	Params   []param.Symbol
	Template *circuit.Circuit
}

// edgeCost is the fixed cost of one rewrite hop. Any positive constant
// preserving tie-breaks would do.
const edgeCost = 1e-3

// Heuristic gauges the distance between two bases.
type Heuristic func(basis, target map[string]bool) float64

// basisHeuristic is the symmetric-difference cardinality. Admissible:
// each hop removes one name and adds finitely many, so at least one
// differing element is resolved per step.
func basisHeuristic(basis, target map[string]bool) float64 {
	n := 0
	for name := range basis {
		if !target[name] {
			n++
		}
	}
	for name := range target {
		if !basis[name] {
			n++
		}
	}
	return float64(n)
}

// budget bounds a single search run. Zero values mean unbounded.
type budget struct {
	maxIterations int
	deadline      time.Time
}

func (b budget) exceeded(iter int) bool {
	if b.maxIterations > 0 && iter > b.maxIterations {
		return true
	}
	if !b.deadline.IsZero() && time.Now().After(b.deadline) {
		return true
	}
	return false
}

// searchItem is one heap entry. Stale entries are skipped on pop
// rather than removed, so the same basis may appear more than once.
type searchItem struct {
	est   float64
	count int // monotonic insertion counter; FIFO among equal costs
	key   string
}

type searchHeap []searchItem

func (h searchHeap) Len() int { return len(h) }
func (h searchHeap) Less(i, j int) bool {
	if h[i].est != h[j].est {
		return h[i].est < h[j].est
	}
	return h[i].count < h[j].count
}
func (h searchHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *searchHeap) Push(x interface{}) { *h = append(*h, x.(searchItem)) }
func (h *searchHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// cameFrom records the predecessor of a basis with the rewrite that
// produced it.
type cameFrom struct {
	prevKey string
	tr      transform
}

// basisSearch runs A* over frozen sets of gate names. It returns the
// ordered rewrite plan, or nil when the target basis is unreachable.
// Budget exhaustion returns ErrBudgetExceeded and never a partial
// plan.
func basisSearch(lib *equiv.Library, source, target map[string]bool, h Heuristic, b budget) ([]transform, error) {
	sourceKey := basisKey(source)

	openSet := map[string]map[string]bool{sourceKey: source}
	closedSet := make(map[string]bool)
	cameFromMap := make(map[string]cameFrom)
	costFromSource := map[string]float64{sourceKey: 0}

	var open searchHeap
	counter := 0
	push := func(est float64, key string) {
		heap.Push(&open, searchItem{est: est, count: counter, key: key})
		counter++
	}
	cost := func(key string) float64 {
		if c, ok := costFromSource[key]; ok {
			return c
		}
		return math.Inf(1)
	}

	push(h(source, target), sourceKey)

	for iter := 0; open.Len() > 0; iter++ {
		if b.exceeded(iter) {
			return nil, ErrBudgetExceeded
		}

		item := heap.Pop(&open).(searchItem)
		if closedSet[item.key] {
			// Closing a basis does not remove its stale heap entries.
			continue
		}
		current := openSet[item.key]

		if isSubset(current, target) {
			return reconstruct(cameFromMap, item.key, sourceKey), nil
		}

		delete(openSet, item.key)
		closedSet[item.key] = true

		tentative := cost(item.key) + edgeCost
		for _, name := range sortedNames(current) {
			for _, eq := range lib.SearchEquivalences(name) {
				neighbor := rewriteBasis(current, name, eq.Template.Names())
				neighborKey := basisKey(neighbor)
				if closedSet[neighborKey] {
					continue
				}
				if tentative >= cost(neighborKey) {
					continue
				}
				openSet[neighborKey] = neighbor
				cameFromMap[neighborKey] = cameFrom{
					prevKey: item.key,
					tr:      transform{Name: name, Params: eq.Params, Template: eq.Template},
				}
				costFromSource[neighborKey] = tentative
				push(tentative+h(neighbor, target), neighborKey)
			}
		}
	}
	return nil, nil
}

// rewriteBasis is the planner edge: (basis \ {name}) ∪ names(template).
func rewriteBasis(basis map[string]bool, name string, templateCounts map[string]int) map[string]bool {
	out := make(map[string]bool, len(basis)+len(templateCounts))
	for n := range basis {
		if n != name {
			out[n] = true
		}
	}
	for n := range templateCounts {
		out[n] = true
	}
	return out
}

func reconstruct(cameFromMap map[string]cameFrom, goalKey, sourceKey string) []transform {
	var rtn []transform
	for key := goalKey; key != sourceKey; {
		cf := cameFromMap[key]
		rtn = append(rtn, cf.tr)
		key = cf.prevKey
	}
	// Reverse into application order.
	for i, j := 0, len(rtn)-1; i < j; i, j = i+1, j-1 {
		rtn[i], rtn[j] = rtn[j], rtn[i]
	}
	if rtn == nil {
		rtn = []transform{}
	}
	return rtn
}

func basisKey(basis map[string]bool) string {
	return strings.Join(sortedNames(basis), ",")
}

func sortedNames(basis map[string]bool) []string {
	names := make([]string, 0, len(basis))
	for n := range basis {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func isSubset(a, b map[string]bool) bool {
	for n := range a {
		if !b[n] {
			return false
		}
	}
	return true
}
