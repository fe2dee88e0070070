package crawler

import (
	"math/rand"
)

// Frontier is the bounded FIFO of account ids awaiting a visit. It is pure
// session state: the same id may be admitted twice by different discovery
// paths, and duplicates resolve at get-or-create time in the store.
type Frontier struct {
	ids []int64
	max int
}

func NewFrontier(size int) *Frontier {
	return &Frontier{max: size}
}

func (f *Frontier) Len() int {
	return len(f.ids)
}

func (f *Frontier) Remaining() int {
	return f.max - len(f.ids)
}

func (f *Frontier) Pop() (int64, bool) {
	if len(f.ids) == 0 {
		return 0, false
	}
	id := f.ids[0]
	f.ids = f.ids[1:]
	return id, true
}

// Extend admits up to min(limit, remaining capacity) of the discovered ids.
// When more are discovered than fit, a uniform random sample without
// replacement is taken so coverage spreads across the graph instead of
// following discovery order.
func (f *Frontier) Extend(ids []int64, limit int) {
	if remaining := f.Remaining(); limit > remaining {
		limit = remaining
	}
	if limit <= 0 || len(ids) == 0 {
		return
	}
	if len(ids) > limit {
		sampled := make([]int64, len(ids))
		copy(sampled, ids)
		rand.Shuffle(len(sampled), func(i, j int) {
			sampled[i], sampled[j] = sampled[j], sampled[i]
		})
		ids = sampled[:limit]
	}
	f.ids = append(f.ids, ids...)
}
