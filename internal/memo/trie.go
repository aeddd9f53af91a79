package memo

import (
	"sync"
	"sync/atomic"
)

// Trie memoizes values under paths of fingerprints.
//
// It keeps two generations. Once the current one has received limit stores
// the older generation is dropped and a fresh one becomes current, so an entry
// survives at least limit stores and at most 2*limit.
type Trie[V any] struct {
	generations [2]atomic.Pointer[node[V]]
	head        atomic.Uint32
	size        atomic.Uint32
	limit       uint32
}

// node holds its own value apart from its children, so one path may be a
// prefix of another.
type node[V any] struct {
	val      atomic.Pointer[V]
	children sync.Map
}

func New[V any](limit uint32) *Trie[V] {
	if limit == 0 {
		panic("memo: limit should be greater than 0")
	}
	t := &Trie[V]{limit: limit}
	t.generations[0].Store(&node[V]{})
	t.generations[1].Store(&node[V]{})
	return t
}

func (t *Trie[V]) Load(path []uint64) (V, bool) {
	head := t.head.Load()
	for _, idx := range [2]uint32{head, 1 - head} {
		n, ok := walk(t.generations[idx].Load(), path, false)
		if !ok {
			continue
		}
		if v := n.val.Load(); v != nil {
			return *v, true
		}
	}
	var zero V
	return zero, false
}

func (t *Trie[V]) Store(path []uint64, v V) {
	if t.size.CompareAndSwap(t.limit, 0) {
		next := 1 - t.head.Load()
		t.generations[next].Store(&node[V]{})
		t.head.Store(next)
	}
	n, _ := walk(t.generations[t.head.Load()].Load(), path, true)
	n.val.Store(&v)
	t.size.Add(1)
}

// walk descends to the node at the end of path. With create unset it stops
// at the first missing node instead of building one.
func walk[V any](n *node[V], path []uint64, create bool) (*node[V], bool) {
	if len(path) == 0 {
		panic("memo: empty path")
	}
	for _, key := range path {
		child, ok := n.children.Load(key)
		if !ok {
			if !create {
				return nil, false
			}
			child, _ = n.children.LoadOrStore(key, &node[V]{})
		}
		n = child.(*node[V])
	}
	return n, true
}
