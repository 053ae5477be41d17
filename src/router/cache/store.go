package cache

import (
	"container/list"
	"time"
)

type ttlEntry[V any] struct {
	key       string
	val       V
	expiresAt time.Time // zero means no expiry
}

// ttlStore is a capacity-bounded store that expires entries lazily at
// lookup time and evicts the oldest-inserted entry when over capacity.
type ttlStore[V any] struct {
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	order    *list.List // front = oldest insert
}

func newTTLStore[V any](capacity int, ttl time.Duration) *ttlStore[V] {
	return &ttlStore[V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

func (s *ttlStore[V]) get(key string, now time.Time) (V, bool) {
	var zero V
	el, ok := s.items[key]
	if !ok {
		return zero, false
	}
	ent := el.Value.(*ttlEntry[V])
	if !ent.expiresAt.IsZero() && !now.Before(ent.expiresAt) {
		s.remove(el)
		return zero, false
	}
	return ent.val, true
}

// put inserts or replaces key. ttl overrides the store default; ttl == 0
// produces an entry that is already expired on the next lookup.
func (s *ttlStore[V]) put(key string, val V, ttl time.Duration, now time.Time) {
	if ttl == DefaultTTL {
		ttl = s.ttl
	}
	var expires time.Time
	if ttl >= 0 {
		expires = now.Add(ttl)
	}
	if el, ok := s.items[key]; ok {
		s.remove(el)
	}
	el := s.order.PushBack(&ttlEntry[V]{key: key, val: val, expiresAt: expires})
	s.items[key] = el
	for len(s.items) > s.capacity {
		s.remove(s.order.Front())
	}
}

func (s *ttlStore[V]) remove(el *list.Element) {
	ent := s.order.Remove(el).(*ttlEntry[V])
	delete(s.items, ent.key)
}

func (s *ttlStore[V]) len() int { return len(s.items) }
