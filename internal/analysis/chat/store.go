package chat

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/HACKWAVE2025/B54/internal/observability"
)

const (
	DefaultStoreSize = 1024
	DefaultIdleTTL   = 30 * time.Minute
)

// Store holds live sessions in memory. Least recently used sessions are
// dropped once the store is full, and any session untouched for ttl expires.
// Nothing is persisted.
type Store struct {
	cache   *expirable.LRU[string, *Session]
	metrics *observability.Metrics
}

func NewStore(size int, ttl time.Duration, metrics *observability.Metrics) *Store {
	if size <= 0 {
		size = DefaultStoreSize
	}
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	return &Store{
		cache:   expirable.NewLRU[string, *Session](size, nil, ttl),
		metrics: metrics,
	}
}

func (st *Store) Put(s *Session) {
	if s == nil {
		return
	}
	st.cache.Add(s.ID(), s)
	st.metrics.SetChatSessions(st.cache.Len())
}

// Get returns the session and refreshes its idle deadline.
func (st *Store) Get(id string) (*Session, bool) {
	s, ok := st.cache.Get(id)
	if ok {
		st.cache.Add(id, s)
	}
	return s, ok
}

func (st *Store) Delete(id string) bool {
	ok := st.cache.Remove(id)
	st.metrics.SetChatSessions(st.cache.Len())
	return ok
}

func (st *Store) Len() int {
	return st.cache.Len()
}
