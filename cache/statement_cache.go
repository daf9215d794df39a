package cache

import (
	"context"
	"database/sql"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Konsultn-Engineering/sqlbridge/utils"
)

// DefaultSize is used when a non-positive size is requested.
const DefaultSize = 128

// Preparer is satisfied by *sql.DB and *sql.Conn.
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// entry is one cached statement. refs counts callers that hold it; an
// evicted entry is closed once refs drops to zero.
type entry struct {
	query   string
	stmt    *sql.Stmt
	refs    int
	evicted bool
}

// StatementCache keeps prepared statements keyed by the fingerprint of their
// SQL text. Evicted statements are closed after their last holder releases
// them.
type StatementCache struct {
	cache *lru.Cache[uint64, *entry]
	key   func(string) uint64
	mu    sync.Mutex
}

func NewStatementCache(size int) *StatementCache {
	if size <= 0 {
		size = DefaultSize
	}

	// The callback runs inside Add and Purge, which are only called with mu held.
	cache, _ := lru.NewWithEvict(size, func(_ uint64, e *entry) {
		e.evicted = true
		if e.refs == 0 {
			_ = e.stmt.Close()
		}
	})

	return &StatementCache{
		cache: cache,
		key:   utils.FingerprintString,
	}
}

// Get returns the cached statement for query, if any. The statement is not
// pinned and may be closed by a later eviction.
func (s *StatementCache) Get(query string) (*sql.Stmt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.cache.Get(s.key(query))
	if !ok || e.query != query {
		return nil, false
	}
	return e.stmt, true
}

// GetOrPrepare returns a cached statement or prepares and caches a new one.
// The statement stays open until release is called, even if it is evicted in
// the meantime. release is safe to call more than once.
func (s *StatementCache) GetOrPrepare(ctx context.Context, db Preparer, query string) (*sql.Stmt, func(), error) {
	key := s.key(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.cache.Get(key); ok {
		if e.query == query {
			e.refs++
			return e.stmt, s.releaser(e), nil
		}
		// Fingerprint collision: serve an uncached statement.
		stmt, err := db.PrepareContext(ctx, query)
		if err != nil {
			return nil, nil, err
		}
		return stmt, closer(stmt), nil
	}

	stmt, err := db.PrepareContext(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	e := &entry{query: query, stmt: stmt, refs: 1}
	s.cache.Add(key, e)
	return stmt, s.releaser(e), nil
}

func (s *StatementCache) releaser(e *entry) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			e.refs--
			if e.evicted && e.refs == 0 {
				_ = e.stmt.Close()
			}
		})
	}
}

func closer(stmt *sql.Stmt) func() {
	var once sync.Once
	return func() {
		once.Do(func() { _ = stmt.Close() })
	}
}

// Len reports the number of cached statements.
func (s *StatementCache) Len() int {
	return s.cache.Len()
}

// Close evicts every cached statement. Statements still held are closed on
// release.
func (s *StatementCache) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Purge()
	return nil
}
