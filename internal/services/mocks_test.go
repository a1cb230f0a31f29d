package services

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/courtside/sportsbuddy/internal/live"
	"github.com/courtside/sportsbuddy/internal/models"
)

// fakeDB substitutes the DB interface per test. Unset funcs panic so a test
// that touches an unexpected surface fails loudly.
type fakeDB struct {
	QueryRowFunc func(ctx context.Context, sql string, args ...any) Row
	QueryFunc    func(ctx context.Context, sql string, args ...any) (Rows, error)
	ExecFunc     func(ctx context.Context, sql string, args ...any) (int64, error)
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	if db.QueryRowFunc == nil {
		panic("unexpected QueryRow: " + sql)
	}
	return db.QueryRowFunc(ctx, sql, args...)
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if db.QueryFunc == nil {
		panic("unexpected Query: " + sql)
	}
	return db.QueryFunc(ctx, sql, args...)
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	if db.ExecFunc == nil {
		panic("unexpected Exec: " + sql)
	}
	return db.ExecFunc(ctx, sql, args...)
}

type fakeRow struct {
	scanFunc func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error {
	return r.scanFunc(dest...)
}

// rowFromValues builds a Row whose Scan assigns the given values positionally.
// A nil value leaves the destination at its zero value, which is how nullable
// columns come back.
func rowFromValues(values ...any) fakeRow {
	return fakeRow{scanFunc: func(dest ...any) error {
		if len(dest) != len(values) {
			return fmt.Errorf("scan: expected %d destinations, got %d", len(values), len(dest))
		}
		for i, v := range values {
			if v == nil {
				continue
			}
			reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
		}
		return nil
	}}
}

type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (r *fakeRows) Next() bool {
	if r.idx < len(r.rows) {
		r.idx++
		return true
	}
	return false
}

func (r *fakeRows) Scan(dest ...any) error {
	return rowFromValues(r.rows[r.idx-1]...).Scan(dest...)
}

func (r *fakeRows) Close() {}

func (r *fakeRows) Err() error { return r.err }

// recordingBroker is a MemoryBroker that also records every published topic.
type recordingBroker struct {
	*live.MemoryBroker

	mu     sync.Mutex
	topics []string
}

func newRecordingBroker() *recordingBroker {
	return &recordingBroker{MemoryBroker: live.NewMemoryBroker()}
}

func (b *recordingBroker) Publish(ctx context.Context, topic string) error {
	b.mu.Lock()
	b.topics = append(b.topics, topic)
	b.mu.Unlock()
	return b.MemoryBroker.Publish(ctx, topic)
}

func (b *recordingBroker) published() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.topics...)
}

// fakeBuddyWriter records AddBuddy calls as (user, buddy) pairs and can fail
// from a given call onward.
type fakeBuddyWriter struct {
	calls   [][2]uuid.UUID
	failOn  int
	failErr error
}

func (w *fakeBuddyWriter) AddBuddy(ctx context.Context, userID, buddyID uuid.UUID) error {
	w.calls = append(w.calls, [2]uuid.UUID{userID, buddyID})
	if w.failErr != nil && len(w.calls) >= w.failOn {
		return w.failErr
	}
	return nil
}

type fakeBuddyChecker struct {
	isBuddy bool
	err     error
	calls   int
}

func (c *fakeBuddyChecker) IsBuddy(ctx context.Context, userID, other uuid.UUID) (bool, error) {
	c.calls++
	return c.isBuddy, c.err
}

type fakeConversationReader struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.Conversation, error)
}

func (r *fakeConversationReader) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	return r.GetByIDFunc(ctx, id)
}

type fakeSessionStore struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{data: make(map[string]string)}
}

func (s *fakeSessionStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
	return nil
}

func (s *fakeSessionStore) Get(ctx context.Context, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	if !ok {
		return "", ErrSessionNotFound
	}
	return value, nil
}

func (s *fakeSessionStore) Del(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *fakeSessionStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return nil
}
