package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"medibook/models"

	"github.com/go-redis/redis/v8"
)

// WorkflowSession is the serializable state of one workflow instance, held in
// a SessionStore between inbound calls.
type WorkflowSession struct {
	SessionID        string                `json:"sessionId"`
	Kind             models.WorkflowKind   `json:"kind"`
	Draft            models.BookingDraft   `json:"draft"`
	Status           models.WorkflowStatus `json:"status"`
	Step             models.StepID         `json:"step,omitempty"`
	LocationState    models.LocationState  `json:"locationState"`
	IdempotencyToken string                `json:"idempotencyToken"`
	Failure          string                `json:"failure,omitempty"`
	Record           *models.BookingRecord `json:"record,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
}

// SessionStore persists workflow sessions between inbound calls.
type SessionStore interface {
	Save(ctx context.Context, sess *WorkflowSession) error
	Get(ctx context.Context, sessionID string) (*WorkflowSession, error)
	Delete(ctx context.Context, sessionID string) error
}

const sessionKeyPrefix = "workflow:session:"

// RedisSessionStore keeps sessions as JSON under a TTL, so an abandoned
// wizard expires on its own.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisSessionStore builds a store over the given client and session TTL.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *WorkflowSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionKeyPrefix+sess.SessionID, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store workflow session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*WorkflowSession, error) {
	data, err := s.Client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load workflow session: %w", err)
	}
	var sess WorkflowSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to parse workflow session: %w", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// MemorySessionStore is the in-process SessionStore used by tests and
// embedded (library) consumers.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*WorkflowSession
}

// NewMemorySessionStore returns an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*WorkflowSession)}
}

func (s *MemorySessionStore) Save(_ context.Context, sess *WorkflowSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	cp.Draft = sess.Draft.Clone()
	s.sessions[sess.SessionID] = &cp
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (*WorkflowSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *sess
	cp.Draft = sess.Draft.Clone()
	return &cp, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
