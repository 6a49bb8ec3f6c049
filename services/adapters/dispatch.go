package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"medibook/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DedupStore remembers ticket IDs issued per idempotency key. PutIfAbsent
// returns the stored ID and false when the key was already present.
type DedupStore interface {
	PutIfAbsent(ctx context.Context, key, ticketID string) (string, bool, error)
}

// MemoryDedupStore is the in-process DedupStore.
type MemoryDedupStore struct {
	mu      sync.Mutex
	tickets map[string]string
}

// NewMemoryDedupStore returns an empty in-memory store.
func NewMemoryDedupStore() *MemoryDedupStore {
	return &MemoryDedupStore{tickets: make(map[string]string)}
}

func (s *MemoryDedupStore) PutIfAbsent(_ context.Context, key, ticketID string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.tickets[key]; ok {
		return existing, false, nil
	}
	s.tickets[key] = ticketID
	return ticketID, true, nil
}

// RedisDedupStore backs the dedup table with Redis so retries survive a
// process restart for the lifetime of the TTL.
type RedisDedupStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func (s *RedisDedupStore) PutIfAbsent(ctx context.Context, key, ticketID string) (string, bool, error) {
	set, err := s.Client.SetNX(ctx, "dispatch:"+key, ticketID, s.TTL).Result()
	if err != nil {
		return "", false, err
	}
	if set {
		return ticketID, true, nil
	}
	existing, err := s.Client.Get(ctx, "dispatch:"+key).Result()
	if err != nil {
		return "", false, err
	}
	return existing, false, nil
}

// SimulatedDispatchService issues booking/dispatch tickets. ID generation is
// injected; the dedup store makes CreateTicket idempotent per draft content
// plus client token.
type SimulatedDispatchService struct {
	IDs    func(kind models.WorkflowKind) string
	Dedup  DedupStore
	Logger *zap.Logger
}

// NewSimulatedDispatchService builds a dispatch service over the given
// generator and dedup store.
func NewSimulatedDispatchService(ids func(models.WorkflowKind) string, dedup DedupStore, logger *zap.Logger) *SimulatedDispatchService {
	return &SimulatedDispatchService{IDs: ids, Dedup: dedup, Logger: logger}
}

// CreateTicket returns the ticket ID for the draft, reusing a previously
// issued one when the same draft and token have been seen before.
func (d *SimulatedDispatchService) CreateTicket(ctx context.Context, draft models.BookingDraft, idempotencyToken string) (string, error) {
	key, err := dedupKey(draft, idempotencyToken)
	if err != nil {
		return "", NewAdapterError("dispatch", CodeDispatchFailed, err.Error())
	}

	candidate := d.IDs(draft.Kind)
	ticketID, created, err := d.Dedup.PutIfAbsent(ctx, key, candidate)
	if err != nil {
		return "", NewAdapterError("dispatch", CodeUnavailable, err.Error())
	}
	if !created {
		d.Logger.Info("duplicate dispatch suppressed",
			zap.String("ticketId", ticketID), zap.String("kind", string(draft.Kind)))
		return ticketID, nil
	}

	d.Logger.Info("ticket created",
		zap.String("ticketId", ticketID), zap.String("kind", string(draft.Kind)))
	return ticketID, nil
}

// dedupKey hashes the draft content together with the client token. JSON
// encoding sorts map keys, so equal drafts hash equally.
func dedupKey(draft models.BookingDraft, token string) (string, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return "", fmt.Errorf("failed to hash draft: %w", err)
	}
	sum := sha256.Sum256(append(payload, []byte(token)...))
	return hex.EncodeToString(sum[:]), nil
}
