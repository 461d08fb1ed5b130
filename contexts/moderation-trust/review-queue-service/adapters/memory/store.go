package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainerrors "stockist/contexts/moderation-trust/review-queue-service/domain/errors"
	"stockist/contexts/moderation-trust/review-queue-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

// Store backs the review queue in tests and local bootstraps: decisions,
// idempotency records, contributors, and a registry of moderated entities
// that stands in for the owning services.
type Store struct {
	mu           sync.RWMutex
	decisions    []ports.DecisionRecord
	idempotency  map[string]ports.IdempotencyRecord
	contributors map[string]trustpolicy.Contributor
	entities     map[trustpolicy.EntityKind]map[string]ports.EntityState
}

func NewStore() *Store {
	return &Store{
		idempotency:  make(map[string]ports.IdempotencyRecord),
		contributors: make(map[string]trustpolicy.Contributor),
		entities:     make(map[trustpolicy.EntityKind]map[string]ports.EntityState),
	}
}

func (s *Store) RegisterContributor(contributor trustpolicy.Contributor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contributors[contributor.UserID] = contributor
}

func (s *Store) RegisterEntity(state ports.EntityState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byID, ok := s.entities[state.Kind]
	if !ok {
		byID = make(map[string]ports.EntityState)
		s.entities[state.Kind] = byID
	}
	byID[state.EntityID] = state
}

// EntityState is a test helper for asserting on moderation outcomes.
func (s *Store) EntityState(kind trustpolicy.EntityKind, entityID string) (ports.EntityState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.entities[kind][entityID]
	return state, ok
}

// ClientFor returns a ModerationClient view scoped to one entity kind.
func (s *Store) ClientFor(kind trustpolicy.EntityKind) ports.ModerationClient {
	return kindClient{store: s, kind: kind}
}

type kindClient struct {
	store *Store
	kind  trustpolicy.EntityKind
}

func (c kindClient) GetState(_ context.Context, entityID string) (ports.EntityState, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	state, ok := c.store.entities[c.kind][entityID]
	if !ok {
		return ports.EntityState{}, domainerrors.ErrEntityNotFound
	}
	return state, nil
}

func (c kindClient) ListOpen(_ context.Context) ([]ports.EntityState, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	open := make([]ports.EntityState, 0)
	for _, state := range c.store.entities[c.kind] {
		if state.Status == trustpolicy.StatusPending || state.NeedsReview {
			open = append(open, state)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].EntityID < open[j].EntityID })
	return open, nil
}

func (c kindClient) SetModeration(_ context.Context, entityID string, status trustpolicy.ModerationStatus, needsReview bool, _ string, _ time.Time) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	state, ok := c.store.entities[c.kind][entityID]
	if !ok {
		return domainerrors.ErrEntityNotFound
	}
	state.Status = status
	state.NeedsReview = needsReview
	c.store.entities[c.kind][entityID] = state
	return nil
}

func (s *Store) RecordDecision(_ context.Context, record ports.DecisionRecord, now time.Time) (ports.DecisionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.DecisionID = uuid.NewString()
	record.CreatedAt = now.UTC()
	s.decisions = append(s.decisions, record)
	return record, nil
}

func (s *Store) ListDecisions(_ context.Context, kind trustpolicy.EntityKind, entityID string) ([]ports.DecisionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := make([]ports.DecisionRecord, 0)
	for _, record := range s.decisions {
		if record.Kind == kind && record.EntityID == entityID {
			matches = append(matches, record)
		}
	}
	return matches, nil
}

func (s *Store) Get(_ context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.idempotency[key]
	if !ok || now.After(record.ExpiresAt) {
		return ports.IdempotencyRecord{}, false, nil
	}
	return record, true, nil
}

func (s *Store) Put(_ context.Context, record ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idempotency[record.Key] = record
	return nil
}

func (s *Store) ResolveContributor(_ context.Context, userID string) (trustpolicy.Contributor, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contributor, ok := s.contributors[userID]
	return contributor, ok, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
