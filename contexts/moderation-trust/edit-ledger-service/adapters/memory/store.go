package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"stockist/contexts/moderation-trust/edit-ledger-service/domain/entities"
	domainerrors "stockist/contexts/moderation-trust/edit-ledger-service/domain/errors"
	"stockist/contexts/moderation-trust/edit-ledger-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"

	"github.com/google/uuid"
)

type targetKey struct {
	Kind trustpolicy.EntityKind
	ID   string
}

// Store is the in-memory ledger used by tests and local boot. It implements
// every port of the service: ledger, targets, contributor directory, outbox,
// clock and id generation.
type Store struct {
	mu sync.RWMutex

	suggestions  map[string]entities.EditSuggestion
	targets      map[targetKey]map[string]string
	contributors map[string]trustpolicy.Contributor
	outbox       map[string]ports.OutboxMessage
}

func NewStore() *Store {
	return &Store{
		suggestions:  make(map[string]entities.EditSuggestion),
		targets:      make(map[targetKey]map[string]string),
		contributors: make(map[string]trustpolicy.Contributor),
		outbox:       make(map[string]ports.OutboxMessage),
	}
}

// RegisterTarget seeds a live entity the ledger can edit.
func (s *Store) RegisterTarget(target entities.TargetRef, fields map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make(map[string]string, len(fields))
	for field, value := range fields {
		copied[field] = value
	}
	s.targets[targetKey{Kind: target.Kind, ID: strings.TrimSpace(target.ID)}] = copied
}

// RegisterContributor seeds an identity record for ResolveContributor.
func (s *Store) RegisterContributor(contributor trustpolicy.Contributor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contributors[strings.TrimSpace(contributor.UserID)] = contributor
}

// TargetField reads a stored field directly, for test assertions.
func (s *Store) TargetField(target entities.TargetRef, field string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields, exists := s.targets[targetKey{Kind: target.Kind, ID: strings.TrimSpace(target.ID)}]
	if !exists {
		return "", false
	}
	value, exists := fields[field]
	return value, exists
}

func (s *Store) ResolveContributor(_ context.Context, userID string) (trustpolicy.Contributor, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contributor, exists := s.contributors[strings.TrimSpace(userID)]
	if !exists {
		return trustpolicy.Contributor{}, false, nil
	}
	return contributor, true, nil
}

func (s *Store) ReadField(_ context.Context, target entities.TargetRef, field string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields, exists := s.targets[targetKey{Kind: target.Kind, ID: strings.TrimSpace(target.ID)}]
	if !exists {
		return "", domainerrors.ErrTargetNotFound
	}
	return fields[field], nil
}

func (s *Store) ApplyField(_ context.Context, target entities.TargetRef, field string, value string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := targetKey{Kind: target.Kind, ID: strings.TrimSpace(target.ID)}
	fields, exists := s.targets[key]
	if !exists {
		fields = make(map[string]string)
		s.targets[key] = fields
	}
	fields[field] = value
	return nil
}

func (s *Store) AppendSuggestion(_ context.Context, suggestion entities.EditSuggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.suggestions[suggestion.SuggestionID] = suggestion
	return nil
}

func (s *Store) GetSuggestion(_ context.Context, suggestionID string) (entities.EditSuggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	suggestion, exists := s.suggestions[strings.TrimSpace(suggestionID)]
	if !exists {
		return entities.EditSuggestion{}, domainerrors.ErrSuggestionNotFound
	}
	return suggestion, nil
}

func (s *Store) ListSuggestions(_ context.Context, filter ports.SuggestionFilter) ([]entities.EditSuggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.EditSuggestion, 0, len(s.suggestions))
	for _, item := range s.suggestions {
		if filter.TargetKind != "" && item.Target.Kind != filter.TargetKind {
			continue
		}
		if strings.TrimSpace(filter.TargetID) != "" && item.Target.ID != strings.TrimSpace(filter.TargetID) {
			continue
		}
		if strings.TrimSpace(filter.UserID) != "" && item.UserID != strings.TrimSpace(filter.UserID) {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.NeedsReview != nil && item.NeedsReview != *filter.NeedsReview {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].SuggestionID < items[j].SuggestionID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			return []entities.EditSuggestion{}, nil
		}
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (s *Store) UpdateSuggestionReview(_ context.Context, suggestion entities.EditSuggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.suggestions[suggestion.SuggestionID]
	if !exists {
		return domainerrors.ErrSuggestionNotFound
	}
	stored.Status = suggestion.Status
	stored.NeedsReview = suggestion.NeedsReview
	stored.ReviewedByUserID = suggestion.ReviewedByUserID
	stored.ReviewedAt = suggestion.ReviewedAt
	s.suggestions[suggestion.SuggestionID] = stored
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, message ports.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.outbox[message.ID] = message
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, item := range s.outbox {
		if item.Status == "pending" {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, id string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	message, exists := s.outbox[id]
	if !exists {
		return nil
	}
	message.Status = "published"
	s.outbox[id] = message
	return nil
}

func (s *Store) MarkOutboxFailed(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	message, exists := s.outbox[id]
	if !exists {
		return nil
	}
	message.Status = "failed"
	message.RetryCount++
	s.outbox[id] = message
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
