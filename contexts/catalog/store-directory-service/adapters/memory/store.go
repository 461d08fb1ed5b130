package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"stockist/contexts/catalog/store-directory-service/domain/entities"
	domainerrors "stockist/contexts/catalog/store-directory-service/domain/errors"
	"stockist/contexts/catalog/store-directory-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

type Store struct {
	mu           sync.RWMutex
	stores       map[string]entities.DirectoryStore
	contributors map[string]trustpolicy.Contributor
}

func NewStore() *Store {
	return &Store{
		stores:       make(map[string]entities.DirectoryStore),
		contributors: make(map[string]trustpolicy.Contributor),
	}
}

func (s *Store) SeedStore(store entities.DirectoryStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores[store.StoreID] = store
}

func (s *Store) RegisterContributor(contributor trustpolicy.Contributor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contributors[contributor.UserID] = contributor
}

func (s *Store) GetStore(_ context.Context, storeID string) (entities.DirectoryStore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	store, ok := s.stores[storeID]
	if !ok {
		return entities.DirectoryStore{}, domainerrors.ErrStoreNotFound
	}
	return store, nil
}

func (s *Store) ListStores(_ context.Context, filter ports.StoreFilter) ([]entities.DirectoryStore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := make([]entities.DirectoryStore, 0, len(s.stores))
	for _, store := range s.stores {
		if filter.Type != "" && store.Type != filter.Type {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(store.Name), strings.ToLower(filter.Query)) {
			continue
		}
		matches = append(matches, store)
	}
	return matches, nil
}

func (s *Store) CreateStore(_ context.Context, store entities.DirectoryStore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.stores[store.StoreID]; exists {
		return domainerrors.ErrDuplicateStore
	}
	s.stores[store.StoreID] = store
	return nil
}

func (s *Store) UpdateStore(_ context.Context, store entities.DirectoryStore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.stores[store.StoreID]; !exists {
		return domainerrors.ErrStoreNotFound
	}
	s.stores[store.StoreID] = store
	return nil
}

func (s *Store) SetModeration(_ context.Context, storeID string, update ports.ModerationUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	store, ok := s.stores[storeID]
	if !ok {
		return domainerrors.ErrStoreNotFound
	}
	store.Status = update.Status
	store.NeedsReview = update.NeedsReview
	store.ReviewedByUserID = update.ReviewedByUserID
	reviewedAt := update.ReviewedAt
	store.ReviewedAt = &reviewedAt
	store.UpdatedAt = update.ReviewedAt
	s.stores[storeID] = store
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

func (s *Store) NewID() string {
	return uuid.NewString()
}
