package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"stockist/contexts/catalog/availability-service/domain/entities"
	domainerrors "stockist/contexts/catalog/availability-service/domain/errors"
	"stockist/contexts/catalog/availability-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

type Store struct {
	mu           sync.RWMutex
	records      map[string]entities.AvailabilityRecord
	contributors map[string]trustpolicy.Contributor
}

func NewStore() *Store {
	return &Store{
		records:      make(map[string]entities.AvailabilityRecord),
		contributors: make(map[string]trustpolicy.Contributor),
	}
}

// SeedRecord bypasses the uniqueness check so tests can stage legacy rows
// and deliberately broken data.
func (s *Store) SeedRecord(record entities.AvailabilityRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.RecordID] = record
}

func (s *Store) RegisterContributor(contributor trustpolicy.Contributor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contributors[contributor.UserID] = contributor
}

func (s *Store) GetRecord(_ context.Context, recordID string) (entities.AvailabilityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[recordID]
	if !ok {
		return entities.AvailabilityRecord{}, domainerrors.ErrRecordNotFound
	}
	return record, nil
}

func (s *Store) GetByPair(_ context.Context, productID, storeID string) (entities.AvailabilityRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, record := range s.records {
		if record.ProductID == strings.TrimSpace(productID) && record.StoreID == strings.TrimSpace(storeID) {
			return record, true, nil
		}
	}
	return entities.AvailabilityRecord{}, false, nil
}

func (s *Store) ListByStore(_ context.Context, storeID string) ([]entities.AvailabilityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := make([]entities.AvailabilityRecord, 0)
	for _, record := range s.records {
		if record.StoreID == storeID {
			matches = append(matches, record)
		}
	}
	return matches, nil
}

func (s *Store) CreateRecord(_ context.Context, record entities.AvailabilityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.RecordID]; exists {
		return domainerrors.ErrDuplicateAvailability
	}
	s.records[record.RecordID] = record
	return nil
}

func (s *Store) UpdateRecord(_ context.Context, record entities.AvailabilityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.RecordID]; !exists {
		return domainerrors.ErrRecordNotFound
	}
	s.records[record.RecordID] = record
	return nil
}

func (s *Store) SetModeration(_ context.Context, recordID string, update ports.ModerationUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[recordID]
	if !ok {
		return domainerrors.ErrRecordNotFound
	}
	status := update.Status
	record.Status = &status
	record.NeedsReview = update.NeedsReview
	record.ReviewedByUserID = update.ReviewedByUserID
	reviewedAt := update.ReviewedAt
	record.ReviewedAt = &reviewedAt
	record.UpdatedAt = update.ReviewedAt
	s.records[recordID] = record
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
