package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"stockist/contexts/catalog/catalog-service/domain/entities"
	domainerrors "stockist/contexts/catalog/catalog-service/domain/errors"
	"stockist/contexts/catalog/catalog-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

// Store is the in-memory catalog used by tests and local bootstraps. It backs
// every port the service consumes, including the clock and id generator.
type Store struct {
	mu           sync.RWMutex
	canonical    map[string]entities.CanonicalProduct
	contributed  map[string]entities.ContributedProduct
	contributors map[string]trustpolicy.Contributor
}

func NewStore() *Store {
	return &Store{
		canonical:    make(map[string]entities.CanonicalProduct),
		contributed:  make(map[string]entities.ContributedProduct),
		contributors: make(map[string]trustpolicy.Contributor),
	}
}

func (s *Store) SeedCanonical(product entities.CanonicalProduct) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canonical[product.ProductID] = product
}

func (s *Store) RegisterContributor(contributor trustpolicy.Contributor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contributors[contributor.UserID] = contributor
}

func (s *Store) GetCanonical(_ context.Context, productID string) (entities.CanonicalProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.canonical[productID]
	if !ok {
		return entities.CanonicalProduct{}, domainerrors.ErrProductNotFound
	}
	return product, nil
}

func (s *Store) ListCanonical(_ context.Context, filter ports.CatalogFilter) ([]entities.CanonicalProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := make([]entities.CanonicalProduct, 0, len(s.canonical))
	for _, product := range s.canonical {
		if matchesFilter(product.Name, product.Brand, product.Category, filter) {
			matches = append(matches, product)
		}
	}
	return matches, nil
}

func (s *Store) GetContributed(_ context.Context, productID string) (entities.ContributedProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.contributed[productID]
	if !ok {
		return entities.ContributedProduct{}, domainerrors.ErrProductNotFound
	}
	return product, nil
}

func (s *Store) GetShadowFor(_ context.Context, sourceProductID string) (entities.ContributedProduct, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, product := range s.contributed {
		if product.SourceProductID == sourceProductID {
			return product, true, nil
		}
	}
	return entities.ContributedProduct{}, false, nil
}

func (s *Store) ListContributed(_ context.Context, filter ports.CatalogFilter) ([]entities.ContributedProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := make([]entities.ContributedProduct, 0, len(s.contributed))
	for _, product := range s.contributed {
		if matchesFilter(product.Name, product.Brand, product.Category, filter) {
			matches = append(matches, product)
		}
	}
	return matches, nil
}

func (s *Store) ListShadows(_ context.Context) ([]entities.ContributedProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := make([]entities.ContributedProduct, 0)
	for _, product := range s.contributed {
		if product.SourceProductID != "" {
			matches = append(matches, product)
		}
	}
	return matches, nil
}

func (s *Store) CreateContributed(_ context.Context, product entities.ContributedProduct) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.contributed[product.ProductID]; exists {
		return domainerrors.ErrDuplicateProduct
	}
	s.contributed[product.ProductID] = product
	return nil
}

func (s *Store) UpdateContributed(_ context.Context, product entities.ContributedProduct) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.contributed[product.ProductID]; !exists {
		return domainerrors.ErrProductNotFound
	}
	s.contributed[product.ProductID] = product
	return nil
}

func (s *Store) SetModeration(_ context.Context, productID string, update ports.ModerationUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.contributed[productID]
	if !ok {
		return domainerrors.ErrProductNotFound
	}
	product.Status = update.Status
	product.NeedsReview = update.NeedsReview
	product.ReviewedByUserID = update.ReviewedByUserID
	reviewedAt := update.ReviewedAt
	product.ReviewedAt = &reviewedAt
	product.UpdatedAt = update.ReviewedAt
	s.contributed[productID] = product
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

func matchesFilter(name, brand, category string, filter ports.CatalogFilter) bool {
	if filter.Query != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(filter.Query)) {
		return false
	}
	if filter.Brand != "" && !strings.EqualFold(brand, filter.Brand) {
		return false
	}
	if filter.Category != "" && !strings.EqualFold(category, filter.Category) {
		return false
	}
	return true
}
