package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	domainerrors "stockist/contexts/moderation-trust/review-queue-service/domain/errors"
	"stockist/contexts/moderation-trust/review-queue-service/ports"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

// Service is the administrator review surface. It lists contributed entities
// awaiting attention across every moderated kind and applies decisions back
// through the owning service's moderation client. Decisions are idempotent
// per key so a retried request never double-applies.
type Service struct {
	Clients        map[trustpolicy.EntityKind]ports.ModerationClient
	Decisions      ports.DecisionStore
	Idempotency    ports.IdempotencyStore
	Contributors   ports.ContributorDirectory
	Clock          ports.Clock
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

func (s Service) ListQueue(ctx context.Context, filter ports.QueueFilter) ([]ports.EntityState, error) {
	filter.Status = strings.TrimSpace(strings.ToLower(filter.Status))
	if filter.Status != "" {
		switch filter.Status {
		case "pending", "approved", "confirmed", "rejected":
		default:
			return nil, domainerrors.ErrInvalidRequest
		}
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		return nil, domainerrors.ErrInvalidRequest
	}

	var items []ports.EntityState
	if filter.Kind != "" {
		client, ok := s.Clients[filter.Kind]
		if !ok {
			return nil, domainerrors.ErrUnsupportedKind
		}
		open, err := client.ListOpen(ctx)
		if err != nil {
			return nil, err
		}
		items = open
	} else {
		for _, kind := range s.sortedKinds() {
			open, err := s.Clients[kind].ListOpen(ctx)
			if err != nil {
				return nil, err
			}
			items = append(items, open...)
		}
	}

	filtered := items[:0]
	for _, item := range items {
		if filter.Status != "" && string(item.Status) != filter.Status {
			continue
		}
		if filter.NeedsReview != nil && item.NeedsReview != *filter.NeedsReview {
			continue
		}
		filtered = append(filtered, item)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if !filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		}
		return filtered[i].EntityID < filtered[j].EntityID
	})

	if filter.Offset >= len(filtered) {
		return []ports.EntityState{}, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[filter.Offset:end], nil
}

// Approve takes a pending entity live at its kind's live label.
func (s Service) Approve(ctx context.Context, idempotencyKey, reviewerID string, input ports.ReviewActionInput) (ports.DecisionRecord, error) {
	return s.runDecision(ctx, idempotencyKey, reviewerID, input, "approved",
		func(state ports.EntityState) error {
			if state.Status != trustpolicy.StatusPending {
				return domainerrors.ErrInvalidStatusTransition
			}
			return nil
		},
		func(client ports.ModerationClient, now time.Time) error {
			return client.SetModeration(ctx, input.EntityID, trustpolicy.LiveStatus(input.Kind), false, reviewerID, now)
		},
	)
}

// Reject closes a pending entity without publishing it.
func (s Service) Reject(ctx context.Context, idempotencyKey, reviewerID string, input ports.ReviewActionInput) (ports.DecisionRecord, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return ports.DecisionRecord{}, domainerrors.ErrInvalidRequest
	}
	return s.runDecision(ctx, idempotencyKey, reviewerID, input, "rejected",
		func(state ports.EntityState) error {
			if state.Status != trustpolicy.StatusPending {
				return domainerrors.ErrInvalidStatusTransition
			}
			return nil
		},
		func(client ports.ModerationClient, now time.Time) error {
			return client.SetModeration(ctx, input.EntityID, trustpolicy.StatusRejected, false, reviewerID, now)
		},
	)
}

// MarkReviewed signs off auto-applied live content: the needs-review flag is
// cleared and the status stays at the kind's live label.
func (s Service) MarkReviewed(ctx context.Context, idempotencyKey, reviewerID string, input ports.ReviewActionInput) (ports.DecisionRecord, error) {
	return s.runDecision(ctx, idempotencyKey, reviewerID, input, "mark_reviewed",
		func(state ports.EntityState) error {
			if state.Status != trustpolicy.LiveStatus(input.Kind) || !state.NeedsReview {
				return domainerrors.ErrInvalidStatusTransition
			}
			return nil
		},
		func(client ports.ModerationClient, now time.Time) error {
			return client.SetModeration(ctx, input.EntityID, trustpolicy.LiveStatus(input.Kind), false, reviewerID, now)
		},
	)
}

func (s Service) runDecision(
	ctx context.Context,
	idempotencyKey string,
	reviewerID string,
	input ports.ReviewActionInput,
	action string,
	check func(ports.EntityState) error,
	apply func(ports.ModerationClient, time.Time) error,
) (ports.DecisionRecord, error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	reviewerID = strings.TrimSpace(reviewerID)
	input.EntityID = strings.TrimSpace(input.EntityID)
	input.Reason = strings.TrimSpace(input.Reason)
	input.Notes = strings.TrimSpace(input.Notes)

	if idempotencyKey == "" {
		return ports.DecisionRecord{}, domainerrors.ErrIdempotencyKeyRequired
	}
	if reviewerID == "" || input.EntityID == "" || input.Kind == "" {
		return ports.DecisionRecord{}, domainerrors.ErrInvalidRequest
	}
	client, ok := s.Clients[input.Kind]
	if !ok {
		return ports.DecisionRecord{}, domainerrors.ErrUnsupportedKind
	}
	if err := s.requireReviewer(ctx, reviewerID); err != nil {
		return ports.DecisionRecord{}, err
	}

	requestHash := hashStrings(reviewerID, string(input.Kind), input.EntityID, action, input.Reason, input.Notes)
	var output ports.DecisionRecord
	err := s.runIdempotent(
		ctx,
		idempotencyKey,
		requestHash,
		func(raw []byte) error { return json.Unmarshal(raw, &output) },
		func() ([]byte, error) {
			state, err := client.GetState(ctx, input.EntityID)
			if err != nil {
				return nil, err
			}
			if err := check(state); err != nil {
				return nil, err
			}
			now := s.now()
			if err := apply(client, now); err != nil {
				return nil, err
			}
			record, err := s.Decisions.RecordDecision(ctx, ports.DecisionRecord{
				Kind:       input.Kind,
				EntityID:   input.EntityID,
				ReviewerID: reviewerID,
				Action:     action,
				Reason:     input.Reason,
				Notes:      input.Notes,
			}, now)
			if err != nil {
				return nil, err
			}
			return json.Marshal(record)
		},
	)
	return output, err
}

// requireReviewer gates every decision on the fully trusted tier. Moderators
// contribute trusted content but do not review the queue.
func (s Service) requireReviewer(ctx context.Context, reviewerID string) error {
	contributor, found, err := s.Contributors.ResolveContributor(ctx, reviewerID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrUnauthorizedReviewer
	}
	if trustpolicy.Classify(contributor) != trustpolicy.TierFullyTrusted {
		return domainerrors.ErrUnauthorizedReviewer
	}
	return nil
}

func (s Service) sortedKinds() []trustpolicy.EntityKind {
	kinds := make([]trustpolicy.EntityKind, 0, len(s.Clients))
	for kind := range s.Clients {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s Service) idempotencyTTL() time.Duration {
	if s.IdempotencyTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return s.IdempotencyTTL
}

func (s Service) runIdempotent(
	ctx context.Context,
	key string,
	requestHash string,
	decode func([]byte) error,
	exec func() ([]byte, error),
) error {
	now := s.now()
	record, found, err := s.Idempotency.Get(ctx, key, now)
	if err != nil {
		return err
	}
	if found {
		if record.RequestHash != requestHash {
			return domainerrors.ErrIdempotencyConflict
		}
		return decode(record.Payload)
	}
	payload, err := exec()
	if err != nil {
		return err
	}
	if err := s.Idempotency.Put(ctx, ports.IdempotencyRecord{
		Key:         key,
		RequestHash: requestHash,
		Payload:     payload,
		ExpiresAt:   now.Add(s.idempotencyTTL()),
	}); err != nil {
		return err
	}
	resolveLogger(s.Logger).Debug("review decision committed",
		"event", "review_decision_committed",
		"module", "moderation-trust/review-queue-service",
		"layer", "application",
		"idempotency_key", key,
	)
	return decode(payload)
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func hashStrings(values ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(values, "|")))
	return hex.EncodeToString(sum[:])
}
