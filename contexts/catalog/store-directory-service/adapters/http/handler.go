package httpadapter

import (
	"context"
	"log/slog"

	"stockist/contexts/catalog/store-directory-service/application/commands"
	"stockist/contexts/catalog/store-directory-service/application/queries"
	"stockist/contexts/catalog/store-directory-service/domain/entities"
	"stockist/contexts/catalog/store-directory-service/ports"
	httptransport "stockist/contexts/catalog/store-directory-service/transport/http"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

type Handler struct {
	Submit  commands.SubmitStoreUseCase
	Queries queries.QueryUseCase
	Logger  *slog.Logger
}

// SubmitStoreHandler godoc
// @Summary Submit a new store listing
// @Description Registers a store after duplicate checks; visibility depends on the contributor's trust tier.
// @Tags store-directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-User-Id header string true "Acting user id"
// @Param request body httptransport.SubmitStoreRequest true "Store submission"
// @Success 200 {object} httptransport.SubmitStoreResponse
// @Failure 400 {object} httptransport.ErrorEnvelope
// @Failure 409 {object} httptransport.ErrorEnvelope
// @Router /directory/stores [post]
func (h Handler) SubmitStoreHandler(ctx context.Context, actorID string, req httptransport.SubmitStoreRequest) (httptransport.SubmitStoreResponse, error) {
	result, err := h.Submit.Submit(ctx, commands.SubmitStoreCommand{
		Name:            req.Name,
		Type:            req.Type,
		PlaceID:         req.PlaceID,
		WebsiteURL:      req.WebsiteURL,
		Address:         req.Address,
		Phone:           req.Phone,
		OpeningHours:    req.OpeningHours,
		ActorID:         actorID,
		OverrideSimilar: req.OverrideSimilar,
	})
	if err != nil {
		return httptransport.SubmitStoreResponse{}, err
	}

	resp := httptransport.SubmitStoreResponse{Status: "success"}
	resp.Data.StoreID = result.StoreID
	resp.Data.EntryStatus = string(result.Status)
	resp.Data.NeedsReview = result.NeedsReview
	switch {
	case result.Status == trustpolicy.StatusPending:
		resp.Data.Message = "Your store was submitted and is pending review."
	case result.NeedsReview:
		resp.Data.Message = "Your store is live and has been submitted for review."
	default:
		resp.Data.Message = "Your store is live."
	}
	return resp, nil
}

// GetStoreHandler godoc
// @Summary Get one store listing
// @Tags store-directory
// @Produce json
// @Param store_id path string true "Store id"
// @Success 200 {object} httptransport.GetStoreResponse
// @Failure 403 {object} httptransport.ErrorEnvelope
// @Failure 404 {object} httptransport.ErrorEnvelope
// @Router /directory/stores/{store_id} [get]
func (h Handler) GetStoreHandler(ctx context.Context, storeID string, allowHidden bool) (httptransport.GetStoreResponse, error) {
	store, err := h.Queries.GetStore(ctx, storeID, allowHidden)
	if err != nil {
		return httptransport.GetStoreResponse{}, err
	}
	return httptransport.GetStoreResponse{Status: "success", Data: toStoreDTO(store)}, nil
}

// ListStoresHandler godoc
// @Summary List store listings
// @Tags store-directory
// @Produce json
// @Param q query string false "Name search"
// @Param type query string false "physical or online"
// @Success 200 {object} httptransport.ListStoresResponse
// @Router /directory/stores [get]
func (h Handler) ListStoresHandler(ctx context.Context, filter ports.StoreFilter, allowHidden bool) (httptransport.ListStoresResponse, error) {
	stores, err := h.Queries.ListStores(ctx, filter, allowHidden)
	if err != nil {
		return httptransport.ListStoresResponse{}, err
	}
	resp := httptransport.ListStoresResponse{Status: "success"}
	resp.Data.Stores = make([]httptransport.StoreDTO, 0, len(stores))
	for _, store := range stores {
		resp.Data.Stores = append(resp.Data.Stores, toStoreDTO(store))
	}
	return resp, nil
}

// CheckDuplicateHandler godoc
// @Summary Check a store submission for duplicates
// @Description Dry-run duplicate check so clients can warn before submitting.
// @Tags store-directory
// @Accept json
// @Produce json
// @Param request body httptransport.CheckDuplicateRequest true "Candidate store"
// @Success 200 {object} httptransport.CheckDuplicateResponse
// @Failure 400 {object} httptransport.ErrorEnvelope
// @Router /directory/stores/check-duplicate [post]
func (h Handler) CheckDuplicateHandler(ctx context.Context, req httptransport.CheckDuplicateRequest) (httptransport.CheckDuplicateResponse, error) {
	storeType, _ := entities.ParseStoreType(req.Type)
	report, err := h.Queries.CheckDuplicate(ctx, entities.DirectoryStore{
		Name:       req.Name,
		Type:       storeType,
		PlaceID:    req.PlaceID,
		WebsiteURL: req.WebsiteURL,
	})
	if err != nil {
		return httptransport.CheckDuplicateResponse{}, err
	}

	resp := httptransport.CheckDuplicateResponse{Status: "success"}
	if report.ExactMatch != nil {
		match := toStoreDTO(*report.ExactMatch)
		resp.Data.ExactMatch = &match
	}
	resp.Data.SimilarStores = make([]httptransport.StoreDTO, 0, len(report.SimilarStores))
	for _, store := range report.SimilarStores {
		resp.Data.SimilarStores = append(resp.Data.SimilarStores, toStoreDTO(store))
	}
	return resp, nil
}

func toStoreDTO(store entities.DirectoryStore) httptransport.StoreDTO {
	return httptransport.StoreDTO{
		StoreID:      store.StoreID,
		Name:         store.Name,
		Type:         string(store.Type),
		PlaceID:      store.PlaceID,
		WebsiteURL:   store.WebsiteURL,
		Address:      store.Address,
		Phone:        store.Phone,
		OpeningHours: store.OpeningHours,
		EntryStatus:  string(store.Status),
	}
}
