package httpadapter

import (
	"context"
	"log/slog"

	"stockist/contexts/catalog/availability-service/application/commands"
	"stockist/contexts/catalog/availability-service/application/queries"
	httptransport "stockist/contexts/catalog/availability-service/transport/http"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

type Handler struct {
	Report    commands.ReportAvailabilityUseCase
	Aggregate queries.AggregateUseCase
	Logger    *slog.Logger
}

// ReportAvailabilityHandler godoc
// @Summary Report product availability at a store
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-User-Id header string true "Acting user id"
// @Param request body httptransport.ReportAvailabilityRequest true "Availability report"
// @Success 200 {object} httptransport.ReportAvailabilityResponse
// @Failure 400 {object} httptransport.ErrorEnvelope
// @Failure 409 {object} httptransport.ErrorEnvelope
// @Router /availability/reports [post]
func (h Handler) ReportAvailabilityHandler(ctx context.Context, actorID string, req httptransport.ReportAvailabilityRequest) (httptransport.ReportAvailabilityResponse, error) {
	result, err := h.Report.Report(ctx, commands.ReportAvailabilityCommand{
		ProductID:  req.ProductID,
		StoreID:    req.StoreID,
		Source:     req.Source,
		PriceRange: req.PriceRange,
		ActorID:    actorID,
	})
	if err != nil {
		return httptransport.ReportAvailabilityResponse{}, err
	}

	resp := httptransport.ReportAvailabilityResponse{Status: "success"}
	resp.Data.RecordID = result.RecordID
	resp.Data.EntryStatus = string(result.Status)
	resp.Data.NeedsReview = result.NeedsReview
	switch {
	case result.Status == trustpolicy.StatusPending:
		resp.Data.Message = "Your report was submitted and is pending review."
	case result.NeedsReview:
		resp.Data.Message = "Your report is live and has been submitted for review."
	default:
		resp.Data.Message = "Your report is live."
	}
	return resp, nil
}

// CountsByStoreHandler godoc
// @Summary Availability counts per store
// @Tags availability
// @Produce json
// @Param store_id query []string true "Store ids" collectionFormat(multi)
// @Success 200 {object} httptransport.CountsByStoreResponse
// @Failure 400 {object} httptransport.ErrorEnvelope
// @Router /availability/counts [get]
func (h Handler) CountsByStoreHandler(ctx context.Context, storeIDs []string) (httptransport.CountsByStoreResponse, error) {
	counts, err := h.Aggregate.CountsByStore(ctx, storeIDs)
	if err != nil {
		return httptransport.CountsByStoreResponse{}, err
	}
	resp := httptransport.CountsByStoreResponse{Status: "success"}
	resp.Data.Counts = make(map[string]httptransport.StatusCountsDTO, len(counts))
	for storeID, c := range counts {
		resp.Data.Counts[storeID] = httptransport.StatusCountsDTO{
			Confirmed: c.Confirmed,
			Pending:   c.Pending,
			Rejected:  c.Rejected,
			Total:     c.Total,
		}
	}
	return resp, nil
}

// VisibleProductsHandler godoc
// @Summary Products visibly stocked at a store
// @Tags availability
// @Produce json
// @Param store_id path string true "Store id"
// @Success 200 {object} httptransport.VisibleProductsResponse
// @Failure 400 {object} httptransport.ErrorEnvelope
// @Router /availability/stores/{store_id}/products [get]
func (h Handler) VisibleProductsHandler(ctx context.Context, storeID string) (httptransport.VisibleProductsResponse, error) {
	products, err := h.Aggregate.VisibleProducts(ctx, storeID)
	if err != nil {
		return httptransport.VisibleProductsResponse{}, err
	}
	resp := httptransport.VisibleProductsResponse{Status: "success"}
	resp.Data.StoreID = storeID
	resp.Data.Products = products
	return resp, nil
}
