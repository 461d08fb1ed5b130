package httpadapter

import (
	"context"
	"log/slog"

	"stockist/contexts/catalog/catalog-service/application/commands"
	"stockist/contexts/catalog/catalog-service/application/queries"
	"stockist/contexts/catalog/catalog-service/domain/entities"
	httptransport "stockist/contexts/catalog/catalog-service/transport/http"
	trustpolicy "stockist/contexts/moderation-trust/trust-policy"
)

type Handler struct {
	Submit  commands.SubmitProductUseCase
	Resolve queries.ResolveUseCase
	List    queries.ListUseCase
	Logger  *slog.Logger
}

// SubmitProductHandler godoc
// @Summary Submit a new product
// @Description Creates a user-contributed product; visibility depends on the contributor's trust tier.
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-User-Id header string true "Acting user id"
// @Param request body httptransport.SubmitProductRequest true "Product submission"
// @Success 200 {object} httptransport.SubmitProductResponse
// @Failure 400 {object} httptransport.ErrorEnvelope
// @Router /catalog/products [post]
func (h Handler) SubmitProductHandler(ctx context.Context, actorID string, req httptransport.SubmitProductRequest) (httptransport.SubmitProductResponse, error) {
	result, err := h.Submit.Submit(ctx, commands.SubmitProductCommand{
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		WebsiteURL:  req.WebsiteURL,
		ActorID:     actorID,
	})
	if err != nil {
		return httptransport.SubmitProductResponse{}, err
	}

	resp := httptransport.SubmitProductResponse{Status: "success"}
	resp.Data.ProductID = result.ProductID
	resp.Data.EntryStatus = string(result.Status)
	resp.Data.NeedsReview = result.NeedsReview
	switch {
	case result.Status == trustpolicy.StatusPending:
		resp.Data.Message = "Your product was submitted and is pending review."
	case result.NeedsReview:
		resp.Data.Message = "Your product is live and has been submitted for review."
	default:
		resp.Data.Message = "Your product is live."
	}
	return resp, nil
}

// GetProductHandler godoc
// @Summary Resolve one product
// @Description Serves the approved shadow override when one exists, otherwise the canonical or contributed record.
// @Tags catalog
// @Produce json
// @Param product_id path string true "Product id"
// @Success 200 {object} httptransport.GetProductResponse
// @Failure 403 {object} httptransport.ErrorEnvelope
// @Failure 404 {object} httptransport.ErrorEnvelope
// @Router /catalog/products/{product_id} [get]
func (h Handler) GetProductHandler(ctx context.Context, productID string, allowArchived bool) (httptransport.GetProductResponse, error) {
	entry, err := h.Resolve.Resolve(ctx, queries.ResolveProductQuery{
		ProductID:     productID,
		AllowArchived: allowArchived,
	})
	if err != nil {
		return httptransport.GetProductResponse{}, err
	}
	return httptransport.GetProductResponse{Status: "success", Data: toProductDTO(entry)}, nil
}

// ListProductsHandler godoc
// @Summary List catalog products
// @Description Returns the merged canonical and contributed catalog, paginated after de-duplication.
// @Tags catalog
// @Produce json
// @Param q query string false "Name search"
// @Param brand query string false "Brand filter"
// @Param category query string false "Category filter"
// @Param sort query string false "name (default) or rating"
// @Param page query int false "Page number, 1-based"
// @Param limit query int false "Page size, max 100"
// @Success 200 {object} httptransport.ListProductsResponse
// @Failure 400 {object} httptransport.ErrorEnvelope
// @Router /catalog/products [get]
func (h Handler) ListProductsHandler(ctx context.Context, query queries.ListCatalogQuery) (httptransport.ListProductsResponse, error) {
	page, err := h.List.List(ctx, query)
	if err != nil {
		return httptransport.ListProductsResponse{}, err
	}
	resp := httptransport.ListProductsResponse{Status: "success"}
	resp.Data.Products = make([]httptransport.ProductSummaryDTO, 0, len(page.Items))
	for _, item := range page.Items {
		resp.Data.Products = append(resp.Data.Products, httptransport.ProductSummaryDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Brand:     item.Brand,
			Category:  item.Category,
			ImageURL:  item.ImageURL,
			Rating:    item.Rating,
			Source:    string(item.Source),
		})
	}
	resp.Data.Total = page.Total
	resp.Data.Page = page.Page
	resp.Data.Limit = page.Limit
	return resp, nil
}

func toProductDTO(entry entities.CatalogEntry) httptransport.ProductDTO {
	switch entry.Source {
	case entities.SourceCanonical:
		return httptransport.ProductDTO{
			ProductID:   entry.Canonical.ProductID,
			Source:      string(entry.Source),
			Name:        entry.Canonical.Name,
			Brand:       entry.Canonical.Brand,
			Category:    entry.Canonical.Category,
			Description: entry.Canonical.Description,
			ImageURL:    entry.Canonical.ImageURL,
			WebsiteURL:  entry.Canonical.WebsiteURL,
			Rating:      entry.Canonical.Rating,
			Archived:    entry.Canonical.Archived,
		}
	default:
		return httptransport.ProductDTO{
			ProductID:   entry.LogicalID(),
			Source:      string(entry.Source),
			Name:        entry.Contributed.Name,
			Brand:       entry.Contributed.Brand,
			Category:    entry.Contributed.Category,
			Description: entry.Contributed.Description,
			ImageURL:    entry.Contributed.ImageURL,
			WebsiteURL:  entry.Contributed.WebsiteURL,
			Rating:      entry.Contributed.Rating,
			Archived:    entry.Contributed.Archived,
		}
	}
}
