package handlers

import (
	"net/http"

	appErrors "github.com/shoplane-labs/catalog-discovery/internal/errors"
	"github.com/shoplane-labs/catalog-discovery/internal/models"
	service "github.com/shoplane-labs/catalog-discovery/internal/services"
	"github.com/shoplane-labs/catalog-discovery/internal/utils"
	"github.com/shoplane-labs/catalog-discovery/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, validator: validator.New()}
}

// parseListOptions builds ListOptions from the query string. Malformed UUIDs
// and out-of-range limits are client errors; everything else falls back to
// defaults.
func (h *CatalogHandler) parseListOptions(r *http.Request) (models.ListOptions, error) {
	var opts models.ListOptions

	categoryID, err := utils.QueryUUID(r, "category_id")
	if err != nil {
		return opts, appErrors.BadRequestError("Invalid category_id")
	}

	storeID, err := utils.QueryUUID(r, "store_id")
	if err != nil {
		return opts, appErrors.BadRequestError("Invalid store_id")
	}

	opts.CategoryID = categoryID
	opts.StoreID = storeID
	opts.SearchQuery = r.URL.Query().Get("q")
	opts.Limit = utils.QueryInt(r, "limit", 0)
	opts.Trending = utils.QueryBool(r, "trending")

	if err := h.validator.Struct(opts); err != nil {
		return opts, appErrors.ValidationError("Invalid listing parameters").WithError(err)
	}

	return opts, nil
}

// ListProducts handles GET /api/v1/products.
func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		opts, err := h.parseListOptions(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		products := h.catalogService.ListProducts(r.Context(), opts)

		response.Success(w, http.StatusOK, products)

	}
}

// CountProducts handles GET /api/v1/products/count.
func (h *CatalogHandler) CountProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		opts, err := h.parseListOptions(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		total := h.catalogService.CountProducts(r.Context(), opts)

		response.Success(w, http.StatusOK, map[string]int64{"count": total})

	}
}

// TrendingProducts handles GET /api/v1/products/trending.
func (h *CatalogHandler) TrendingProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		limit := utils.QueryInt(r, "limit", 0)

		products := h.catalogService.TrendingProducts(r.Context(), limit)

		response.Success(w, http.StatusOK, products)

	}
}

// LatestProducts handles GET /api/v1/products/latest.
func (h *CatalogHandler) LatestProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		limit := utils.QueryInt(r, "limit", 0)

		products := h.catalogService.LatestProducts(r.Context(), limit)

		response.Success(w, http.StatusOK, products)

	}
}
