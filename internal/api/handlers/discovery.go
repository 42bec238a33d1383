package handlers

import (
	"net/http"

	appErrors "github.com/shoplane-labs/catalog-discovery/internal/errors"
	service "github.com/shoplane-labs/catalog-discovery/internal/services"
	"github.com/shoplane-labs/catalog-discovery/internal/utils/response"
	"github.com/google/uuid"
)

type DiscoveryHandler struct {
	discoveryService service.DiscoveryService
}

func NewDiscoveryHandler(discoveryService service.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{discoveryService: discoveryService}
}

// SimilarProducts handles GET /api/v1/products/{id}/similar. A degraded or
// empty recommendation set is still a 200; only a malformed id is an error.
func (h *DiscoveryHandler) SimilarProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid product id"))
			return
		}

		products := h.discoveryService.FindSimilar(r.Context(), id)

		response.Success(w, http.StatusOK, products)

	}
}
