package handlers

import (
	"net/http"

	appErrors "github.com/shoplane-labs/catalog-discovery/internal/errors"
	service "github.com/shoplane-labs/catalog-discovery/internal/services"
	"github.com/shoplane-labs/catalog-discovery/internal/utils/response"
	"github.com/google/uuid"
)

type StoreHandler struct {
	storeCatalogService service.StoreCatalogService
}

func NewStoreHandler(storeCatalogService service.StoreCatalogService) *StoreHandler {
	return &StoreHandler{storeCatalogService: storeCatalogService}
}

// Categories handles GET /api/v1/stores/{id}/categories.
func (h *StoreHandler) Categories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid store id"))
			return
		}

		summary := h.storeCatalogService.SummarizeCategories(r.Context(), id)

		response.Success(w, http.StatusOK, summary)

	}
}
