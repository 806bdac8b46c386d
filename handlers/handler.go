package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"costmanager/cache"
	"costmanager/models"
	"costmanager/services"
	"costmanager/store"
	"costmanager/utils"
)

// Handler carries the injected store handles and external services used
// by every route. It is constructed once at startup.
type Handler struct {
	Costs    store.CostStore
	Products store.ProductStore
	Users    store.UserStore

	Warehouse *services.BigQueryService
	Uploader  services.Uploader

	TokenSecret string

	ResponseHdlr *ResponseHandler
	ErrorHdlr    *utils.ErrorHandler
}

// validateRequest validates a decoded request struct and writes the 400
// response itself when validation fails.
func (h *Handler) validateRequest(w http.ResponseWriter, req interface{}) bool {
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		h.ErrorHdlr.HandleValidationError(w, utils.ValidationDetails(err))
		return false
	}
	return true
}

// resolveProducts expands every cost line reference to the full catalog
// record with a single batched lookup. Dangling references resolve to nil.
func (h *Handler) resolveProducts(ctx context.Context, products []models.Product) ([]models.ResolvedProduct, error) {
	var ids []primitive.ObjectID
	seen := map[primitive.ObjectID]bool{}
	for _, p := range products {
		for _, line := range p.Costs {
			if !seen[line.Cost] {
				seen[line.Cost] = true
				ids = append(ids, line.Cost)
			}
		}
	}

	costs, err := h.Costs.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	resolved := make([]models.ResolvedProduct, 0, len(products))
	for _, p := range products {
		resolved = append(resolved, expandProduct(p, costs))
	}
	return resolved, nil
}

func (h *Handler) resolveProduct(ctx context.Context, product models.Product) (*models.ResolvedProduct, error) {
	resolved, err := h.resolveProducts(ctx, []models.Product{product})
	if err != nil {
		return nil, err
	}
	return &resolved[0], nil
}

func expandProduct(p models.Product, costs map[primitive.ObjectID]models.Cost) models.ResolvedProduct {
	lines := make([]models.ResolvedCostLine, 0, len(p.Costs))
	for _, line := range p.Costs {
		resolvedLine := models.ResolvedCostLine{
			ID:       line.ID,
			Quantity: line.Quantity,
			Unit:     line.Unit,
		}
		if cost, ok := costs[line.Cost]; ok {
			c := cost
			resolvedLine.Cost = &c
		}
		lines = append(lines, resolvedLine)
	}
	return models.ResolvedProduct{
		ID:            p.ID,
		Name:          p.Name,
		BaseQuantity:  p.BaseQuantity,
		Costs:         lines,
		UnitTotalCost: p.UnitTotalCost,
		UnitPrice:     p.UnitPrice,
		ImageURL:      p.ImageURL,
	}
}

// invalidateCostCaches drops every cached cost list.
func invalidateCostCaches(ctx context.Context) {
	if !cache.Ready() {
		return
	}
	if err := cache.DeleteByPattern(ctx, cache.CostListPattern); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate cost caches")
	}
}

// invalidateProductCaches drops every cached product list plus the detail
// entry for one product, or all detail entries when no id is given (cost
// mutations leave every resolved product stale).
func invalidateProductCaches(ctx context.Context, productID string) {
	if !cache.Ready() {
		return
	}
	if productID != "" {
		key := fmt.Sprintf(cache.ProductDetailPattern, productID)
		if err := cache.DeleteCache(ctx, key); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate product detail cache")
		}
	} else {
		if err := cache.DeleteByPattern(ctx, cache.ProductDetailAllPattern); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate product detail caches")
		}
	}
	if err := cache.DeleteByPattern(ctx, cache.ProductListPattern); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate product list caches")
	}
}
