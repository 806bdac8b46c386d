package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"costmanager/cache"
	"costmanager/models"
	"costmanager/store"
)

// GetCosts handles retrieving the cost catalog. With a ?name= query
// parameter it answers an existence check instead of listing; the two
// behaviors share one route on purpose.
func (h *Handler) GetCosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if name := r.URL.Query().Get("name"); name != "" {
		exists, err := h.Costs.ExistsByName(ctx, name)
		if err != nil {
			h.ErrorHdlr.HandleInternalError(w, "Error checking cost existence")
			return
		}
		h.ResponseHdlr.Success(w, "Cost existence checked", map[string]bool{"exists": exists})
		return
	}

	// Try to get from cache
	if cache.Ready() {
		var cached []models.Cost
		if err := cache.GetCache(ctx, cache.CostListKey, &cached); err == nil {
			w.Header().Set("X-Cache", "HIT")
			h.ResponseHdlr.Success(w, "Costs fetched from cache", cached)
			return
		}
		w.Header().Set("X-Cache", "MISS")
	}

	costs, err := h.Costs.List(ctx)
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error fetching costs")
		return
	}

	if cache.Ready() {
		if err := cache.SetCache(ctx, cache.CostListKey, costs, 5*time.Minute); err != nil {
			log.Warn().Err(err).Msg("failed to cache cost list")
		}
	}

	h.ResponseHdlr.Success(w, "Costs fetched successfully", costs)
}

// CreateCost handles creating a new catalog cost
func (h *Handler) CreateCost(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return
	}

	if !h.validateRequest(w, &req) {
		return
	}

	newCost := models.Cost{
		ID:       primitive.NewObjectID(),
		Name:     req.Name,
		Category: req.Category,
		CostType: req.CostType,
		Value:    req.Value,
		Currency: req.Currency,
		Unit:     req.Unit,
		ImageURL: req.ImageURL,
	}

	if err := h.Costs.Create(r.Context(), newCost); err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error creating cost")
		return
	}

	invalidateCostCaches(r.Context())

	h.ResponseHdlr.Created(w, "Cost created successfully", newCost)
}

// UpdateCost handles a partial merge-update of an existing cost
func (h *Handler) UpdateCost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)

	objID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid cost ID")
		return
	}

	var req models.UpdateCostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return
	}

	if !h.validateRequest(w, &req) {
		return
	}

	// Build update document
	update := bson.M{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Category != "" {
		update["category"] = req.Category
	}
	if req.CostType != "" {
		update["cost_type"] = req.CostType
	}
	if req.Value != 0 {
		update["value"] = req.Value
	}
	if req.Currency != "" {
		update["currency"] = req.Currency
	}
	if req.Unit != "" {
		update["unit"] = req.Unit
	}
	if req.ImageURL != "" {
		update["imageUrl"] = req.ImageURL
	}

	if len(update) == 0 {
		h.ErrorHdlr.HandleBadRequest(w, "No fields to update")
		return
	}

	updatedCost, err := h.Costs.Update(ctx, objID, update)
	if errors.Is(err, store.ErrNotFound) {
		h.ErrorHdlr.HandleNotFound(w, "Cost not found")
		return
	}
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error updating cost")
		return
	}

	invalidateCostCaches(ctx)
	// Resolved product reads embed cost records, so their caches are stale too.
	invalidateProductCaches(ctx, "")

	h.ResponseHdlr.Success(w, "Cost updated successfully", updatedCost)
}

// DeleteCost handles deleting a cost. Deletion does not cascade: products
// still referencing the cost keep a dangling reference, which is logged.
func (h *Handler) DeleteCost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)

	objID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid cost ID")
		return
	}

	if referencing, err := h.Products.FindByCost(ctx, objID); err == nil && len(referencing) > 0 {
		log.Warn().
			Str("cost_id", vars["id"]).
			Int("products", len(referencing)).
			Msg("deleting cost still referenced by products")
	}

	err = h.Costs.Delete(ctx, objID)
	if errors.Is(err, store.ErrNotFound) {
		h.ErrorHdlr.HandleNotFound(w, "Cost not found")
		return
	}
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error deleting cost")
		return
	}

	invalidateCostCaches(ctx)
	invalidateProductCaches(ctx, "")

	h.ResponseHdlr.NoContent(w)
}
