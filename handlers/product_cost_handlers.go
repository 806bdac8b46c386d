package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"costmanager/models"
	"costmanager/store"
)

// Cost lines are sub-resources of a product: they have no existence
// outside their owning document, so every operation here loads the parent
// first and persists the whole product afterwards.

// loadProduct fetches the parent product for a line operation, writing
// the error response itself when the product cannot be loaded.
func (h *Handler) loadProduct(w http.ResponseWriter, r *http.Request) (*models.Product, bool) {
	vars := mux.Vars(r)

	objID, err := primitive.ObjectIDFromHex(vars["productId"])
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid product ID")
		return nil, false
	}

	product, err := h.Products.Get(r.Context(), objID)
	if errors.Is(err, store.ErrNotFound) {
		h.ErrorHdlr.HandleNotFound(w, "Product not found")
		return nil, false
	}
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error fetching product")
		return nil, false
	}
	return product, true
}

// findLine locates a cost line by its own embedded id.
func findLine(product *models.Product, lineID string) int {
	for i, line := range product.Costs {
		if line.ID.Hex() == lineID {
			return i
		}
	}
	return -1
}

// GetProductCost handles retrieving a single cost line from a product
func (h *Handler) GetProductCost(w http.ResponseWriter, r *http.Request) {
	product, ok := h.loadProduct(w, r)
	if !ok {
		return
	}

	idx := findLine(product, mux.Vars(r)["costId"])
	if idx == -1 {
		h.ErrorHdlr.HandleNotFound(w, "Cost not found in product")
		return
	}

	line := product.Costs[idx]
	resolved := models.ResolvedCostLine{
		ID:       line.ID,
		Quantity: line.Quantity,
		Unit:     line.Unit,
	}
	if cost, err := h.Costs.Get(r.Context(), line.Cost); err == nil {
		resolved.Cost = cost
	}

	h.ResponseHdlr.Success(w, "Product cost fetched successfully", resolved)
}

// AddProductCost handles appending a new cost line to a product. The
// referenced cost must exist in the catalog at the moment of insertion.
func (h *Handler) AddProductCost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	product, ok := h.loadProduct(w, r)
	if !ok {
		return
	}

	var req models.AddCostLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return
	}

	if !h.validateRequest(w, &req) {
		return
	}

	costID, err := primitive.ObjectIDFromHex(req.CostID)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid cost ID")
		return
	}

	cost, err := h.Costs.Get(ctx, costID)
	if errors.Is(err, store.ErrNotFound) {
		h.ErrorHdlr.HandleNotFound(w, "Cost not found")
		return
	}
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error fetching cost")
		return
	}

	product.Costs = append(product.Costs, models.CostLine{
		ID:       primitive.NewObjectID(),
		Cost:     cost.ID,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	})

	if err := h.Products.Replace(ctx, *product); err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error saving product")
		return
	}

	invalidateProductCaches(ctx, product.ID.Hex())

	resolved, err := h.resolveProduct(ctx, *product)
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error resolving product costs")
		return
	}

	h.ResponseHdlr.Created(w, "Cost added to product successfully", resolved)
}

// UpdateProductCost handles a partial update of one cost line. Only
// quantity and unit can change; the cost reference itself is immutable.
func (h *Handler) UpdateProductCost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	product, ok := h.loadProduct(w, r)
	if !ok {
		return
	}

	var req models.UpdateCostLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return
	}

	idx := findLine(product, mux.Vars(r)["costId"])
	if idx == -1 {
		h.ErrorHdlr.HandleNotFound(w, "Cost not found in product")
		return
	}

	if req.Quantity != nil {
		product.Costs[idx].Quantity = *req.Quantity
	}
	if req.Unit != nil {
		product.Costs[idx].Unit = *req.Unit
	}

	if err := h.Products.Replace(ctx, *product); err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error saving product")
		return
	}

	invalidateProductCaches(ctx, product.ID.Hex())

	resolved, err := h.resolveProduct(ctx, *product)
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error resolving product costs")
		return
	}

	h.ResponseHdlr.Success(w, "Product cost updated successfully", resolved)
}

// DeleteProductCost handles removing one cost line from a product
func (h *Handler) DeleteProductCost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	product, ok := h.loadProduct(w, r)
	if !ok {
		return
	}

	idx := findLine(product, mux.Vars(r)["costId"])
	if idx == -1 {
		h.ErrorHdlr.HandleNotFound(w, "Cost not found in product")
		return
	}

	product.Costs = append(product.Costs[:idx], product.Costs[idx+1:]...)

	if err := h.Products.Replace(ctx, *product); err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error saving product")
		return
	}

	invalidateProductCaches(ctx, product.ID.Hex())

	resolved, err := h.resolveProduct(ctx, *product)
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error resolving product costs")
		return
	}

	h.ResponseHdlr.Success(w, "Cost removed from product successfully", resolved)
}
