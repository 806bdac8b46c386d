package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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

var (
	errInvalidCostRef = errors.New("invalid cost id in costs")
	errUnknownCostRef = errors.New("unknown cost reference in costs")
)

// buildCostLines converts embedded cost inputs into persisted lines.
// Every reference must resolve in the catalog; line ids are store-assigned
// here, mirroring what the line manager does for single additions.
func (h *Handler) buildCostLines(ctx context.Context, inputs []models.CostLineInput) ([]models.CostLine, error) {
	lines := make([]models.CostLine, 0, len(inputs))
	ids := make([]primitive.ObjectID, 0, len(inputs))
	for _, in := range inputs {
		costID, err := primitive.ObjectIDFromHex(in.Cost)
		if err != nil {
			return nil, errInvalidCostRef
		}
		ids = append(ids, costID)
		lines = append(lines, models.CostLine{
			ID:       primitive.NewObjectID(),
			Cost:     costID,
			Quantity: in.Quantity,
			Unit:     in.Unit,
		})
	}

	known, err := h.Costs.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, errUnknownCostRef
		}
	}
	return lines, nil
}

// GetProducts handles retrieving all products with their cost lines
// resolved to full catalog records
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Try to get from cache
	if cache.Ready() {
		var cached []models.ResolvedProduct
		if err := cache.GetCache(ctx, cache.ProductListKey, &cached); err == nil {
			w.Header().Set("X-Cache", "HIT")
			h.ResponseHdlr.Success(w, "Products fetched from cache", cached)
			return
		}
		w.Header().Set("X-Cache", "MISS")
	}

	products, err := h.Products.List(ctx)
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error fetching products")
		return
	}

	resolved, err := h.resolveProducts(ctx, products)
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error resolving product costs")
		return
	}

	if cache.Ready() {
		if err := cache.SetCache(ctx, cache.ProductListKey, resolved, 5*time.Minute); err != nil {
			log.Warn().Err(err).Msg("failed to cache product list")
		}
	}

	h.ResponseHdlr.Success(w, "Products fetched successfully", resolved)
}

// GetProductDetails handles retrieving a single product by ID
func (h *Handler) GetProductDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	productID := vars["id"]

	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid product ID")
		return
	}

	cacheKey := fmt.Sprintf(cache.ProductDetailPattern, productID)
	if cache.Ready() {
		var cached models.ResolvedProduct
		if err := cache.GetCache(ctx, cacheKey, &cached); err == nil {
			w.Header().Set("X-Cache", "HIT")
			h.ResponseHdlr.Success(w, "Product details fetched from cache", cached)
			return
		}
		w.Header().Set("X-Cache", "MISS")
	}

	product, err := h.Products.Get(ctx, objID)
	if errors.Is(err, store.ErrNotFound) {
		h.ErrorHdlr.HandleNotFound(w, "Product not found")
		return
	}
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error fetching product")
		return
	}

	resolved, err := h.resolveProduct(ctx, *product)
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error resolving product costs")
		return
	}

	if cache.Ready() {
		if err := cache.SetCache(ctx, cacheKey, resolved, 30*time.Minute); err != nil {
			log.Warn().Err(err).Msg("failed to cache product details")
		}
	}

	h.ResponseHdlr.Success(w, "Product details fetched successfully", resolved)
}

// CreateProduct handles creating a new product. Embedded cost entries are
// validated against the catalog before anything persists.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return
	}

	if !h.validateRequest(w, &req) {
		return
	}

	lines, err := h.buildCostLines(ctx, req.Costs)
	if errors.Is(err, errInvalidCostRef) || errors.Is(err, errUnknownCostRef) {
		h.ErrorHdlr.HandleBadRequest(w, "Unknown cost reference in costs")
		return
	}
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error validating cost references")
		return
	}

	newProduct := models.Product{
		ID:            primitive.NewObjectID(),
		Name:          req.Name,
		BaseQuantity:  req.BaseQuantity,
		Costs:         lines,
		UnitTotalCost: req.UnitTotalCost,
		UnitPrice:     req.UnitPrice,
		ImageURL:      req.ImageURL,
	}

	if err := h.Products.Create(ctx, newProduct); err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error creating product")
		return
	}

	invalidateProductCaches(ctx, "")

	h.ResponseHdlr.Created(w, "Product created successfully", newProduct)
}

// UpdateProduct handles a partial merge-update of an existing product,
// including a wholesale replacement of its cost list.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	productID := vars["id"]

	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid product ID")
		return
	}

	var req models.UpdateProductRequest
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
	if req.BaseQuantity != 0 {
		update["base_quantity"] = req.BaseQuantity
	}
	if req.UnitTotalCost != nil {
		update["unit_total_cost"] = *req.UnitTotalCost
	}
	if req.UnitPrice != 0 {
		update["unit_price"] = req.UnitPrice
	}
	if req.ImageURL != "" {
		update["imageUrl"] = req.ImageURL
	}
	if req.Costs != nil {
		lines, err := h.buildCostLines(ctx, *req.Costs)
		if errors.Is(err, errInvalidCostRef) || errors.Is(err, errUnknownCostRef) {
			h.ErrorHdlr.HandleBadRequest(w, "Unknown cost reference in costs")
			return
		}
		if err != nil {
			h.ErrorHdlr.HandleInternalError(w, "Error validating cost references")
			return
		}
		update["costs"] = lines
	}

	if len(update) == 0 {
		h.ErrorHdlr.HandleBadRequest(w, "No fields to update")
		return
	}

	updatedProduct, err := h.Products.Update(ctx, objID, update)
	if errors.Is(err, store.ErrNotFound) {
		h.ErrorHdlr.HandleNotFound(w, "Product not found")
		return
	}
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error updating product")
		return
	}

	invalidateProductCaches(ctx, productID)

	h.ResponseHdlr.Success(w, "Product updated successfully", updatedProduct)
}

// DeleteProduct handles deleting a product and its embedded cost lines
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	productID := vars["id"]

	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid product ID")
		return
	}

	err = h.Products.Delete(ctx, objID)
	if errors.Is(err, store.ErrNotFound) {
		h.ErrorHdlr.HandleNotFound(w, "Product not found")
		return
	}
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error deleting product")
		return
	}

	invalidateProductCaches(ctx, productID)

	h.ResponseHdlr.NoContent(w)
}

// GetProductsByCost handles retrieving every product referencing a given
// cost. No referents is an empty list, not an error.
func (h *Handler) GetProductsByCost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)

	costID, err := primitive.ObjectIDFromHex(vars["costId"])
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid cost ID")
		return
	}

	products, err := h.Products.FindByCost(ctx, costID)
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error fetching products by cost")
		return
	}

	resolved, err := h.resolveProducts(ctx, products)
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error resolving product costs")
		return
	}

	h.ResponseHdlr.Success(w, "Products fetched successfully", resolved)
}
