package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"costmanager/models"
)

func TestCreateProductRequiresCoreFields(t *testing.T) {
	h, _, products := newTestHandler()

	// unit_price missing
	rr := doRequest(t, h.CreateProduct, http.MethodPost, "/products", map[string]interface{}{
		"name":          "Bread",
		"base_quantity": 1,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, products.products)
}

func TestCreateProductValidatesEmbeddedCostReferences(t *testing.T) {
	h, _, products := newTestHandler()

	rr := doRequest(t, h.CreateProduct, http.MethodPost, "/products", map[string]interface{}{
		"name":          "Bread",
		"base_quantity": 1,
		"unit_price":    5,
		"costs": []map[string]interface{}{
			{"cost": primitive.NewObjectID().Hex(), "quantity": 500, "unit": "g"},
		},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, products.products)
}

func TestCreateProductAssignsLineIDs(t *testing.T) {
	h, costs, products := newTestHandler()
	costID := primitive.NewObjectID()
	costs.costs = []models.Cost{{ID: costID, Name: "Flour"}}

	rr := doRequest(t, h.CreateProduct, http.MethodPost, "/products", map[string]interface{}{
		"name":          "Bread",
		"base_quantity": 1,
		"unit_price":    5,
		"costs": []map[string]interface{}{
			{"cost": costID.Hex(), "quantity": 500, "unit": "g"},
		},
	}, nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created models.Product
	decodeData(t, rr, &created)
	assert.False(t, created.ID.IsZero())
	require.Len(t, created.Costs, 1)
	assert.False(t, created.Costs[0].ID.IsZero())
	assert.Equal(t, costID, created.Costs[0].Cost)
	require.Len(t, products.products, 1)
}

func TestCreateProductWithEmptyCostsList(t *testing.T) {
	h, _, products := newTestHandler()

	rr := doRequest(t, h.CreateProduct, http.MethodPost, "/products", map[string]interface{}{
		"name":          "Bread",
		"base_quantity": 1,
		"unit_price":    5,
	}, nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, products.products, 1)
	assert.Empty(t, products.products[0].Costs)
	assert.Zero(t, products.products[0].UnitTotalCost)
}

func TestGetProductDetailsResolvesCostLines(t *testing.T) {
	h, costs, products := newTestHandler()
	costID := primitive.NewObjectID()
	productID := primitive.NewObjectID()
	costs.costs = []models.Cost{{ID: costID, Name: "Flour", Unit: "kg", Value: 2}}
	products.products = []models.Product{{
		ID: productID, Name: "Bread", BaseQuantity: 1, UnitPrice: 5,
		Costs: []models.CostLine{
			{ID: primitive.NewObjectID(), Cost: costID, Quantity: 500, Unit: "g"},
		},
	}}

	rr := doRequest(t, h.GetProductDetails, http.MethodGet, "/products/"+productID.Hex(), nil,
		map[string]string{"id": productID.Hex()})
	require.Equal(t, http.StatusOK, rr.Code)

	var resolved models.ResolvedProduct
	decodeData(t, rr, &resolved)
	require.Len(t, resolved.Costs, 1)
	require.NotNil(t, resolved.Costs[0].Cost)
	assert.Equal(t, "Flour", resolved.Costs[0].Cost.Name)
	// Line unit diverges from the cost's canonical unit on purpose.
	assert.Equal(t, "g", resolved.Costs[0].Unit)
	assert.Equal(t, "kg", resolved.Costs[0].Cost.Unit)
}

func TestGetProductDetailsUnknownID(t *testing.T) {
	h, _, _ := newTestHandler()
	id := primitive.NewObjectID()

	rr := doRequest(t, h.GetProductDetails, http.MethodGet, "/products/"+id.Hex(), nil,
		map[string]string{"id": id.Hex()})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Product not found", errorMessage(t, rr))
}

func TestUpdateProductPartialMerge(t *testing.T) {
	h, _, products := newTestHandler()
	id := primitive.NewObjectID()
	products.products = []models.Product{{
		ID: id, Name: "Bread", BaseQuantity: 1, UnitPrice: 5,
	}}

	rr := doRequest(t, h.UpdateProduct, http.MethodPut, "/products/"+id.Hex(),
		map[string]interface{}{"unit_price": 6}, map[string]string{"id": id.Hex()})
	require.Equal(t, http.StatusOK, rr.Code)

	var updated models.Product
	decodeData(t, rr, &updated)
	assert.Equal(t, 6.0, updated.UnitPrice)
	assert.Equal(t, "Bread", updated.Name)
}

func TestUpdateProductReplacesCostsWholesale(t *testing.T) {
	h, costs, products := newTestHandler()
	oldCost := primitive.NewObjectID()
	newCost := primitive.NewObjectID()
	costs.costs = []models.Cost{{ID: newCost, Name: "Butter"}}
	id := primitive.NewObjectID()
	products.products = []models.Product{{
		ID: id, Name: "Bread", BaseQuantity: 1, UnitPrice: 5,
		Costs: []models.CostLine{
			{ID: primitive.NewObjectID(), Cost: oldCost, Quantity: 500, Unit: "g"},
		},
	}}

	rr := doRequest(t, h.UpdateProduct, http.MethodPut, "/products/"+id.Hex(),
		map[string]interface{}{
			"costs": []map[string]interface{}{
				{"cost": newCost.Hex(), "quantity": 100, "unit": "g"},
			},
		}, map[string]string{"id": id.Hex()})
	require.Equal(t, http.StatusOK, rr.Code)

	require.Len(t, products.products[0].Costs, 1)
	assert.Equal(t, newCost, products.products[0].Costs[0].Cost)
}

func TestDeleteProductThenGet(t *testing.T) {
	h, _, products := newTestHandler()
	id := primitive.NewObjectID()
	products.products = []models.Product{{ID: id, Name: "Bread"}}

	rr := doRequest(t, h.DeleteProduct, http.MethodDelete, "/products/"+id.Hex(), nil,
		map[string]string{"id": id.Hex()})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = doRequest(t, h.GetProductDetails, http.MethodGet, "/products/"+id.Hex(), nil,
		map[string]string{"id": id.Hex()})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, h.DeleteProduct, http.MethodDelete, "/products/"+id.Hex(), nil,
		map[string]string{"id": id.Hex()})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetProductsByCostWithNoReferentsIsEmpty(t *testing.T) {
	h, costs, _ := newTestHandler()
	costID := primitive.NewObjectID()
	costs.costs = []models.Cost{{ID: costID, Name: "Flour"}}

	rr := doRequest(t, h.GetProductsByCost, http.MethodGet, "/products/cost/"+costID.Hex(), nil,
		map[string]string{"costId": costID.Hex()})
	require.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Status int                      `json:"status"`
		Data   []models.ResolvedProduct `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data)
}

func TestGetProductsByCostFindsReferents(t *testing.T) {
	h, costs, products := newTestHandler()
	costID := primitive.NewObjectID()
	costs.costs = []models.Cost{{ID: costID, Name: "Flour"}}
	products.products = []models.Product{
		{
			ID: primitive.NewObjectID(), Name: "Bread",
			Costs: []models.CostLine{{ID: primitive.NewObjectID(), Cost: costID, Quantity: 500, Unit: "g"}},
		},
		{ID: primitive.NewObjectID(), Name: "Juice"},
	}

	rr := doRequest(t, h.GetProductsByCost, http.MethodGet, "/products/cost/"+costID.Hex(), nil,
		map[string]string{"costId": costID.Hex()})
	require.Equal(t, http.StatusOK, rr.Code)

	var resolved []models.ResolvedProduct
	decodeData(t, rr, &resolved)
	require.Len(t, resolved, 1)
	assert.Equal(t, "Bread", resolved[0].Name)
	require.NotNil(t, resolved[0].Costs[0].Cost)
	assert.Equal(t, "Flour", resolved[0].Costs[0].Cost.Name)
}
