package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CostLine is one embedded entry in a product's cost list. It carries its
// own store-assigned identity so single lines can be addressed, and a
// non-owning reference to a catalog Cost. Unit may diverge from the
// referenced cost's canonical unit (a cost priced per kg consumed in grams).
type CostLine struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Cost     primitive.ObjectID `json:"cost" bson:"cost"`
	Quantity float64            `json:"quantity" bson:"quantity"`
	Unit     string             `json:"unit" bson:"unit"`
}

// Product represents a composite item assembled from cost lines.
// UnitTotalCost is client-supplied, never derived.
type Product struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id"`
	Name          string             `json:"name" bson:"name"`
	BaseQuantity  float64            `json:"base_quantity" bson:"base_quantity"`
	Costs         []CostLine         `json:"costs" bson:"costs"`
	UnitTotalCost float64            `json:"unit_total_cost" bson:"unit_total_cost"`
	UnitPrice     float64            `json:"unit_price" bson:"unit_price"`
	ImageURL      string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
}

// ResolvedCostLine is a cost line with its reference expanded to the full
// catalog record. Cost is nil when the referenced record no longer exists.
type ResolvedCostLine struct {
	ID       primitive.ObjectID `json:"_id"`
	Cost     *Cost              `json:"cost"`
	Quantity float64            `json:"quantity"`
	Unit     string             `json:"unit"`
}

// ResolvedProduct is the output shape of product reads: every cost line
// carries the full referenced cost record.
type ResolvedProduct struct {
	ID            primitive.ObjectID `json:"_id"`
	Name          string             `json:"name"`
	BaseQuantity  float64            `json:"base_quantity"`
	Costs         []ResolvedCostLine `json:"costs"`
	UnitTotalCost float64            `json:"unit_total_cost"`
	UnitPrice     float64            `json:"unit_price"`
	ImageURL      string             `json:"imageUrl,omitempty"`
}

// CostLineInput is an embedded cost entry supplied with product
// creation or a wholesale costs replacement.
type CostLineInput struct {
	Cost     string  `json:"cost" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required"`
	Unit     string  `json:"unit" validate:"required"`
}

// CreateProductRequest is used for product creation requests
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required"`
	BaseQuantity  float64         `json:"base_quantity" validate:"required"`
	Costs         []CostLineInput `json:"costs" validate:"omitempty,dive"`
	UnitTotalCost float64         `json:"unit_total_cost"`
	UnitPrice     float64         `json:"unit_price" validate:"required"`
	ImageURL      string          `json:"imageUrl,omitempty"`
}

// UpdateProductRequest is used for product update requests. Costs is a
// pointer so "absent" and "replace with empty list" stay distinguishable.
type UpdateProductRequest struct {
	Name          string           `json:"name,omitempty"`
	BaseQuantity  float64          `json:"base_quantity,omitempty"`
	Costs         *[]CostLineInput `json:"costs,omitempty" validate:"omitempty,dive"`
	UnitTotalCost *float64         `json:"unit_total_cost,omitempty"`
	UnitPrice     float64          `json:"unit_price,omitempty"`
	ImageURL      string           `json:"imageUrl,omitempty"`
}

// AddCostLineRequest is used for adding one cost line to a product
type AddCostLineRequest struct {
	CostID   string  `json:"costId" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required"`
	Unit     string  `json:"unit" validate:"required"`
}

// UpdateCostLineRequest is used for partial cost line updates; omitted
// fields retain their prior value.
type UpdateCostLineRequest struct {
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
}
