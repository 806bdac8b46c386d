package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Cost represents one priced, unit-denominated resource in the catalog.
// Category and cost type are closed enumerations; everything except the
// identity is mandatory at creation.
type Cost struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Name     string             `json:"name" bson:"name"`
	Category string             `json:"category" bson:"category"`
	CostType string             `json:"cost_type" bson:"cost_type"`
	Value    float64            `json:"value" bson:"value"`
	Currency string             `json:"currency" bson:"currency"`
	Unit     string             `json:"unit" bson:"unit"`
	ImageURL string             `json:"imageUrl" bson:"imageUrl"`
}

// CreateCostRequest is used for cost creation requests
type CreateCostRequest struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required,oneof=main extra"`
	CostType string  `json:"cost_type" validate:"required,oneof=material hr place energy"`
	Value    float64 `json:"value" validate:"required"`
	Currency string  `json:"currency" validate:"required"`
	Unit     string  `json:"unit" validate:"required"`
	ImageURL string  `json:"imageUrl" validate:"required"`
}

// UpdateCostRequest is used for cost update requests; zero-valued fields
// are left untouched.
type UpdateCostRequest struct {
	Name     string  `json:"name,omitempty"`
	Category string  `json:"category,omitempty" validate:"omitempty,oneof=main extra"`
	CostType string  `json:"cost_type,omitempty" validate:"omitempty,oneof=material hr place energy"`
	Value    float64 `json:"value,omitempty"`
	Currency string  `json:"currency,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	ImageURL string  `json:"imageUrl,omitempty"`
}
