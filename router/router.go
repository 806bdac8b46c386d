package router

import (
	"github.com/gorilla/mux"

	"costmanager/handlers"
	"costmanager/middleware"
)

func SetupRoutes(h *handlers.Handler) *mux.Router {
	router := mux.NewRouter()

	// Public routes (no authentication required)
	router.HandleFunc("/auth/signup", h.SignUp).Methods("POST")
	router.HandleFunc("/auth/login", h.Login).Methods("POST")

	// Protected routes that require authentication
	protected := router.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(h.TokenSecret))

	// Cost catalog routes
	protected.HandleFunc("/costs", h.GetCosts).Methods("GET")
	protected.HandleFunc("/costs", h.CreateCost).Methods("POST")
	protected.HandleFunc("/costs/{id}", h.UpdateCost).Methods("PUT")
	protected.HandleFunc("/costs/{id}", h.DeleteCost).Methods("DELETE")

	// Product routes
	protected.HandleFunc("/products/cost/{costId}", h.GetProductsByCost).Methods("GET")
	protected.HandleFunc("/products", h.GetProducts).Methods("GET")
	protected.HandleFunc("/products", h.CreateProduct).Methods("POST")
	protected.HandleFunc("/products/{id}", h.GetProductDetails).Methods("GET")
	protected.HandleFunc("/products/{id}", h.UpdateProduct).Methods("PUT")
	protected.HandleFunc("/products/{id}", h.DeleteProduct).Methods("DELETE")

	// Cost line sub-resource routes
	protected.HandleFunc("/products/{productId}/costs", h.AddProductCost).Methods("POST")
	protected.HandleFunc("/products/{productId}/costs/{costId}", h.GetProductCost).Methods("GET")
	protected.HandleFunc("/products/{productId}/costs/{costId}", h.UpdateProductCost).Methods("PUT")
	protected.HandleFunc("/products/{productId}/costs/{costId}", h.DeleteProductCost).Methods("DELETE")

	// External services
	protected.HandleFunc("/upload", h.UploadImage).Methods("POST")
	protected.HandleFunc("/bigquery-data", h.GetBigQueryData).Methods("GET")

	return router
}
