package handlers

import (
	"encoding/json"
	"net/http"
)

// ResponseHandler handles all successful responses
type ResponseHandler struct{}

// Response represents the standard API response structure
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// NewResponseHandler creates a new response handler
func NewResponseHandler() *ResponseHandler {
	return &ResponseHandler{}
}

// JSON sends a JSON response
func (h *ResponseHandler) JSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Error processing response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Success sends a success response with status 200
func (h *ResponseHandler) Success(w http.ResponseWriter, message string, data interface{}) {
	h.JSON(w, http.StatusOK, Response{
		Status:  http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Created sends a success response with status 201
func (h *ResponseHandler) Created(w http.ResponseWriter, message string, data interface{}) {
	h.JSON(w, http.StatusCreated, Response{
		Status:  http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

// NoContent sends an empty 204 response
func (h *ResponseHandler) NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
