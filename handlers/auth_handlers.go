package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"costmanager/models"
	"costmanager/store"
	"costmanager/utils"
)

// SignUp handles creating a new account
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return
	}

	if !h.validateRequest(w, &req) {
		return
	}

	// Check if the email is already taken
	if _, err := h.Users.FindByEmail(ctx, req.Email); err == nil {
		h.ErrorHdlr.HandleBadRequest(w, "Email already in use")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.ErrorHdlr.HandleInternalError(w, "Error checking email")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error hashing password")
		return
	}

	newUser := models.User{
		ID:       primitive.NewObjectID(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	}

	if err := h.Users.Create(ctx, newUser); err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error creating user")
		return
	}

	h.ResponseHdlr.Created(w, "User created successfully", models.UserResponse{
		ID:    newUser.ID,
		Name:  newUser.Name,
		Email: newUser.Email,
	})
}

// Login handles authenticating a user and issuing a JWT
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return
	}

	if !h.validateRequest(w, &req) {
		return
	}

	user, err := h.Users.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		h.ErrorHdlr.HandleUnauthorized(w, "Invalid email or password")
		return
	}
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error fetching user")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		h.ErrorHdlr.HandleUnauthorized(w, "Invalid email or password")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), h.TokenSecret)
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Error generating token")
		return
	}

	h.ResponseHdlr.Success(w, "Login successful", models.LoginResponse{
		Token: token,
		User: models.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}
