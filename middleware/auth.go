package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

type contextKey string

const (
	// ClaimsKey holds the verified token claims in the request context.
	ClaimsKey contextKey = "claims"
	// UserIDKey holds the authenticated user id in the request context.
	UserIDKey contextKey = "user_id"
)

// AuthMiddleware verifies the JWT token in the Authorization header.
// A token that fails to parse at all is reported as malformed; any other
// verification failure is reported as invalid.
func AuthMiddleware(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			// Check if the Authorization header has the correct format
			bearerToken := strings.Split(authHeader, " ")
			if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			// Parse and validate the JWT token
			token, err := jwt.Parse(bearerToken[1], func(token *jwt.Token) (interface{}, error) {
				// Validate the signing method
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})

			if err != nil {
				if errors.Is(err, jwt.ErrTokenMalformed) {
					http.Error(w, "Malformed token", http.StatusUnauthorized)
				} else {
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				}
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			// Add claims and user id to the request context
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			if userID, ok := claims["user_id"].(string); ok {
				ctx = context.WithValue(ctx, UserIDKey, userID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
