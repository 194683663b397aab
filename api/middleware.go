package api

import (
	"fmt"
	"net/http"

	"github.com/dgrijalva/jwt-go"
	"github.com/pborman/uuid"
)

// JWTClaims are the claims the admin dashboards authenticate with. Buyers
// never carry a JWT; their capability is the order's access token.
type JWTClaims struct {
	jwt.StandardClaims
	Email  string   `json:"email"`
	Groups []string `json:"groups"`
}

func addRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := withRequestID(r.Context(), uuid.NewRandom().String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parseJWTClaims extracts and validates a bearer token when one is present.
// Requests without an Authorization header pass through anonymously.
func (a *API) parseJWTClaims(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		matches := bearerRegexp.FindStringSubmatch(authHeader)
		if len(matches) != 2 {
			handleError(unauthorizedError("Bad authentication header"), w, r)
			return
		}

		token, err := jwt.ParseWithClaims(matches[1], &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Header["alg"] != jwt.SigningMethodHS256.Name {
				return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(a.config.JWT.Secret), nil
		})
		if err != nil {
			handleError(unauthorizedError("Invalid token: %v", err), w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(withToken(r.Context(), token)))
	})
}

// adminRequired gates the read-only admin surface on the configured group.
func (a *API) adminRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := getClaims(r.Context())
		if claims == nil {
			handleError(unauthorizedError("This endpoint requires authentication"), w, r)
			return
		}

		for _, group := range claims.Groups {
			if group == a.config.JWT.AdminGroup {
				logEntrySetField(r, "admin_id", claims.Subject)
				next.ServeHTTP(w, r)
				return
			}
		}

		handleError(unauthorizedError("This endpoint requires admin access"), w, r)
	})
}
