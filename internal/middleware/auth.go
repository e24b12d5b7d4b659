package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
)

type ctxKey string

const authUserKey ctxKey = "authUser"

type AuthUser struct {
	UID    string
	Email  string
	Name   string
	Claims map[string]any
}

func WithAuth(authClient *auth.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
				http.Error(w, "missing Authorization: Bearer <token>", http.StatusUnauthorized)
				return
			}
			idToken := strings.TrimSpace(h[len("Bearer "):])

			tok, err := authClient.VerifyIDToken(r.Context(), idToken)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			au := &AuthUser{
				UID:    tok.UID,
				Claims: tok.Claims,
			}
			if v, ok := tok.Claims["email"].(string); ok {
				au.Email = v
			}
			if v, ok := tok.Claims["name"].(string); ok {
				au.Name = v
			}

			ctx := context.WithValue(r.Context(), authUserKey, au)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetAuthUser(ctx context.Context) (*AuthUser, bool) {
	v := ctx.Value(authUserKey)
	if v == nil {
		return nil, false
	}
	au, ok := v.(*AuthUser)
	return au, ok
}

// IsAdmin checks if the user has admin role in their claims
func IsAdmin(claims map[string]any) bool {
	return hasRole(claims, "admin")
}

// IsTrainer checks if the user has trainer or admin role
func IsTrainer(claims map[string]any) bool {
	return hasRole(claims, "trainer") || hasRole(claims, "admin")
}

func hasRole(claims map[string]any, role string) bool {
	if claims == nil {
		return false
	}
	if flag, ok := claims[role].(bool); ok && flag {
		return true
	}
	if v, ok := claims["role"].(string); ok && v == role {
		return true
	}
	// Check roles array
	if roles, ok := claims["roles"].([]interface{}); ok {
		for _, r := range roles {
			if str, ok := r.(string); ok && str == role {
				return true
			}
		}
	}
	// Check roles map
	if roles, ok := claims["roles"].(map[string]interface{}); ok {
		if val, has := roles[role]; has {
			if b, ok := val.(bool); ok && b {
				return true
			}
		}
	}
	return false
}
