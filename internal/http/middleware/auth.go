package middleware

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"delivery-coordinator/internal/auth"
	"delivery-coordinator/internal/domain"
	"delivery-coordinator/internal/logx"
)

type tokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Authenticator verifies bearer tokens and checks roles.
type Authenticator struct {
	tokens  tokenParser
	enforce bool
	logger  logx.Logger
}

// NewAuthenticator creates an Authenticator. With enforce off, Require
// still attaches claims from a valid token but never rejects.
func NewAuthenticator(tokens tokenParser, enforce bool, logger logx.Logger) *Authenticator {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Authenticator{tokens: tokens, enforce: enforce, logger: logger}
}

// Require allows callers holding one of roles.
func (a *Authenticator) Require(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if a.tokens == nil && !a.enforce {
				next.ServeHTTP(w, r)
				return
			}
			raw, ok := bearer(r)
			if !ok {
				if !a.enforce {
					next.ServeHTTP(w, r)
					return
				}
				deny(w, http.StatusUnauthorized, "missing token")
				return
			}

			claims, err := a.tokens.Parse(raw)
			if err != nil {
				if !a.enforce {
					next.ServeHTTP(w, r)
					return
				}
				a.logger.Debug("token rejected", logx.String("path", r.URL.Path), logx.Err(err))
				deny(w, http.StatusUnauthorized, "invalid token")
				return
			}

			if a.enforce && len(roles) > 0 && !slices.Contains(roles, claims.Role) {
				a.logger.Warn("role not allowed",
					logx.Int64("user_id", claims.UserID),
					logx.String("role", string(claims.Role)),
					logx.String("path", r.URL.Path),
				)
				deny(w, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{false, msg})
}
