package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/aitrainer/internal/auth"
	"github.com/2beens/aitrainer/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=middleware_mocks_test.go -package=middleware_test

type tokenChecker interface {
	Check(ctx context.Context, token string) (*auth.Claims, error)
}

type identityResolver interface {
	IdentityByEmail(ctx context.Context, email string) (*auth.Identity, error)
}

type AuthMiddlewareHandler struct {
	checker              tokenChecker
	resolver             identityResolver
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
	adminPathsPrefixes   []string
}

func NewAuthMiddlewareHandler(
	checker tokenChecker,
	resolver identityResolver,
) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		checker:  checker,
		resolver: resolver,
		allowedPaths: map[string]bool{
			// misc handler:
			"/":             true,
			"/version":      true,
			"/quote/random": true,

			// users handler:
			"/signup": true,
			"/login":  true,

			// contact handler:
			"/contact": true,

			// calculators:
			"/calc/bmi": true,
			"/calc/bmr": true,
		},
		allowedPathsPrefixes: []string{
			"/uploads/",
		},
		adminPathsPrefixes: []string{
			"/admin/",
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (h *AuthMiddlewareHandler) pathIsAdminOnly(path string) bool {
	for _, prefix := range h.adminPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// BearerToken extracts the token from the "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			token := BearerToken(r)
			if token == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "Not authenticated", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			claims, err := h.checker.Check(ctx, token)
			if err != nil {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s: %s", r.URL.Path, err)
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "Invalid authentication credentials", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-token")
				span.RecordError(err)
				return
			}

			identity, err := h.resolver.IdentityByEmail(ctx, claims.Email())
			if errors.Is(err, auth.ErrUnknownIdentity) {
				http.Error(w, "User not found", http.StatusNotFound)
				span.SetStatus(codes.Error, "user-not-found")
				return
			}
			if err != nil {
				log.Errorf("[auth middleware] resolve identity => %s: %s", r.URL.Path, err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				span.SetStatus(codes.Error, "resolve-identity-err")
				span.RecordError(err)
				return
			}
			identity.SessionID = claims.SessionID()

			if h.pathIsAdminOnly(r.URL.Path) && !identity.IsAdmin() {
				log.Warnf("[auth middleware] user %d tried to reach admin path %s", identity.UserID, r.URL.Path)
				http.Error(w, "Admin access required", http.StatusForbidden)
				span.SetStatus(codes.Error, "not-admin")
				return
			}

			span.SetAttributes(attribute.Int("user.id", identity.UserID))
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.ContextWithIdentity(ctx, identity)))
		})
	}
}
