package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/2beens/aitrainer/internal/auth"
	"github.com/2beens/aitrainer/internal/middleware"
)

func claimsFor(email, sessionID string) *auth.Claims {
	return &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: email, ID: sessionID}}
}

func TestAuthMiddlewareHandler_AuthCheck(t *testing.T) {
	testCases := []struct {
		name               string
		path               string
		method             string
		authHeader         string
		setupMocks         func(checker *MocktokenChecker, resolver *MockidentityResolver)
		expectedStatusCode int
		expectIdentity     *auth.Identity
	}{
		{
			name:               "AllowedPathWithoutToken",
			path:               "/login",
			method:             "POST",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "AllowedUploadsPrefix",
			path:               "/uploads/4f1c.jpg",
			method:             "GET",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "Options",
			path:               "/workouts",
			method:             "OPTIONS",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "MissingToken",
			path:               "/workouts",
			method:             "GET",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "NonBearerScheme",
			path:               "/workouts",
			method:             "GET",
			authHeader:         "Basic dXNlcjpwYXNz",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "InvalidToken",
			path:       "/workouts",
			method:     "GET",
			authHeader: "Bearer invalid-token",
			setupMocks: func(checker *MocktokenChecker, resolver *MockidentityResolver) {
				checker.EXPECT().Check(gomock.Any(), "invalid-token").Return(nil, auth.ErrInvalidToken)
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "UserGone",
			path:       "/me",
			method:     "GET",
			authHeader: "Bearer valid-token",
			setupMocks: func(checker *MocktokenChecker, resolver *MockidentityResolver) {
				checker.EXPECT().Check(gomock.Any(), "valid-token").Return(claimsFor("gone@example.com", "s1"), nil)
				resolver.EXPECT().IdentityByEmail(gomock.Any(), "gone@example.com").Return(nil, auth.ErrUnknownIdentity)
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:       "ResolverFails",
			path:       "/me",
			method:     "GET",
			authHeader: "Bearer valid-token",
			setupMocks: func(checker *MocktokenChecker, resolver *MockidentityResolver) {
				checker.EXPECT().Check(gomock.Any(), "valid-token").Return(claimsFor("jane@example.com", "s1"), nil)
				resolver.EXPECT().IdentityByEmail(gomock.Any(), "jane@example.com").Return(nil, errors.New("db down"))
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
		{
			name:       "ValidToken",
			path:       "/workouts",
			method:     "GET",
			authHeader: "bearer valid-token",
			setupMocks: func(checker *MocktokenChecker, resolver *MockidentityResolver) {
				checker.EXPECT().Check(gomock.Any(), "valid-token").Return(claimsFor("jane@example.com", "s1"), nil)
				resolver.EXPECT().IdentityByEmail(gomock.Any(), "jane@example.com").
					Return(&auth.Identity{UserID: 3, Email: "jane@example.com", Role: auth.RoleUser}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectIdentity:     &auth.Identity{UserID: 3, Email: "jane@example.com", Role: auth.RoleUser, SessionID: "s1"},
		},
		{
			name:       "AdminPathAsUser",
			path:       "/admin/users",
			method:     "GET",
			authHeader: "Bearer valid-token",
			setupMocks: func(checker *MocktokenChecker, resolver *MockidentityResolver) {
				checker.EXPECT().Check(gomock.Any(), "valid-token").Return(claimsFor("jane@example.com", "s1"), nil)
				resolver.EXPECT().IdentityByEmail(gomock.Any(), "jane@example.com").
					Return(&auth.Identity{UserID: 3, Email: "jane@example.com", Role: auth.RoleUser}, nil)
			},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:       "AdminPathAsAdmin",
			path:       "/admin/users",
			method:     "GET",
			authHeader: "Bearer admin-token",
			setupMocks: func(checker *MocktokenChecker, resolver *MockidentityResolver) {
				checker.EXPECT().Check(gomock.Any(), "admin-token").Return(claimsFor("boss@example.com", "s2"), nil)
				resolver.EXPECT().IdentityByEmail(gomock.Any(), "boss@example.com").
					Return(&auth.Identity{UserID: 1, Email: "boss@example.com", Role: auth.RoleAdmin}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectIdentity:     &auth.Identity{UserID: 1, Email: "boss@example.com", Role: auth.RoleAdmin, SessionID: "s2"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			checker := NewMocktokenChecker(ctrl)
			resolver := NewMockidentityResolver(ctrl)
			if tc.setupMocks != nil {
				tc.setupMocks(checker, resolver)
			}
			authMiddleware := middleware.NewAuthMiddlewareHandler(checker, resolver)

			req, err := http.NewRequest(tc.method, tc.path, nil)
			require.NoError(t, err)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			var gotIdentity *auth.Identity
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotIdentity, _ = auth.IdentityFromContext(r.Context())
			})

			rr := httptest.NewRecorder()
			authMiddleware.AuthCheck()(handler).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			assert.Equal(t, tc.expectIdentity, gotIdentity)
		})
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/me", nil)
	assert.Empty(t, middleware.BearerToken(req))

	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", middleware.BearerToken(req))

	req.Header.Set("Authorization", "Bearer")
	assert.Empty(t, middleware.BearerToken(req))

	req.Header.Set("Authorization", "Token abc")
	assert.Empty(t, middleware.BearerToken(req))
}
