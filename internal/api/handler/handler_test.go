package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/pkg/middleware"
)

var testJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// storedProfile resolve a sessão como se o perfil gravado do dono estivesse em UTC
type storedProfile struct{}

func (storedProfile) ResolveSession(_ context.Context, claims *domain.Claims, tz string) (domain.Session, error) {
	owner := &domain.Owner{
		ID:           claims.OwnerID,
		Name:         claims.OwnerName,
		BusinessName: claims.BusinessName,
		Timezone:     "UTC",
	}
	return domain.NewSession(owner, tz, time.UTC), nil
}

var ownerClaims = &domain.Claims{
	OwnerID:      7,
	OwnerName:    "Maria",
	BusinessName: "Studio Maria",
	RoleID:       domain.RoleOwner,
}

// withClaims simula o AuthMiddleware
func withClaims(claims *domain.Claims, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.ContextKeyOwner, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

func serveWithClaims(claims *domain.Claims, routes []router.Route, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	withClaims(claims, router.New(router.WithRoutes(routes...))).ServeHTTP(rec, req)
	return rec
}

func serve(t *testing.T, routes []router.Route, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	return serveWithClaims(ownerClaims, routes, httptest.NewRequest(method, target, reader))
}

type apiErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrorBody {
	t.Helper()

	var body apiErrorBody
	require.NoError(t, testJSON.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
