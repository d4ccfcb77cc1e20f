package target

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/partner-portal/pkg/rbac"
)

type fakeCompanyLister struct{}

func (f *fakeCompanyLister) ListCompanyIDs(ctx context.Context) ([]uuid.UUID, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	service := NewTargetService(NewInMemoryTargetRepository())
	handler := NewHandler(service, rbac.NewChecker(&fakeCompanyLister{}))
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func getTargetsAs(t *testing.T, router chi.Router, user *rbac.AuthUser) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/targets/", nil)
	if user != nil {
		req = req.WithContext(rbac.WithUser(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTargetRoutesSectionGate(t *testing.T) {
	router := newTestRouter(t)

	t.Run("unauthenticated", func(t *testing.T) {
		rec := getTargetsAs(t, router, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("team member denied", func(t *testing.T) {
		companyID := uuid.New()
		member := &rbac.AuthUser{
			ID:        uuid.New(),
			Role:      rbac.RolePartnerTeamMember,
			CompanyID: &companyID,
		}
		rec := getTargetsAs(t, router, member)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown role denied", func(t *testing.T) {
		rec := getTargetsAs(t, router, &rbac.AuthUser{ID: uuid.New()})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("allowed roles", func(t *testing.T) {
		companyID := uuid.New()
		for _, user := range []*rbac.AuthUser{
			{ID: uuid.New(), Role: rbac.RolePortalAdmin},
			{ID: uuid.New(), Role: rbac.RolePartnerAccountManager},
			{ID: uuid.New(), Role: rbac.RolePartnerSpocAdmin, CompanyID: &companyID},
		} {
			rec := getTargetsAs(t, router, user)
			require.Equal(t, http.StatusOK, rec.Code, "role %s denied", user.Role)
		}
	})
}
