package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lexora.app/internal/auth"
	"lexora.app/internal/backend"
	"lexora.app/internal/identity"
	"lexora.app/internal/rbac"
)

// fakeCore stands in for the core backend: a user directory plus a handful
// of fixed resources across two tenants.
func fakeCore(t *testing.T) *httptest.Server {
	t.Helper()

	users := map[string]string{
		"u-lawyer": `{"id":"u-lawyer","email":"lawyer@a.example","name":"Lawyer A","role":"LAWYER","tenant_id":"tenant-a"}`,
		"u-audit":  `{"id":"u-audit","email":"audit@a.example","name":"Auditor A","role":"READ_ONLY_AUDITOR","tenant_id":"tenant-a"}`,
		"u-root":   `{"id":"u-root","email":"root@lexora.example","name":"Root","role":"SUPER_ADMIN"}`,
	}
	documents := map[string]string{
		"doc-own":   `{"id":"doc-own","tenant_id":"tenant-a","owner_id":"u-lawyer","title":"Own brief"}`,
		"doc-other": `{"id":"doc-other","tenant_id":"tenant-a","owner_id":"u-other","title":"Colleague brief"}`,
		"doc-b":     `{"id":"doc-b","tenant_id":"tenant-b","owner_id":"u-b","title":"Foreign brief"}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/internal/v1/users/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/internal/v1/users/")
		body, ok := users[id]
		if !ok {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	})
	mux.HandleFunc("/internal/v1/documents", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[`+documents["doc-own"]+`],"next_cursor":""}`)
	})
	mux.HandleFunc("/internal/v1/documents/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/internal/v1/documents/")
		body, ok := documents[id]
		if !ok {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()
	t.Setenv("LEXORA_AUTH_SECRET", "api-test-secret")
	auth.ResetSecretForTests()
	t.Cleanup(auth.ResetSecretForTests)

	core := fakeCore(t)
	client, err := backend.New(core.URL)
	if err != nil {
		t.Fatalf("backend client: %v", err)
	}
	resolver, err := identity.NewResolver(client)
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	api, err := New(Config{
		Version:  "test",
		Resolver: resolver,
		Backend:  client,
	})
	if err != nil {
		t.Fatalf("api: %v", err)
	}
	return api.Handler()
}

func bearerFor(t *testing.T, userID string, role rbac.Role, tenantID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, role, tenantID, time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

func TestHealthzIsPublic(t *testing.T) {
	handler := newTestAPI(t)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	handler := newTestAPI(t)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/me", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if rr.Header().Get("WWW-Authenticate") == "" {
		t.Fatal("expected WWW-Authenticate header")
	}
}

func TestProtectedRouteWithGarbageToken(t *testing.T) {
	handler := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestMeReturnsResolvedUser(t *testing.T) {
	handler := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", bearerFor(t, "u-lawyer", rbac.RoleLawyer, "tenant-a"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var body struct {
		TenantID    string            `json:"tenant_id"`
		Permissions []rbac.Permission `json:"permissions"`
		User        struct {
			Role rbac.Role `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.TenantID != "tenant-a" {
		t.Fatalf("unexpected tenant: %q", body.TenantID)
	}
	if body.User.Role != rbac.RoleLawyer {
		t.Fatalf("unexpected role: %q", body.User.Role)
	}
	if len(body.Permissions) == 0 {
		t.Fatal("expected permission list")
	}
}

func TestFeaturesListsEveryFeature(t *testing.T) {
	handler := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/features", nil)
	req.Header.Set("Authorization", bearerFor(t, "u-lawyer", rbac.RoleLawyer, "tenant-a"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Features []struct {
			Feature string `json:"feature"`
			Access  string `json:"access"`
		} `json:"features"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Features) != len(rbac.Features) {
		t.Fatalf("expected %d features, got %d", len(rbac.Features), len(body.Features))
	}
}

func TestDocumentDeleteDeniedForNonOwner(t *testing.T) {
	handler := newTestAPI(t)

	// Lawyer is neither owner nor admin; deleting a colleague's document
	// in the same tenant is forbidden.
	req := httptest.NewRequest(http.MethodDelete, "/v1/documents/doc-other", nil)
	req.Header.Set("Authorization", bearerFor(t, "u-lawyer", rbac.RoleLawyer, "tenant-a"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestDocumentDeleteAllowedForOwner(t *testing.T) {
	handler := newTestAPI(t)

	req := httptest.NewRequest(http.MethodDelete, "/v1/documents/doc-own", nil)
	req.Header.Set("Authorization", bearerFor(t, "u-lawyer", rbac.RoleLawyer, "tenant-a"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestCrossTenantDocumentIsForbiddenNotHidden(t *testing.T) {
	handler := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/doc-b", nil)
	req.Header.Set("Authorization", bearerFor(t, "u-lawyer", rbac.RoleLawyer, "tenant-a"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for cross-tenant document, got %d", rr.Code)
	}
}

func TestSuperAdminCrossesTenants(t *testing.T) {
	handler := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/doc-b", nil)
	req.Header.Set("Authorization", bearerFor(t, "u-root", rbac.RoleSuperAdmin, ""))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for super admin, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestListDocumentsRequiresPermission(t *testing.T) {
	handler := newTestAPI(t)

	// Read-only auditor holds document.read: listing succeeds.
	req := httptest.NewRequest(http.MethodGet, "/v1/documents", nil)
	req.Header.Set("Authorization", bearerFor(t, "u-audit", rbac.RoleReadOnlyAuditor, "tenant-a"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	// But document.delete is outside the auditor grant set.
	req = httptest.NewRequest(http.MethodDelete, "/v1/documents/doc-own", nil)
	req.Header.Set("Authorization", bearerFor(t, "u-audit", rbac.RoleReadOnlyAuditor, "tenant-a"))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	handler := newTestAPI(t)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
