package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/accounthub/internal/domain/models"
	"github.com/dalemusser/accounthub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// buildTestHandler assembles the full router against a throwaway
// database, exactly as WAFFLE would at startup.
func buildTestHandler(t *testing.T) (http.Handler, *testutil.Fixtures) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	appCfg := AppConfig{JWTSecret: "test-secret"}
	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db}

	h, err := BuildHandler(&config.CoreConfig{}, appCfg, deps, zap.NewNop())
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}
	return h, testutil.NewFixtures(t, db)
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_SignupLoginProfileFlow(t *testing.T) {
	h, _ := buildTestHandler(t)

	rec := do(t, h, testutil.NewJSONRequest(t, http.MethodPost, "/auth/signup", map[string]string{
		"fullName": "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "Password@123",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: got %d (body %s)", rec.Code, rec.Body.String())
	}

	rec = do(t, h, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "Password@123",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("login: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	testutil.DecodeJSON(t, rec, &login)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = do(t, h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var me map[string]any
	testutil.DecodeJSON(t, rec, &me)
	if me["email"] != "ada@example.com" {
		t.Errorf("me email: got %v", me["email"])
	}
	if me["lastLogin"] == nil {
		t.Error("expected lastLogin set after login")
	}
}

func TestRouter_TokenGuard(t *testing.T) {
	h, _ := buildTestHandler(t)

	cases := []struct {
		name  string
		setup func(*http.Request)
	}{
		{"no header", func(r *http.Request) {}},
		{"wrong scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic abc123") }},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer not.a.token") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			tc.setup(req)
			if rec := do(t, h, req); rec.Code != http.StatusUnauthorized {
				t.Errorf("got %d, want 401", rec.Code)
			}
		})
	}
}

func TestRouter_AdminGuard(t *testing.T) {
	h, fixtures := buildTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Plain", "plain@example.com", "Password@123", models.RoleUser)
	fixtures.CreateAdmin(ctx, "Root", "root@example.com", "Password@123")

	login := func(email string) string {
		t.Helper()
		rec := do(t, h, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    email,
			"password": "Password@123",
		}))
		if rec.Code != http.StatusOK {
			t.Fatalf("login %s: got %d", email, rec.Code)
		}
		var resp struct {
			Token string `json:"token"`
		}
		testutil.DecodeJSON(t, rec, &resp)
		return resp.Token
	}

	userToken := login("plain@example.com")
	adminToken := login("root@example.com")

	// A valid non-admin token is forbidden, not unauthorized.
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	if rec := do(t, h, req); rec.Code != http.StatusForbidden {
		t.Errorf("user listing as non-admin: got %d, want 403", rec.Code)
	}

	// No token at all on an admin route is unauthorized.
	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	if rec := do(t, h, req); rec.Code != http.StatusUnauthorized {
		t.Errorf("user listing without token: got %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := do(t, h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("user listing as admin: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var users []map[string]any
	testutil.DecodeJSON(t, rec, &users)
	if len(users) != 2 {
		t.Errorf("listing length: got %d, want 2", len(users))
	}
}

func TestRouter_StatusToggle(t *testing.T) {
	h, fixtures := buildTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateAdmin(ctx, "Root", "root@example.com", "Password@123")
	target := fixtures.CreateUser(ctx, "Ada", "ada@example.com", "Password@123", models.RoleUser)

	rec := do(t, h, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "root@example.com",
		"password": "Password@123",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin login: got %d", rec.Code)
	}
	var login struct {
		Token string `json:"token"`
	}
	testutil.DecodeJSON(t, rec, &login)

	req := httptest.NewRequest(http.MethodPatch, "/users/"+target.ID.Hex()+"/status", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = do(t, h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status string `json:"status"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Status != models.StatusInactive {
		t.Errorf("toggled status: got %q, want inactive", resp.Status)
	}
}
