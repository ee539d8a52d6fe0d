package profile_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/accounthub/internal/app/features/profile"
	userstore "github.com/dalemusser/accounthub/internal/app/store/users"
	"github.com/dalemusser/accounthub/internal/app/system/passwords"
	"github.com/dalemusser/accounthub/internal/domain/models"
	"github.com/dalemusser/accounthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestServeMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := profile.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ada Lovelace", "ada@example.com", "Password@123", models.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req = testutil.WithIdentity(req, u)
	rec := httptest.NewRecorder()
	h.ServeMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	testutil.DecodeJSON(t, rec, &resp)
	if resp["fullName"] != "Ada Lovelace" || resp["email"] != "ada@example.com" {
		t.Errorf("unexpected profile body: %v", resp)
	}
	if _, leaked := resp["passwordHash"]; leaked {
		t.Error("password hash leaked in profile response")
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Error("password hash leaked in profile response")
	}
}

func TestServeMe_DeletedUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := profile.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Gone", "gone@example.com", "Password@123", models.RoleUser)
	if _, err := db.Collection("users").DeleteOne(ctx, bson.M{"_id": u.ID}); err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req = testutil.WithIdentity(req, u)
	rec := httptest.NewRecorder()
	h.ServeMe(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestHandleUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := profile.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ada", "ada@example.com", "Password@123", models.RoleUser)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/users/me", map[string]string{
		"fullName": "Ada Lovelace",
		"email":    "countess@example.com",
	})
	req = testutil.WithIdentity(req, u)
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	testutil.DecodeJSON(t, rec, &resp)
	if resp["fullName"] != "Ada Lovelace" || resp["email"] != "countess@example.com" {
		t.Errorf("unexpected updated profile: %v", resp)
	}
}

func TestHandleUpdate_OwnEmailIsNotAConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := profile.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ada", "ada@example.com", "Password@123", models.RoleUser)

	// Unchanged email, new name.
	req := testutil.NewJSONRequest(t, http.MethodPut, "/users/me", map[string]string{
		"fullName": "Ada Lovelace",
		"email":    "ada@example.com",
	})
	req = testutil.WithIdentity(req, u)
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200 (own email must not conflict)", rec.Code)
	}
}

func TestHandleUpdate_EmailTakenByOther(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := profile.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ada", "ada@example.com", "Password@123", models.RoleUser)
	fixtures.CreateUser(ctx, "Grace", "grace@example.com", "Password@123", models.RoleUser)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/users/me", map[string]string{
		"fullName": "Ada",
		"email":    "grace@example.com",
	})
	req = testutil.WithIdentity(req, u)
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Message != "Email already in use" {
		t.Errorf("message: got %q", resp.Message)
	}

	// Record is unchanged after the rejected update.
	got, err := userstore.New(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Email != "ada@example.com" {
		t.Errorf("email mutated by rejected update: %q", got.Email)
	}
}

func TestHandleUpdate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := profile.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ada", "ada@example.com", "Password@123", models.RoleUser)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"missing full name", map[string]string{"email": "ada@example.com"}},
		{"missing email", map[string]string{"fullName": "Ada"}},
		{"bad email", map[string]string{"fullName": "Ada", "email": "nope"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPut, "/users/me", tc.body)
			req = testutil.WithIdentity(req, u)
			rec := httptest.NewRecorder()
			h.HandleUpdate(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleChangePassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := profile.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ada", "ada@example.com", "OldPassword1", models.RoleUser)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/users/me/password", map[string]string{
		"currentPassword": "OldPassword1",
		"newPassword":     "NewPassword2",
	})
	req = testutil.WithIdentity(req, u)
	rec := httptest.NewRecorder()
	h.HandleChangePassword(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Message != "Password updated successfully" {
		t.Errorf("message: got %q", resp.Message)
	}

	got, err := userstore.New(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !passwords.Verify("NewPassword2", got.PasswordHash) {
		t.Error("new password does not verify against stored hash")
	}
	if passwords.Verify("OldPassword1", got.PasswordHash) {
		t.Error("old password still verifies after change")
	}
}

func TestHandleChangePassword_WrongCurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := profile.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ada", "ada@example.com", "OldPassword1", models.RoleUser)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/users/me/password", map[string]string{
		"currentPassword": "NotMyPassword",
		"newPassword":     "NewPassword2",
	})
	req = testutil.WithIdentity(req, u)
	rec := httptest.NewRecorder()
	h.HandleChangePassword(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Message != "Current password is incorrect" {
		t.Errorf("message: got %q", resp.Message)
	}

	// Hash unchanged on failure.
	got, err := userstore.New(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !passwords.Verify("OldPassword1", got.PasswordHash) {
		t.Error("password hash changed despite failed verification")
	}
}

func TestHandleChangePassword_SameValueAccepted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := profile.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ada", "ada@example.com", "SamePassword1", models.RoleUser)

	// No rule forbids re-using the current password.
	req := testutil.NewJSONRequest(t, http.MethodPut, "/users/me/password", map[string]string{
		"currentPassword": "SamePassword1",
		"newPassword":     "SamePassword1",
	})
	req = testutil.WithIdentity(req, u)
	rec := httptest.NewRecorder()
	h.HandleChangePassword(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}
