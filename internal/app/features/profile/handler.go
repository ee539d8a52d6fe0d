// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/accounthub/internal/app/store/users"
	"github.com/dalemusser/accounthub/internal/app/system/apperr"
	"github.com/dalemusser/accounthub/internal/app/system/auth"
	"github.com/dalemusser/accounthub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/accounthub/internal/app/system/httpjson"
	"github.com/dalemusser/accounthub/internal/app/system/inputval"
	"github.com/dalemusser/accounthub/internal/app/system/normalize"
	"github.com/dalemusser/accounthub/internal/app/system/passwords"
	"github.com/dalemusser/accounthub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the signed-in user's own profile: read, update, and
// password change. Every operation resolves the subject from the
// request identity, never from the request body or URL.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Log:   logger,
	}
}

type updateRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// currentUserID resolves the authenticated subject's object ID. The
// token middleware guarantees an identity is present on guarded
// routes; a malformed subject means the token was minted for a record
// this service never issued, which reads the same as a missing user.
func currentUserID(r *http.Request) (primitive.ObjectID, error) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		return primitive.NilObjectID, apperr.ErrUnauthenticated
	}
	id, err := primitive.ObjectIDFromHex(ident.ID)
	if err != nil {
		return primitive.NilObjectID, apperr.NotFoundf("User not found")
	}
	return id, nil
}

// ServeMe handles GET /users/me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	id, err := currentUserID(r)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.WriteError(w, h.Log, apperr.NotFoundf("User not found"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, user)
}

// HandleUpdate handles PUT /users/me.
//
// Both fields are required on every call; partial updates are not
// supported. The email uniqueness check excludes the caller's own
// record, so re-submitting the current email is not a conflict.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := currentUserID(r)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	fullName := normalize.Name(htmlsanitize.Strip(req.FullName))
	email := normalize.Email(req.Email)

	if fullName == "" || email == "" {
		httpjson.WriteError(w, h.Log, apperr.Validationf("Full name and email are required"))
		return
	}
	if !inputval.IsValidEmail(email) {
		httpjson.WriteError(w, h.Log, apperr.Validationf("Enter a valid email address"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	taken, err := h.Users.EmailExistsForOther(ctx, email, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if taken {
		httpjson.WriteError(w, h.Log, apperr.Conflictf("Email already in use"))
		return
	}

	user, err := h.Users.UpdateProfile(ctx, id, fullName, email)
	if err != nil {
		switch err {
		case mongo.ErrNoDocuments:
			httpjson.WriteError(w, h.Log, apperr.NotFoundf("User not found"))
		case userstore.ErrDuplicateEmail:
			// Lost the race to the unique index after the pre-check.
			httpjson.WriteError(w, h.Log, apperr.Conflictf("Email already in use"))
		default:
			httpjson.WriteError(w, h.Log, err)
		}
		return
	}

	h.Log.Info("profile updated", zap.String("user_id", id.Hex()))
	httpjson.Write(w, http.StatusOK, user)
}

// HandleChangePassword handles PUT /users/me/password.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := currentUserID(r)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	var req changePasswordRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		httpjson.WriteError(w, h.Log, apperr.Validationf("Current and new passwords are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.WriteError(w, h.Log, apperr.NotFoundf("User not found"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if !passwords.Verify(req.CurrentPassword, user.PasswordHash) {
		httpjson.WriteError(w, h.Log, apperr.Validationf("Current password is incorrect"))
		return
	}

	hash, err := passwords.Hash(req.NewPassword)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if err := h.Users.UpdatePassword(ctx, id, hash); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.WriteError(w, h.Log, apperr.NotFoundf("User not found"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("password changed", zap.String("user_id", id.Hex()))
	httpjson.Write(w, http.StatusOK, messageResponse{Message: "Password updated successfully"})
}
