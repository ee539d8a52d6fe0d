// internal/app/features/adminusers/handler.go
package adminusers

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/accounthub/internal/app/store/users"
	"github.com/dalemusser/accounthub/internal/app/system/apperr"
	"github.com/dalemusser/accounthub/internal/app/system/authz"
	"github.com/dalemusser/accounthub/internal/app/system/httpjson"
	"github.com/dalemusser/accounthub/internal/app/system/paging"
	"github.com/dalemusser/accounthub/internal/app/system/timeouts"
	"github.com/dalemusser/accounthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the admin-only account views: the paginated user
// directory and the activate/deactivate toggle.
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

type statusResponse struct {
	Status string `json:"status"`
}

// ServeList handles GET /users?page=N.
//
// Pages are 1-based and fixed at ten records in creation order. A
// page past the end is an empty array, not an error.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	page := paging.ParsePage(r)
	skip, limit := paging.Window(page)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx, skip, limit)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	httpjson.Write(w, http.StatusOK, users)
}

// HandleStatusToggle handles PATCH /users/{id}/status.
//
// Flips active to inactive and anything else to active, then answers
// with the stored value. The role is re-checked here even though the
// route carries the role guard; the toggle must never run for a
// non-admin caller.
func (h *Handler) HandleStatusToggle(w http.ResponseWriter, r *http.Request) {
	if !authz.IsAdmin(r) {
		httpjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.NotFoundf("User not found"))
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

	next := models.ToggledStatus(user.Status)
	if err := h.Users.SetStatus(ctx, id, next); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.WriteError(w, h.Log, apperr.NotFoundf("User not found"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("user status toggled",
		zap.String("user_id", id.Hex()),
		zap.String("status", next))
	httpjson.Write(w, http.StatusOK, statusResponse{Status: next})
}
