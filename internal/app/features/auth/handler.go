// internal/app/features/auth/handler.go
package auth

import (
	"context"
	"net/http"
	"time"

	userstore "github.com/dalemusser/accounthub/internal/app/store/users"
	"github.com/dalemusser/accounthub/internal/app/system/apperr"
	"github.com/dalemusser/accounthub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/accounthub/internal/app/system/httpjson"
	"github.com/dalemusser/accounthub/internal/app/system/inputval"
	"github.com/dalemusser/accounthub/internal/app/system/normalize"
	"github.com/dalemusser/accounthub/internal/app/system/passwords"
	"github.com/dalemusser/accounthub/internal/app/system/timeouts"
	"github.com/dalemusser/accounthub/internal/app/system/token"
	"github.com/dalemusser/accounthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves signup and login. These are the only unguarded
// account operations; both end by issuing a bearer token.
type Handler struct {
	Users  *userstore.Store
	Tokens *token.Service
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, tokens *token.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Tokens: tokens,
		Log:    logger,
	}
}

type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// HandleSignup processes POST /auth/signup.
//
// Validates the three fields, hashes the password, creates the record
// with role=user status=active, and answers 201 with a fresh token.
// A duplicate email is a conflict even when it loses the race to the
// unique index rather than the pre-insert state.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	fullName := normalize.Name(htmlsanitize.Strip(req.FullName))
	email := normalize.Email(req.Email)

	if fullName == "" || email == "" || req.Password == "" {
		httpjson.WriteError(w, h.Log, apperr.Validationf("Full name, email, and password are required"))
		return
	}
	if !inputval.IsValidEmail(email) {
		httpjson.WriteError(w, h.Log, apperr.Validationf("Enter a valid email address"))
		return
	}

	hash, err := passwords.Hash(req.Password)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			httpjson.WriteError(w, h.Log, apperr.Conflictf("Email already in use"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	tok, err := h.Tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("user signed up", zap.String("user_id", user.ID.Hex()))
	httpjson.Write(w, http.StatusCreated, tokenResponse{Token: tok})
}

// HandleLogin processes POST /auth/login.
//
// An unknown email and a wrong password produce byte-identical
// responses so callers cannot enumerate accounts. A successful login
// stamps lastLogin before the token is issued.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	email := normalize.Email(req.Email)
	if email == "" || req.Password == "" {
		httpjson.WriteError(w, h.Log, apperr.ErrInvalidCredentials)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.WriteError(w, h.Log, apperr.ErrInvalidCredentials)
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if !passwords.Verify(req.Password, user.PasswordHash) {
		httpjson.WriteError(w, h.Log, apperr.ErrInvalidCredentials)
		return
	}

	if err := h.Users.RecordLogin(ctx, user.ID, time.Now()); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	tok, err := h.Tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("user logged in", zap.String("user_id", user.ID.Hex()))
	httpjson.Write(w, http.StatusOK, tokenResponse{Token: tok})
}
