package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"dealership/internal/domain"
	"dealership/internal/middleware"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type adminUserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Login verifies admin credentials and issues the session cookie. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Username == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "username and password are required")
		return
	}

	user, err := a.Admins.GetByUsername(r.Context(), req.Username)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}
	if err != nil {
		a.Log.Error().Err(err).Msg("admin lookup failed")
		a.error(w, http.StatusInternalServerError, "internal", "login failed")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}

	token := middleware.SignSession(a.SessionSecret, middleware.SessionClaims{
		Sub:      user.ID,
		Username: user.Username,
		Email:    user.Email,
		Exp:      time.Now().Add(a.SessionTTL).Unix(),
	})
	middleware.SetSessionCookie(w, token, a.SessionTTL, a.SecureCookies)
	a.json(w, http.StatusOK, adminUserDTO{ID: user.ID, Username: user.Username, Email: user.Email})
}

// Logout clears the session cookie.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	a.json(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me returns the authenticated admin, from the session claims set by the
// auth middleware.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.AdminFromContext(r.Context())
	if claims == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "admin session required")
		return
	}
	a.json(w, http.StatusOK, adminUserDTO{ID: claims.Sub, Username: claims.Username, Email: claims.Email})
}

// EnsureDefaultAdmin creates the bootstrap dashboard account from
// configuration when it does not exist yet. A missing configuration is not
// an error; the account can be created later with the adminuser tool.
func EnsureDefaultAdmin(ctx context.Context, admins domain.AdminUserRepository, username, password, email string, log zerolog.Logger) error {
	if username == "" || password == "" {
		log.Debug().Msg("no default admin configured, skipping bootstrap")
		return nil
	}
	if _, err := admins.GetByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = admins.Create(ctx, &domain.AdminUser{Username: username, Password: string(hash), Email: email})
	if errors.Is(err, domain.ErrDuplicateUsername) {
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("default admin account created")
	return nil
}
