package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// SessionCookieName is the cookie carrying the signed admin session.
const SessionCookieName = "dealer_admin_session"

// SessionClaims is the payload of an admin session token.
type SessionClaims struct {
	Sub      string `json:"sub"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Exp      int64  `json:"exp"`
}

type adminKey string

const adminClaimsKey adminKey = "admin_claims"

// SignSession produces an HMAC-SHA256 signed session token of the form
// base64(payload).base64(signature).
func SignSession(secret string, claims SessionClaims) string {
	payloadJSON, _ := json.Marshal(claims)
	payloadEnc := base64.RawURLEncoding.EncodeToString(payloadJSON)
	return payloadEnc + "." + hmacSign(secret, payloadEnc)
}

// VerifySession validates the token signature and expiry and returns its claims.
func VerifySession(secret, token string) (*SessionClaims, error) {
	payloadEnc, sig, ok := strings.Cut(token, ".")
	if !ok {
		return nil, errors.New("invalid session token")
	}
	expected := hmacSign(secret, payloadEnc)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return nil, errors.New("invalid session signature")
	}
	payload, err := base64.RawURLEncoding.DecodeString(payloadEnc)
	if err != nil {
		return nil, err
	}
	var claims SessionClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, err
	}
	if claims.Exp <= time.Now().Unix() {
		return nil, errors.New("session expired")
	}
	return &claims, nil
}

func hmacSign(secret, data string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// SetSessionCookie attaches the signed session to the response.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// RequireAdmin guards dashboard routes: requests without a valid admin
// session cookie are rejected with 401.
func RequireAdmin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}
			claims, err := VerifySession(secret, cookie.Value)
			if err != nil {
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), adminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext returns the session claims set by RequireAdmin, or nil.
func AdminFromContext(ctx context.Context) *SessionClaims {
	if claims, ok := ctx.Value(adminClaimsKey).(*SessionClaims); ok {
		return claims
	}
	return nil
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": "admin session required",
	})
}
