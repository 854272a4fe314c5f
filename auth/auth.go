// Package auth implements HMAC-signed cookie sessions for staff users and the
// request middleware that resolves the session into a verified user id + role.
// The role placed in the context is always looked up from the datastore via
// the configured resolver — never taken from client-supplied request metadata.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type ctxKey string

const (
	sessionCookieName = "gym_session"
	userIDCtxKey      = ctxKey("userID")
	roleCtxKey        = ctxKey("userRole")
)

// UserResolver validates that a session's user still exists and returns its
// current role. Set during app bootstrap via SetUserResolver.
type UserResolver func(ctx context.Context, uid uint) (role string, ok bool)

var resolver UserResolver

// SetUserResolver configures the global resolver used by Middleware and RequireAuth.
func SetUserResolver(r UserResolver) { resolver = r }

// Secret returns SESSION_SECRET or a default dev value.
func Secret() string {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

func sign(uidStr string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(uidStr))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets a signed cookie with the user id.
func CreateSession(w http.ResponseWriter, userID uint) {
	uidStr := strconv.FormatUint(uint64(userID), 10)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    uidStr + "." + sign(uidStr),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(14 * 24 * time.Hour),
	})
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie signature and returns the user id.
func ParseSession(r *http.Request) (uint, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return 0, false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return 0, false
	}
	uidStr, sig := parts[0], parts[1]
	if !hmac.Equal([]byte(sig), []byte(sign(uidStr))) {
		return 0, false
	}
	id64, err := strconv.ParseUint(uidStr, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id64), true
}

// WithUser stores the verified user id and role in the context.
func WithUser(ctx context.Context, userID uint, role string) context.Context {
	ctx = context.WithValue(ctx, userIDCtxKey, userID)
	return context.WithValue(ctx, roleCtxKey, role)
}

// UserIDFromContext extracts the verified user id.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDCtxKey).(uint)
	return id, ok
}

// RoleFromContext extracts the verified actor role ("" when anonymous).
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleCtxKey).(string)
	return role
}

// Middleware attaches the verified user id and role to the request context
// when a valid session cookie is present. Sessions whose user no longer
// exists are cleared and treated as anonymous.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid, ok := ParseSession(r); ok {
			role := ""
			valid := true
			if resolver != nil {
				role, valid = resolver(r.Context(), uid)
			}
			if valid {
				r = r.WithContext(WithUser(r.Context(), uid, role))
			} else {
				ClearSession(w)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests without a verified session (JSON API, no redirects).
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
