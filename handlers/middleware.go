package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/collections"
	"orcamentos/services"
	"orcamentos/templates"
)

type contextKey string

const SessionKey contextKey = "session"
const UserBadgeKey contextKey = "userBadge"

// AuthCookieName holds a users auth token for browser requests. API
// clients send the same token in the Authorization header instead.
const AuthCookieName = "pb_auth"

// GetSession extracts the signed-in user's session from the request context.
func GetSession(r *http.Request) (services.Session, bool) {
	if val, ok := r.Context().Value(SessionKey).(services.Session); ok {
		return val, true
	}
	return services.Session{}, false
}

// GetUserBadge extracts the header badge data from the request context.
func GetUserBadge(r *http.Request) templates.UserBadge {
	if val, ok := r.Context().Value(UserBadgeKey).(templates.UserBadge); ok {
		return val
	}
	return templates.UserBadge{}
}

// WithSession returns a copy of r carrying s and its badge, the way
// SessionMiddleware stores them.
func WithSession(r *http.Request, s services.Session, email string) *http.Request {
	ctx := context.WithValue(r.Context(), SessionKey, s)
	ctx = context.WithValue(ctx, UserBadgeKey, templates.UserBadge{Email: email, Privileged: s.Privileged()})
	return r.WithContext(ctx)
}

// SessionFromRecord reads the pv tier and commission of a users record.
func SessionFromRecord(user *core.Record) services.Session {
	return services.Session{
		UserID:     user.Id,
		Tier:       user.GetInt("pv"),
		Commission: user.GetFloat("commission"),
	}
}

// SessionMiddleware resolves the signed-in user, from PocketBase's own
// Authorization header handling or from the auth cookie, and stores the
// session in the request context. Requests without a user pass through;
// handlers decide whether a session is required.
func SessionMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := e.Auth

		if user == nil {
			cookie, err := e.Request.Cookie(AuthCookieName)
			if err == nil && cookie.Value != "" {
				rec, err := app.FindAuthRecordByToken(cookie.Value, core.TokenTypeAuth)
				if err == nil {
					user = rec
				} else {
					log.Printf("middleware: invalid auth cookie, clearing it: %v", err)
					clearAuthCookie(e)
				}
			}
		}

		if user != nil && user.Collection().Name == collections.UsersCollection {
			e.Request = WithSession(e.Request, SessionFromRecord(user), user.Email())
		}

		return e.Next()
	}
}

// sessionUserExists reports whether the session still points at a users
// record. Budgets reference their author, so saves need a live user.
func sessionUserExists(app core.App, s services.Session) bool {
	if s.UserID == "" {
		return false
	}
	_, err := app.FindRecordById(collections.UsersCollection, s.UserID)
	return err == nil
}

func clearAuthCookie(e *core.RequestEvent) {
	http.SetCookie(e.Response, &http.Cookie{
		Name:   AuthCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

// HandleLogout clears the auth cookie and sends the browser back to the list.
func HandleLogout() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clearAuthCookie(e)
		return e.Redirect(http.StatusFound, "/budgets")
	}
}
