package common

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// SessionName is the cookie name of the dashboard session.
const SessionName = "assetops"

const (
	idKey        = "id"
	flashSuccess = "success"
	flashError   = "error"
)

// EnsureSession loads the session cookie, assigning a fresh ID when the
// browser has none. The caller must Save the session before writing a body.
func EnsureSession(store sessions.Store, r *http.Request) (*sessions.Session, string) {
	// A decode error (e.g. rotated secret) still yields a usable new session.
	sess, _ := store.Get(r, SessionName)
	id, _ := sess.Values[idKey].(string)
	if id == "" {
		id = uuid.NewString()
		sess.Values[idKey] = id
	}
	return sess, id
}

// LookupSessionID returns the session ID without creating one.
func LookupSessionID(store sessions.Store, r *http.Request) (string, bool) {
	sess, err := store.Get(r, SessionName)
	if err != nil {
		return "", false
	}
	id, _ := sess.Values[idKey].(string)
	return id, id != ""
}

// AddSuccess queues a success flash.
func AddSuccess(sess *sessions.Session, text string) {
	sess.AddFlash(text, flashSuccess)
}

// AddError queues an error flash.
func AddError(sess *sessions.Session, text string) {
	sess.AddFlash(text, flashError)
}

// TakeFlashes drains queued flashes, successes first.
func TakeFlashes(sess *sessions.Session) []Flash {
	var out []Flash
	for _, kind := range []string{flashSuccess, flashError} {
		for _, f := range sess.Flashes(kind) {
			if text, ok := f.(string); ok {
				out = append(out, Flash{Kind: kind, Text: text})
			}
		}
	}
	return out
}
