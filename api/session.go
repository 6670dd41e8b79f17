package api

import (
	"encoding/hex"
	"fmt"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/tifye/climateclock/scenario"
)

const (
	sessionCookieName = "session"
	sessionIDKey      = "id"
)

// sessionID returns the caller's session ID, minting and persisting one in
// the cookie on first contact. The cookie store has no server-side record;
// the ID is what keys all per-session state.
func sessionID(c echo.Context) (string, error) {
	sess, err := session.Get(sessionCookieName, c)
	if err != nil {
		return "", fmt.Errorf("get session: %s", err)
	}

	if id, ok := sess.Values[sessionIDKey].(string); ok && id != "" {
		return id, nil
	}

	raw := securecookie.GenerateRandomKey(16)
	if raw == nil {
		return "", fmt.Errorf("generate session id: no entropy")
	}
	id := hex.EncodeToString(raw)

	sess.Values[sessionIDKey] = id
	sess.Options.HttpOnly = true
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return "", fmt.Errorf("save session: %s", err)
	}
	return id, nil
}

func currentSession(c echo.Context, deps *ServerDependencies) (*scenario.Session, string, error) {
	id, err := sessionID(c)
	if err != nil {
		return nil, "", err
	}
	return deps.Sessions.Session(id), id, nil
}
