package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleGetFeed upgrades to a websocket and streams the caller's session
// events (result summaries, win events) until the client disconnects.
func handleGetFeed(logger *log.Logger, deps *ServerDependencies) echo.HandlerFunc {
	return func(c echo.Context) error {
		sid, err := sessionID(c)
		if err != nil {
			logger.Error("resolve session", "err", err)
			return c.NoContent(http.StatusInternalServerError)
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			logger.Error(err)
			return err
		}
		defer conn.Close()

		sub := deps.Feed.Subscribe(sid)
		defer deps.Feed.Unsubscribe(sid, sub)

		logger.Debug("feed subscriber connected", "session", sid)

		done := make(chan struct{})
		go func() {
			defer close(done)
			// the feed is one-way; reads only surface the close
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case ev, ok := <-sub.Events():
				if !ok {
					return c.NoContent(http.StatusOK)
				}
				if err := conn.WriteJSON(ev); err != nil {
					logger.Debug("feed write", "session", sid, "err", err)
					return c.NoContent(http.StatusOK)
				}
			case <-done:
				return c.NoContent(http.StatusOK)
			}
		}
	}
}
