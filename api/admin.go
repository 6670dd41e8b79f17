package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

func handleGetSessions(deps *ServerDependencies) echo.HandlerFunc {
	type response struct {
		Count int      `json:"count"`
		IDs   []string `json:"ids"`
	}
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, response{
			Count: deps.Sessions.Count(),
			IDs:   deps.Sessions.SessionIDs(),
		})
	}
}

func handleDeleteSessions(logger *log.Logger, deps *ServerDependencies) echo.HandlerFunc {
	type response struct {
		Purged int `json:"purged"`
	}
	return func(c echo.Context) error {
		n := deps.Sessions.Purge()
		logger.Info("purged sessions", "count", n)
		return c.JSON(http.StatusOK, response{Purged: n})
	}
}
