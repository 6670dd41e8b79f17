package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

func handleGetHistory(logger *log.Logger, deps *ServerDependencies) echo.HandlerFunc {
	type request struct {
		Limit uint `query:"limit"`
	}
	return func(c echo.Context) error {
		var req request
		if err := c.Bind(&req); err != nil {
			return err
		}
		if req.Limit == 0 {
			req.Limit = defaultHistoryLimit
		}
		if req.Limit > maxHistoryLimit {
			req.Limit = maxHistoryLimit
		}

		runs, err := deps.Runs.Recent(c.Request().Context(), req.Limit)
		if err != nil {
			logger.Error("recent runs", "err", err)
			return c.NoContent(http.StatusInternalServerError)
		}

		return c.JSON(http.StatusOK, runs)
	}
}
