package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tifye/climateclock/climate"
	"github.com/tifye/climateclock/scenario"
)

func handleGetState(deps *ServerDependencies) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, _, err := currentSession(c, deps)
		if err != nil {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, sess.State())
	}
}

func handlePostChallengeReset(deps *ServerDependencies) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, _, err := currentSession(c, deps)
		if err != nil {
			return c.NoContent(http.StatusInternalServerError)
		}
		sess.ResetChallenge()
		return c.JSON(http.StatusOK, sess.State())
	}
}

func handlePostSnapshot(deps *ServerDependencies) echo.HandlerFunc {
	type request struct {
		Slot string `param:"slot"`
	}
	type response struct {
		Slot    scenario.Slot      `json:"slot"`
		Params  climate.Parameters `json:"params"`
		Final   climate.Record     `json:"final"`
		SavedAt string             `json:"savedAt"`
	}
	return func(c echo.Context) error {
		var req request
		if err := c.Bind(&req); err != nil {
			return err
		}

		slot := scenario.Slot(req.Slot)
		if !scenario.ValidSlot(slot) {
			return c.String(http.StatusBadRequest, "slot must be A or B")
		}

		sess, _, err := currentSession(c, deps)
		if err != nil {
			return c.NoContent(http.StatusInternalServerError)
		}

		params := sess.Parameters()
		snap := sess.SaveSnapshot(slot, params, climate.Simulate(params))

		return c.JSON(http.StatusOK, response{
			Slot:    slot,
			Params:  snap.Params,
			Final:   snap.Result.Final(),
			SavedAt: snap.SavedAt.Format(time.RFC3339),
		})
	}
}

func handleDeleteSnapshots(deps *ServerDependencies) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, _, err := currentSession(c, deps)
		if err != nil {
			return c.NoContent(http.StatusInternalServerError)
		}
		sess.ClearSnapshots()
		return c.NoContent(http.StatusNoContent)
	}
}

func handlePostCompare(deps *ServerDependencies) echo.HandlerFunc {
	type request struct {
		Enabled bool `json:"enabled"`
	}
	return func(c echo.Context) error {
		var req request
		if err := c.Bind(&req); err != nil {
			return err
		}

		sess, _, err := currentSession(c, deps)
		if err != nil {
			return c.NoContent(http.StatusInternalServerError)
		}
		sess.SetCompare(req.Enabled)
		return c.JSON(http.StatusOK, sess.State())
	}
}

func handleGetCompare(deps *ServerDependencies) echo.HandlerFunc {
	type response struct {
		Deltas scenario.Deltas    `json:"deltas"`
		A      climate.Parameters `json:"a"`
		B      climate.Parameters `json:"b"`
	}
	return func(c echo.Context) error {
		sess, _, err := currentSession(c, deps)
		if err != nil {
			return c.NoContent(http.StatusInternalServerError)
		}

		deltas, err := sess.Compare()
		if errors.Is(err, scenario.ErrIncompleteComparison) {
			return c.JSON(http.StatusConflict, map[string]string{"status": "incomplete"})
		}
		if err != nil {
			return c.NoContent(http.StatusInternalServerError)
		}

		a, _ := sess.Snapshot(scenario.SlotA)
		b, _ := sess.Snapshot(scenario.SlotB)
		return c.JSON(http.StatusOK, response{
			Deltas: deltas,
			A:      a.Params,
			B:      b.Params,
		})
	}
}

func handlePostReset(deps *ServerDependencies) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, _, err := currentSession(c, deps)
		if err != nil {
			return c.NoContent(http.StatusInternalServerError)
		}
		sess.Reset()
		return c.JSON(http.StatusOK, sess.State())
	}
}
