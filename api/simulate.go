package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
	"github.com/tifye/climateclock/climate"
	"github.com/tifye/climateclock/feed"
	"github.com/tifye/climateclock/history"
	"github.com/tifye/climateclock/scenario"
)

type simulationResponse struct {
	Mode       scenario.Mode            `json:"mode"`
	Parameters climate.Parameters       `json:"parameters"`
	Records    climate.Result           `json:"records"`
	Final      climate.Record           `json:"final"`
	Challenge  scenario.ChallengeStatus `json:"challenge"`
	JustWon    bool                     `json:"justWon"`
}

// runSimulation recomputes the session's result, evaluates the challenge,
// records the run and publishes feed events. Every command that changes
// what the dashboard shows funnels through here.
func runSimulation(
	c echo.Context,
	logger *log.Logger,
	config *viper.Viper,
	deps *ServerDependencies,
	sess *scenario.Session,
	sid string,
) simulationResponse {
	params := sess.Parameters()
	result := climate.Simulate(params)
	status, justWon := sess.EvaluateChallenge(result)

	if err := deps.Runs.Insert(c.Request().Context(), history.NewRun(sid, params, result)); err != nil {
		logger.Error("record run", "session", sid, "err", err)
	}

	final := result.Final()
	deps.Feed.Publish(sid, feed.Event{Type: feed.EventResult, Payload: final})
	if justWon {
		deps.Feed.Publish(sid, feed.Event{Type: feed.EventWin, Payload: status})

		if webhookURL := config.GetString("WIN_WEBHOOK_URL"); webhookURL != "" {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := notifyWin(ctx, webhookURL, status.Difficulty); err != nil {
					logger.Error("win webhook", "err", err)
				}
			}()
		}
	}

	return simulationResponse{
		Mode:       sess.Mode(),
		Parameters: params,
		Records:    result,
		Final:      final,
		Challenge:  status,
		JustWon:    justWon,
	}
}

func handlePutParameters(logger *log.Logger, config *viper.Viper, deps *ServerDependencies) echo.HandlerFunc {
	type request struct {
		HorizonYears      int `json:"horizonYears"`
		CO2PPM            int `json:"co2Ppm"`
		RainfallChangePct int `json:"rainfallChangePct"`
		GreenInfraPct     int `json:"greenInfraPct"`
		UrbanizationPct   int `json:"urbanizationPct"`
	}
	return func(c echo.Context) error {
		var req request
		if err := c.Bind(&req); err != nil {
			return err
		}

		sess, sid, err := currentSession(c, deps)
		if err != nil {
			logger.Error("resolve session", "err", err)
			return c.NoContent(http.StatusInternalServerError)
		}

		sess.SetParameters(climate.Clamp(climate.Parameters{
			HorizonYears:      req.HorizonYears,
			CO2PPM:            req.CO2PPM,
			RainfallChangePct: req.RainfallChangePct,
			GreenInfraPct:     req.GreenInfraPct,
			UrbanizationPct:   req.UrbanizationPct,
		}))

		return c.JSON(http.StatusOK, runSimulation(c, logger, config, deps, sess, sid))
	}
}

func handlePostMode(logger *log.Logger, config *viper.Viper, deps *ServerDependencies) echo.HandlerFunc {
	type request struct {
		Mode scenario.Mode `json:"mode"`
	}
	return func(c echo.Context) error {
		var req request
		if err := c.Bind(&req); err != nil {
			return err
		}
		if !scenario.ValidMode(req.Mode) {
			return c.String(http.StatusBadRequest, "unknown mode")
		}

		sess, sid, err := currentSession(c, deps)
		if err != nil {
			logger.Error("resolve session", "err", err)
			return c.NoContent(http.StatusInternalServerError)
		}

		sess.SetMode(req.Mode)
		return c.JSON(http.StatusOK, runSimulation(c, logger, config, deps, sess, sid))
	}
}

func handlePostPreset(logger *log.Logger, config *viper.Viper, deps *ServerDependencies) echo.HandlerFunc {
	type request struct {
		Name string `param:"name"`
	}
	return func(c echo.Context) error {
		var req request
		if err := c.Bind(&req); err != nil {
			return err
		}

		sess, sid, err := currentSession(c, deps)
		if err != nil {
			logger.Error("resolve session", "err", err)
			return c.NoContent(http.StatusInternalServerError)
		}

		if _, ok := sess.ApplyPreset(climate.Preset(req.Name)); !ok {
			return c.String(http.StatusNotFound, "unknown preset")
		}

		return c.JSON(http.StatusOK, runSimulation(c, logger, config, deps, sess, sid))
	}
}

func handlePostChallenge(logger *log.Logger, config *viper.Viper, deps *ServerDependencies) echo.HandlerFunc {
	type request struct {
		Enabled    bool                `json:"enabled"`
		Difficulty scenario.Difficulty `json:"difficulty"`
	}
	return func(c echo.Context) error {
		var req request
		if err := c.Bind(&req); err != nil {
			return err
		}
		if !scenario.ValidDifficulty(req.Difficulty) {
			return c.String(http.StatusBadRequest, "unknown difficulty")
		}

		sess, sid, err := currentSession(c, deps)
		if err != nil {
			logger.Error("resolve session", "err", err)
			return c.NoContent(http.StatusInternalServerError)
		}

		sess.SetChallenge(req.Enabled, req.Difficulty)
		return c.JSON(http.StatusOK, runSimulation(c, logger, config, deps, sess, sid))
	}
}
