package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"
	"github.com/tifye/climateclock/assert"
	"github.com/tifye/climateclock/feed"
	"github.com/tifye/climateclock/history"
	"github.com/tifye/climateclock/scenario"
	"golang.org/x/time/rate"
)

type ServerDependencies struct {
	Sessions *scenario.Store
	Feed     *feed.Hub
	Runs     *history.Store
}

func NewServer(logger *log.Logger, config *viper.Viper, deps *ServerDependencies) *http.Server {
	assert.AssertNotNil(deps.Sessions)
	assert.AssertNotNil(deps.Feed)
	assert.AssertNotNil(deps.Runs)

	e := echo.New()

	sessionSecret := config.GetString("SESSION_SECRET")
	assert.AssertNotEmpty(sessionSecret)
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(sessionSecret))))

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(config.GetFloat64("RATE_LIMIT")))))

	server := &http.Server{
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       25 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		ErrorLog:          logger.StandardLog(),
		MaxHeaderBytes:    1024,
	}

	registerRoutes(e, logger, config, deps)

	return server
}
