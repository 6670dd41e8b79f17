package api

import (
	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
)

func registerRoutes(e *echo.Echo, logger *log.Logger, config *viper.Viper, deps *ServerDependencies) {
	e.GET("/state", handleGetState(deps))
	e.PUT("/parameters", handlePutParameters(logger, config, deps))
	e.POST("/mode", handlePostMode(logger, config, deps))
	e.POST("/presets/:name", handlePostPreset(logger, config, deps))

	e.POST("/challenge", handlePostChallenge(logger, config, deps))
	e.POST("/challenge/reset", handlePostChallengeReset(deps))

	e.POST("/snapshots/:slot", handlePostSnapshot(deps))
	e.DELETE("/snapshots", handleDeleteSnapshots(deps))
	e.POST("/compare", handlePostCompare(deps))
	e.GET("/compare", handleGetCompare(deps))

	e.POST("/reset", handlePostReset(deps))

	e.GET("/history", handleGetHistory(logger, deps))
	e.GET("/feed", handleGetFeed(logger, deps))

	e.GET("/auth/token", handleGetToken(logger, config))
	e.POST("/auth/verify", handlePostVerifyToken(logger, config))

	admin := e.Group("/admin", requireAuthMiddleware(logger, config))
	admin.GET("/sessions", handleGetSessions(deps))
	admin.DELETE("/sessions", handleDeleteSessions(logger, deps))
}
