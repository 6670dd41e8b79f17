package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tifye/climateclock/api"
	"github.com/tifye/climateclock/feed"
	"github.com/tifye/climateclock/history"
	"github.com/tifye/climateclock/scenario"
	"github.com/tifye/climateclock/storage"
)

func main() {
	config := viper.New()
	config.AutomaticEnv()

	err := godotenv.Load()
	if err != nil {
		log.Warn("could not load .env file: %s", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger := log.NewWithOptions(os.Stdout, log.Options{
		Level: log.DebugLevel,
	})

	err = run(ctx, logger, config)
	if err != nil {
		logger.Error(err)
	}
}

func run(ctx context.Context, logger *log.Logger, config *viper.Viper) error {
	config.SetDefault("PORT", 8680)
	port := config.GetInt("PORT")

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("net listen: %s", err)
	}

	deps, cfs, err := initDependencies(logger, config)
	if err != nil {
		return fmt.Errorf("init deps: %s", err)
	}
	defer func() {
		if err := cfs.Cleanup(); err != nil {
			logger.Error("cleanup funcs", "err", err)
		}
	}()

	s := api.NewServer(logger, config, deps)
	go func() {
		logger.Printf("serving on %s", ln.Addr())
		err := s.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = s.Shutdown(closeCtx)
	if err != nil {
		return fmt.Errorf("server shutdown: %s", err)
	}

	return nil
}

func initDependencies(logger *log.Logger, config *viper.Viper) (deps *api.ServerDependencies, cfs CleanupFuncs, err error) {
	defer func() {
		if err == nil {
			return
		}

		if ferr := cfs.Cleanup(); ferr != nil {
			err = errors.Join(err, ferr)
		}
	}()

	config.SetDefault("SESSION_TTL_MINUTES", 45)
	config.SetDefault("RATE_LIMIT", 20)

	db, err := storage.InitDuckDB()
	if err != nil {
		return nil, cfs, fmt.Errorf("init duckdb: %s", err)
	}
	cfs.Defer(func() error {
		if err := db.Close(); err != nil {
			return fmt.Errorf("close duckdb: %s", err)
		}
		return nil
	})

	ttl := time.Duration(config.GetInt("SESSION_TTL_MINUTES")) * time.Minute

	return &api.ServerDependencies{
		Sessions: scenario.NewStore(logger.WithPrefix("sessions"), ttl),
		Feed:     feed.NewHub(logger.WithPrefix("feed")),
		Runs:     history.NewStore(db),
	}, cfs, nil
}
