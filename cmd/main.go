package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"taskmate/internal/config"
	"taskmate/internal/handlers"
	"taskmate/internal/logger"
	"taskmate/internal/password"
	"taskmate/internal/repository"
	"taskmate/internal/repository/db"
	"taskmate/internal/server"
	"taskmate/internal/service"
	"taskmate/internal/session"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	// load configs/config.yml, .env.local and the environment
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel, false).Fatalw("error loading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel, cfg.Production())
	defer func() { _ = log.Sync() }()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	// open DB and apply migrations
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	conn, err := db.Open(ctx, cfg.DB)
	cancel()
	if err != nil {
		log.Fatalw("failed to open database", "driver", cfg.DB.Driver, "err", err)
	}

	codec, err := session.NewCodec(cfg.Session)
	if err != nil {
		log.Fatalw("failed to build session codec", "codec", cfg.Session.Codec, "err", err)
	}
	cookie := session.DefaultCookieConfig(cfg.Production())
	cookie.MaxAge = cfg.Session.TTL

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, password.NewHasher(cfg.BcryptCost))
	apiHandler := handlers.NewHandler(services, session.NewGate(codec, cookie), log)

	// start HTTP server
	srv := server.New(cfg.Port, apiHandler.InitRoutes(cfg.CORSAllowedOrigins...))
	runHTTPServer(srv, log)
	log.Infow("server started", "addr", srv.Addr(), "env", cfg.Env, "db", cfg.DB.Driver, "session_codec", cfg.Session.Codec)

	// graceful shutdown
	waitForShutdown(srv, conn, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals, drains requests and closes the database.
func waitForShutdown(srv *server.Server, conn *sqlx.DB, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	if err := conn.Close(); err != nil {
		log.Errorw("failed to close database", "err", err)
	}
}
