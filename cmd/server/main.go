package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"videopoker-server/internal/config"
	"videopoker-server/internal/jwt"
	"videopoker-server/internal/mux"
	"videopoker-server/pkg/videopoker"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address (overrides the config)")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()

	// fail fast
	jwt.LoadKey()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not open store")
	}
	defer closeStore()

	machine := videopoker.New(store, videopoker.WithLogger(logrus.StandardLogger()))

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	listenAddr := cfg.Addr
	if *addr != "" {
		listenAddr = *addr
	}

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, machine, mux.WithRequireToken(cfg.JWT.RequireToken)))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("could not shut down cleanly")
		}
	}()

	logrus.WithFields(logrus.Fields{
		"addr":    srv.Addr,
		"storage": cfg.Storage.Type,
		"version": Version,
	}).Info("listening")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Error("server stopped")
	}
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" || strings.ToLower(config.Instance().Log.Format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
