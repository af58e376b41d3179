package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"karuta-server/internal/config"
	"karuta-server/internal/mux"
	"karuta-server/pkg/catalog"
	"karuta-server/pkg/db"
	"karuta-server/pkg/session"
	"karuta-server/pkg/teiichi"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()

	// fail fast
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		logrus.WithError(err).WithField("catalogPath", cfg.CatalogPath).Fatal("could not load card catalog")
	}

	defaults := session.DefaultOptions()
	defaults.CardCount = cfg.Game.DefaultCardCount
	defaults.Minutes = cfg.Game.DefaultMinutes

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, cat, newStore(cfg), defaults))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func newStore(cfg config.Config) teiichi.Store {
	if cfg.Store.Driver == config.StoreDriverPostgres {
		// run the db migrations
		db.Migrate()
		return teiichi.NewPGStore(db.Instance())
	}

	logrus.WithField("path", cfg.Store.Path).Info("using file store for custom positions")
	return teiichi.NewFileStore(cfg.Store.Path)
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

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
