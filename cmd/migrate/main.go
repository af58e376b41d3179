package main

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"
	"karuta-server/internal/config"
	"karuta-server/pkg/db"
)

func main() {
	if driver := config.Instance().Store.Driver; driver != config.StoreDriverPostgres {
		logrus.WithField("driver", driver).Info("store driver does not use migrations")
		return
	}

	waitForDB()
	db.Migrate()
}

func waitForDB() {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			dbh := func() *sql.DB {
				defer func() { _ = recover() }()
				return db.Instance()
			}()

			if dbh != nil {
				return
			}

			time.Sleep(time.Millisecond * 500)
		}
	}
}
