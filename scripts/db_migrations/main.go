package main

import (
	"context"

	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/transaction-server/internal/config"
	"github.com/carson-networks/transaction-server/internal/storage"
)

func main() {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	logrus.WithFields(logrus.Fields{
		"host":     env.DBHost,
		"port":     env.DBPort,
		"database": env.DBName,
	}).Info("Running migrations")

	preMigrationVersion, postMigrationVersion, err := storage.RunMigrations(context.Background(), env.MySQLDSN())
	if err != nil {
		logrus.WithError(err).Fatal("storage.RunMigrations")
		return
	}

	logrus.WithFields(logrus.Fields{
		"preMigrationVersion":  preMigrationVersion,
		"postMigrationVersion": postMigrationVersion,
	}).Info("Migration status")
}
