package main

import (
	"errors"
	"os"
	"strconv"

	"medconnect/config"
	"medconnect/internal/infrastructure/database"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"
)

// Usage: migrate [up|down|force <version>]
func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	m, err := database.NewMigrator(config.LoadDBConfig())
	if err != nil {
		logrus.Fatalf("Failed to create migrator: %v", err)
	}
	defer func() { _, _ = m.Close() }()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "force":
		if len(os.Args) < 3 {
			logrus.Fatal("force requires a version")
		}
		version, convErr := strconv.Atoi(os.Args[2])
		if convErr != nil {
			logrus.Fatalf("Invalid version: %v", convErr)
		}
		err = m.Force(version)
	default:
		logrus.Fatalf("Unknown command %q", cmd)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logrus.Fatalf("Migration %s failed: %v", cmd, err)
	}

	version, dirty, _ := m.Version()
	logrus.Infof("Migration %s complete, version %d (dirty=%t)", cmd, version, dirty)
}
