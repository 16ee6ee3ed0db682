package main

import (
	"context"
	"flag"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/aitrainer/internal/backup"
	"github.com/2beens/aitrainer/internal/config"
	"github.com/2beens/aitrainer/internal/db"
	"github.com/2beens/aitrainer/internal/diets"
	"github.com/2beens/aitrainer/internal/logging"
	"github.com/2beens/aitrainer/internal/workouts"
)

// plans google drive backup cmd

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	credentialsFile := flag.String(
		"gd-creds",
		"./drive-credentials.json",
		"google drive service account credentials json",
	)
	shareWith := flag.String("share-with", "", "email that gets read access to the backup files")
	logsPath := flag.String("logs-path", "", "backup logs file path (empty for stdout)")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogFileName: *logsPath,
		LogToStdout: *logsPath == "",
		LogLevel:    "info",
		Environment: *env,
	})

	log.Println("starting plans backup ...")

	if *credentialsFile == "" {
		log.Fatalln("google drive credentials json not specified")
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	secrets, err := config.LoadSecrets(ctx)
	if err != nil {
		log.Fatalf("load secrets: %s", err)
	}

	credentialsFileBytes, err := os.ReadFile(*credentialsFile)
	if err != nil {
		log.Fatalf("unable to read credentials file: %v", err)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: secrets.PostgresPassword,
		MaxConns:   2,
	})
	if err != nil {
		log.Fatalf("create db pool: %s", err)
	}
	defer dbPool.Close()

	driveStore, err := backup.NewDriveStore(ctx, credentialsFileBytes)
	if err != nil {
		log.Fatalf("failed to create google drive store: %s", err)
	}

	s := backup.NewService(
		driveStore,
		workouts.NewRepo(dbPool),
		diets.NewRepo(dbPool),
		*shareWith,
	)

	name, err := s.DoBackup(ctx, time.Now())
	if err != nil {
		dbPool.Close()
		log.Fatalf("backup failed: %+v", err)
	}
	log.Printf("backup done: %s", name)
}
