// Check-ins Google Drive backup cmd. Runs a single backup by default, keeps
// running on a cron schedule when -schedule is given, and can drop and
// recreate the whole backups folder with -reinit.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/2beens/fitcoach/internal/checkins"
	"github.com/2beens/fitcoach/internal/checkins/backup"
	"github.com/2beens/fitcoach/internal/config"
	"github.com/2beens/fitcoach/internal/db"
	"github.com/2beens/fitcoach/internal/logging"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	credentialsFile := flag.String(
		"gd-creds",
		"./fitcoach-drive-credentials.json",
		"google drive service account credentials json",
	)
	shareWith := flag.String("share-with", "", "email that gets reader permission on backup files (empty: none)")
	logsPath := flag.String("logs-path", "", "logs file path (empty for stdout)")
	reinit := flag.Bool("reinit", false, "drop the backups folder and back up everything again")
	schedule := flag.String("schedule", "", `cron spec for periodic backups, e.g. "0 4 * * *" (empty: run once and exit)`)

	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   *logsPath,
		LogToStdout:   *logsPath == "",
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: false,
		Environment:   cfg.Environment,
		SentryEnabled: false,
	})

	log.Println("starting check-ins backup ...")

	if *credentialsFile == "" {
		log.Fatalln("google drive credentials json not specified")
	}

	credentialsFileBytes, err := os.ReadFile(*credentialsFile)
	if err != nil {
		log.Fatalf("unable to read credentials file: %s", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	// the backup runs outside the main backend, so its metrics live in a
	// local registry and only reach the logs
	metricsManager := metrics.NewManager("fitcoach", "backup", prometheus.NewRegistry())

	s, err := backup.NewGoogleDriveBackupService(
		ctx,
		credentialsFileBytes,
		checkins.NewRepo(dbPool),
		*shareWith,
		metricsManager,
	)
	if err != nil {
		log.Fatalf("failed to create google drive backup service: %s", err)
	}

	if *reinit {
		log.Println("!! attention: will reinitialize all again...")
		if err := s.Reinit(ctx, time.Now()); err != nil {
			log.Fatalf("reinit failed: %s", err)
		}
		log.Println("reinit done")
		return
	}

	if *schedule == "" {
		if err := s.DoBackup(ctx, time.Now()); err != nil {
			log.Fatalf("%+v", err)
		}
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(*schedule, func() {
		if err := s.DoBackup(context.Background(), time.Now()); err != nil {
			log.Errorf("scheduled backup failed: %s", err)
		}
	}); err != nil {
		log.Fatalf("invalid backup schedule %q: %s", *schedule, err)
	}

	c.Start()
	log.Printf("backup scheduler started, schedule: %s", *schedule)

	<-ctx.Done()
	log.Println("stopping backup scheduler ...")
	stopCtx := c.Stop()
	<-stopCtx.Done()
	log.Println("backup scheduler stopped")
}
