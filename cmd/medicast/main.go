package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/andresuchdata/medicast/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/medicast/backend-go/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

var errNoDatabase = errors.New("this command needs --db-url or DATABASE_URL")

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Database connection string",
		EnvVars: []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	url := c.String("db-url")
	if url == "" {
		return nil
	}

	db, err := postgres.Open("pgx", url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Store the database connection in the context
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db := dbFrom(c); db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) *postgres.DB {
	db, _ := c.Context.Value(dbKey).(*postgres.DB)
	return db
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "medicast",
		Usage: "Medicine demand forecasts and stock-out risk from the command line",
		Flags: []cli.Flag{
			newDBURLFlag(),
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Before: func(c *cli.Context) error {
			logger.Configure(os.Stderr, true)
			logger.SetLevel(c.String("log-level"))
			return initDB(c)
		},
		After: closeDB,
		Commands: []*cli.Command{
			estimateCommand(),
			rangeCommand(),
			riskCommand(),
			historyCommand(),
			recordsCommand(),
			migrateCommand(),
		},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Log.Warn().Err(err).Msg("could not load .env file")
	}

	if err := newApp().Run(os.Args); err != nil {
		logger.Log.Error().Err(err).Msg("medicast failed")
		os.Exit(1)
	}
}
