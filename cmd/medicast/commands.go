package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/andresuchdata/medicast/backend-go/internal/catalog"
	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/andresuchdata/medicast/backend-go/internal/forecast"
	"github.com/andresuchdata/medicast/backend-go/internal/repository"
	"github.com/andresuchdata/medicast/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/medicast/backend-go/internal/risk"
	"github.com/andresuchdata/medicast/backend-go/internal/service"
	"github.com/andresuchdata/medicast/backend-go/internal/stock"
	"github.com/andresuchdata/medicast/backend-go/internal/timeseries"
	"github.com/andresuchdata/medicast/backend-go/pkg/logger"
	"github.com/andresuchdata/medicast/backend-go/pkg/random"
	"github.com/urfave/cli/v2"
)

func medicineFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "medicine",
		Aliases:  []string{"m"},
		Usage:    "Medicine name, e.g. \"Crocin (Paracetamol)\"",
		Required: required,
	}
}

func priceModeFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "price-mode",
		Value: string(domain.PriceFixed),
		Usage: "Unit price mode: fixed or randomized",
	}
}

func seedFlag() *cli.Uint64Flag {
	return &cli.Uint64Flag{
		Name:  "seed",
		Usage: "Seed for reproducible random draws (0 = clock)",
	}
}

func rngFrom(c *cli.Context) *random.Source {
	if seed := c.Uint64("seed"); seed != 0 {
		return random.NewSeeded(seed, seed^0x9e3779b97f4a7c15)
	}
	return random.New()
}

func monthFrom(c *cli.Context, name string) (*domain.Month, error) {
	raw := c.String(name)
	if raw == "" {
		return nil, nil
	}
	m, ok := domain.ParseMonth(raw)
	if !ok {
		return nil, domain.InvalidSelection(name, "unknown month %q", raw)
	}
	return &m, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// directSink writes synchronously; the CLI exits right after a command.
type directSink struct {
	ctx  context.Context
	repo repository.ForecastRepository
	err  error
}

func (s *directSink) Submit(rec domain.ForecastRecord) bool {
	_, s.err = s.repo.Insert(s.ctx, rec)
	return s.err == nil
}

// warn reports a failed write; the computed result has already been printed.
func (s *directSink) warn(owner, medicine string) {
	if s == nil || s.err == nil {
		return
	}
	logger.Log.Warn().Err(s.err).Str("owner", owner).Str("medicine", medicine).Msg("forecast not recorded")
}

func forecastService(c *cli.Context) (*service.ForecastService, *directSink) {
	est := forecast.NewEstimator(domain.ParsePriceMode(c.String("price-mode")), rngFrom(c))
	db := dbFrom(c)
	if db == nil {
		return service.NewForecastService(est, nil, nil), nil
	}
	repo := postgres.NewForecastRepository(db)
	sink := &directSink{ctx: c.Context, repo: repo}
	return service.NewForecastService(est, repo, sink), sink
}

func estimateCommand() *cli.Command {
	return &cli.Command{
		Name:  "estimate",
		Usage: "Estimate demand for one medicine under a weather or season",
		Flags: []cli.Flag{
			medicineFlag(true),
			&cli.StringFlag{Name: "weather", Aliases: []string{"w"}, Usage: "Hot, Cloudy or Rainy; omit for season-only"},
			&cli.StringFlag{Name: "month", Usage: "Month name (default: current month)"},
			&cli.StringFlag{Name: "owner", Usage: "Record the estimate for this owner (needs a database)"},
			priceModeFlag(),
			seedFlag(),
		},
		Action: func(c *cli.Context) error {
			month, err := monthFrom(c, "month")
			if err != nil {
				return err
			}
			svc, sink := forecastService(c)
			owner := c.String("owner")
			if sink == nil {
				owner = ""
			}

			var est domain.Estimate
			if w := c.String("weather"); w != "" {
				est, err = svc.EstimateWeather(c.Context, owner, c.String("medicine"), domain.Weather(w), month)
			} else {
				if month == nil {
					now := domain.MonthOf(time.Now())
					month = &now
				}
				est, err = svc.EstimateMonth(c.Context, owner, c.String("medicine"), *month)
			}
			if err != nil {
				return err
			}
			if err := writeJSON(c.App.Writer, est); err != nil {
				return err
			}
			sink.warn(owner, est.Medicine)
			return nil
		},
	}
}

func rangeCommand() *cli.Command {
	return &cli.Command{
		Name:  "range",
		Usage: "Project best, worst and average demand for the next 12 months",
		Flags: []cli.Flag{
			medicineFlag(true),
			&cli.StringFlag{Name: "start-month", Usage: "First projected month (default: current month)"},
			&cli.StringFlag{Name: "owner", Usage: "Record the projection for this owner (needs a database)"},
			priceModeFlag(),
			seedFlag(),
		},
		Action: func(c *cli.Context) error {
			start, err := monthFrom(c, "start-month")
			if err != nil {
				return err
			}
			svc, sink := forecastService(c)
			owner := c.String("owner")
			if sink == nil {
				owner = ""
			}

			rf, err := svc.Forecast12Months(c.Context, owner, c.String("medicine"), start)
			if err != nil {
				return err
			}
			if err := writeJSON(c.App.Writer, rf); err != nil {
				return err
			}
			sink.warn(owner, rf.Medicine)
			return nil
		},
	}
}

func riskCommand() *cli.Command {
	return &cli.Command{
		Name:  "risk",
		Usage: "Score stock-out risk for catalog medicines",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "horizon", Value: risk.DefaultHorizonDays, Usage: "Horizon in days"},
			&cli.StringSliceFlag{Name: "medicine", Aliases: []string{"m"}, Usage: "Limit to these medicines (default: whole catalog)"},
			seedFlag(),
		},
		Action: func(c *cli.Context) error {
			horizon := c.Int("horizon")
			if horizon <= 0 {
				return domain.InvalidSelection("horizon", "must be positive, got %d", horizon)
			}
			model := stock.NewModel(stock.NewMemoryCache(), rngFrom(c))
			svc := service.NewRiskService(catalog.Default(), model, nil, horizon)

			report, err := svc.Report(c.Context, horizon, c.StringSlice("medicine"))
			if err != nil {
				return err
			}
			return writeJSON(c.App.Writer, report)
		},
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Synthesize sales history and run the time-series analytics",
		Flags: []cli.Flag{
			medicineFlag(true),
			&cli.IntFlag{Name: "years", Value: timeseries.DefaultYears},
			&cli.IntFlag{Name: "window", Value: timeseries.DefaultWindow, Usage: "Moving average window"},
			&cli.IntFlag{Name: "year1"},
			&cli.IntFlag{Name: "year2"},
			seedFlag(),
		},
		Action: func(c *cli.Context) error {
			svc := service.NewAnalyticsService(timeseries.NewSynthesizer(rngFrom(c)), c.Int("years"))
			analytics, err := svc.History(c.String("medicine"), timeseries.Options{
				Years:  c.Int("years"),
				Window: c.Int("window"),
				Year1:  c.Int("year1"),
				Year2:  c.Int("year2"),
			})
			if err != nil {
				return err
			}
			return writeJSON(c.App.Writer, analytics)
		},
	}
}

func recordsCommand() *cli.Command {
	return &cli.Command{
		Name:  "records",
		Usage: "List stored forecasts of an owner, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "owner", Required: true},
		},
		Action: func(c *cli.Context) error {
			db := dbFrom(c)
			if db == nil {
				return errNoDatabase
			}
			svc := service.NewForecastService(forecast.NewEstimator(domain.PriceFixed, nil), postgres.NewForecastRepository(db), nil)
			records, err := svc.ListForecasts(c.Context, c.String("owner"))
			if err != nil {
				return err
			}
			return writeJSON(c.App.Writer, records)
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create the forecasts table",
		Action: func(c *cli.Context) error {
			db := dbFrom(c)
			if db == nil {
				return errNoDatabase
			}
			if err := postgres.EnsureSchema(c.Context, db); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "forecasts schema is up to date")
			return nil
		},
	}
}
