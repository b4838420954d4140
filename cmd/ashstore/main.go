// Command ashstore prefetches the info, summary and time series of one location
// and prints the resulting record as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	ashstore "github.com/Borislavv/go-ash-store"
	"github.com/Borislavv/go-ash-store/config"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// overrides are read from the environment (and .env) after the yaml config.
type overrides struct {
	ConfigPath string        `env:"ASHSTORE_CONFIG"`
	APIRoot    string        `env:"ASHSTORE_API_ROOT"`
	RateLimit  int           `env:"ASHSTORE_API_RATE_LIMIT"`
	LogLevel   string        `env:"ASHSTORE_LOG_LEVEL" envDefault:"info"`
	Timeout    time.Duration `env:"ASHSTORE_FETCH_TIMEOUT"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ashstore:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	ov, err := env.ParseAs[overrides]()
	if err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	var (
		location = flag.String("location", "nauscaclaremont", "location id")
		agg      = flag.String("agg", string(ashstore.Day), "time aggregation: day, month or year")
		start    = flag.String("start", "", "start date in the aggregation's layout")
		end      = flag.String("end", "", "end date in the aggregation's layout")
		cfgPath  = flag.String("config", ov.ConfigPath, "path to yaml config")
	)
	flag.Parse()

	level, err := zerolog.ParseLevel(ov.LogLevel)
	if err != nil {
		return err
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	cfg := &config.Store{}
	if *cfgPath != "" {
		if cfg, err = config.LoadConfig(*cfgPath); err != nil {
			return err
		}
	}
	if ov.APIRoot != "" {
		cfg.API.Root = ov.APIRoot
	}
	if ov.RateLimit > 0 {
		cfg.API.RateLimit = ov.RateLimit
	}
	if ov.Timeout > 0 {
		cfg.Fetch = &config.FetchCfg{Timeout: ov.Timeout}
	}

	args, err := parseArgs(*location, *agg, *start, *end)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := ashstore.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	pending := []<-chan ashstore.Msg{}
	for _, slot := range []ashstore.Slot{ashstore.SlotInfo, ashstore.SlotFixed, ashstore.SlotTimeSeries} {
		if ch, ok := s.FetchIfNeeded(ctx, ashstore.Key{Relation: ashstore.Location, Slot: slot}, args); ok {
			pending = append(pending, ch)
		}
	}
	for _, ch := range pending {
		if fail, ok := (<-ch).(ashstore.Fail); ok {
			logger.Error().Err(fail.Err).Str("resource", fail.Key.String()).Msg("prefetch failed")
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Record(ashstore.Location, args.Tuple))
}

func parseArgs(location, agg, start, end string) (ashstore.Args, error) {
	a, err := ashstore.ParseAggregation(agg)
	if err != nil {
		return ashstore.Args{}, err
	}
	args := ashstore.Args{Tuple: ashstore.Tuple{LocationID: location}, Aggregation: a}
	if start != "" {
		if args.Options.Start, err = a.Parse(start); err != nil {
			return ashstore.Args{}, err
		}
	}
	if end != "" {
		if args.Options.End, err = a.Parse(end); err != nil {
			return ashstore.Args{}, err
		}
	}
	return args, nil
}
