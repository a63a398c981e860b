// Package aocstats turns raw Advent of Code leaderboard pages into two
// persisted tabular datasets: per-day completion records and per-year
// aggregate completion counts.
package aocstats

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/NWNHT/advent-of-code-stats/lib/pagestore"
	"github.com/NWNHT/advent-of-code-stats/lib/scrapers/adventofcode"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/aocstats")

type Service struct {
	client *adventofcode.Client
	pages  pagestore.Store
	store  Store
}

func NewService(client *adventofcode.Client, pages pagestore.Store, store Store) Service {
	return Service{
		client: client,
		pages:  pages,
		store:  store,
	}
}

// MakeOptions controls the make entry points. The caller resolves the
// current year once up front so a long fetch run can't drift across a
// year boundary.
type MakeOptions struct {
	Download  bool
	FirstYear int
	LastYear  int
}

// FetchDaily downloads every daily leaderboard page in the year range
// into the raw-page store.
func (s Service) FetchDaily(ctx context.Context, firstYear, lastYear int) {
	ctx, span := tracer.Start(ctx, "FetchDaily")
	defer span.End()

	logOutcomes(ctx, s.client.FetchDailyRange(ctx, s.pages, firstYear, lastYear))
}

// FetchYearly downloads every yearly statistics page in the year range
// into the raw-page store.
func (s Service) FetchYearly(ctx context.Context, firstYear, lastYear int) {
	ctx, span := tracer.Start(ctx, "FetchYearly")
	defer span.End()

	logOutcomes(ctx, s.client.FetchYearlyRange(ctx, s.pages, firstYear, lastYear))
}

// ParseDaily extracts and builds the daily table from all daily pages
// currently in the raw-page store, without fetching or persisting.
func (s Service) ParseDaily(ctx context.Context) (DailyTable, error) {
	ctx, span := tracer.Start(ctx, "ParseDaily")
	defer span.End()

	keys, err := s.pages.Keys()
	if err != nil {
		return nil, err
	}

	var tuples []DailyTuple
	for _, key := range keys {
		year, day, ok := pagestore.ParseDailyKey(key)
		if !ok {
			continue
		}
		entries, err := extractPage(ctx, s.pages, key, adventofcode.ExtractDaily)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			tuples = append(tuples, DailyTuple{
				Year:       year,
				Day:        day,
				Completion: e.Completion,
				Position:   e.Position,
				Time:       e.Time,
			})
		}
	}
	return BuildDaily(tuples)
}

// ParseYearly extracts and builds the yearly table from all stats pages
// currently in the raw-page store, without fetching or persisting.
func (s Service) ParseYearly(ctx context.Context) (YearlyTable, error) {
	ctx, span := tracer.Start(ctx, "ParseYearly")
	defer span.End()

	keys, err := s.pages.Keys()
	if err != nil {
		return nil, err
	}

	var tuples []YearlyTuple
	for _, key := range keys {
		year, ok := pagestore.ParseStatsKey(key)
		if !ok {
			continue
		}
		entries, err := extractPage(ctx, s.pages, key, adventofcode.ExtractYearly)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			tuples = append(tuples, YearlyTuple{
				Year:   year,
				Day:    e.Day,
				Second: e.Second,
				First:  e.First,
			})
		}
	}
	return BuildYearly(tuples)
}

// extractPage reads one raw page and applies the extraction rule. A
// missing page or a page without its expected markup yields zero entries
// with a warning, everything else stops the parse.
func extractPage[E any](ctx context.Context, pages pagestore.Store, key string, rule func([]byte) ([]E, error)) ([]E, error) {
	body, err := pages.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		slog.WarnContext(ctx, "cannot find page", "key", key)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	entries, err := rule(body)
	if errors.Is(err, adventofcode.ErrMalformedPage) {
		slog.WarnContext(ctx, "page is missing its content container", "key", key)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// MakeDaily optionally fetches, then parses and persists the daily
// dataset.
func (s Service) MakeDaily(ctx context.Context, opts MakeOptions) (DailyTable, error) {
	ctx, span := tracer.Start(ctx, "MakeDaily")
	defer span.End()

	if opts.Download {
		s.FetchDaily(ctx, opts.FirstYear, opts.LastYear)
	}
	table, err := s.ParseDaily(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveDaily(ctx, table); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "built daily dataset", "rows", len(table))
	return table, nil
}

// MakeYearly optionally fetches, then parses and persists the yearly
// dataset.
func (s Service) MakeYearly(ctx context.Context, opts MakeOptions) (YearlyTable, error) {
	ctx, span := tracer.Start(ctx, "MakeYearly")
	defer span.End()

	if opts.Download {
		s.FetchYearly(ctx, opts.FirstYear, opts.LastYear)
	}
	table, err := s.ParseYearly(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveYearly(ctx, table); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "built yearly dataset", "rows", len(table))
	return table, nil
}

// GetDaily reads back the persisted daily dataset without fetching or
// parsing.
func (s Service) GetDaily(ctx context.Context) (DailyTable, error) {
	return s.store.LoadDaily(ctx)
}

// GetYearly reads back the persisted yearly dataset without fetching or
// parsing.
func (s Service) GetYearly(ctx context.Context) (YearlyTable, error) {
	return s.store.LoadYearly(ctx)
}

func logOutcomes(ctx context.Context, outcomes []adventofcode.FetchOutcome) {
	var downloaded, httpErrors, transportErrors int
	for _, o := range outcomes {
		switch o.Status {
		case adventofcode.FetchOk:
			downloaded++
		case adventofcode.FetchHttpError:
			httpErrors++
		case adventofcode.FetchTransportError:
			transportErrors++
		}
	}
	slog.InfoContext(
		ctx, "fetch finished",
		"downloaded", downloaded,
		"http_errors", httpErrors,
		"transport_errors", transportErrors,
	)
}
