// Package adventofcode fetches and extracts public leaderboard pages from
// the Advent of Code website.
package adventofcode

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/NWNHT/advent-of-code-stats/lib/pagestore"
	"github.com/NWNHT/advent-of-code-stats/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

// FirstEventYear is the year of the first Advent of Code event.
const FirstEventYear = 2015

// puzzles run from December 1st through the 25th
const lastPuzzleDay = 25

type ClientOptions struct {
	// defaults to https://adventofcode.com
	BaseUrl string
	// pause after every request, defaults to one second
	Delay time.Duration
}

type Client struct {
	http  *resty.Client
	delay time.Duration
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = "https://adventofcode.com"
	}
	delay := opts.Delay
	if delay == 0 {
		delay = time.Second
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetTimeout(time.Second * 30)
	telemetry.InstrumentResty(client, "scrapers/adventofcode")

	return &Client{http: client, delay: delay}
}

type FetchStatus int

const (
	FetchOk FetchStatus = iota
	FetchHttpError
	FetchTransportError
)

// FetchOutcome classifies the result of one page request so callers can
// tell a permanent 404 apart from a flaky connection, even though neither
// is retried.
type FetchOutcome struct {
	Key        string
	Status     FetchStatus
	StatusCode int
	Err        error
}

// FetchDailyRange requests every daily leaderboard page for the year
// range (inclusive) and writes successful bodies to the store. Failures
// are logged and skipped, never aborting the rest of the range. Cancelling
// the context stops the loop early; pages already written stay valid.
func (c *Client) FetchDailyRange(ctx context.Context, store pagestore.Store, firstYear, lastYear int) []FetchOutcome {
	slog.InfoContext(ctx, "requesting daily leaderboards", "first_year", firstYear, "last_year", lastYear)

	var outcomes []FetchOutcome
	for year := firstYear; year <= lastYear; year++ {
		for day := 1; day <= lastPuzzleDay; day++ {
			if ctx.Err() != nil {
				return outcomes
			}
			key := pagestore.DailyKey(year, day)
			outcomes = append(outcomes, c.fetchPage(ctx, store, key, fmt.Sprintf("/%d/leaderboard/day/%d", year, day)))
			c.pause(ctx)
		}
	}
	return outcomes
}

// FetchYearlyRange requests every yearly statistics page for the year
// range (inclusive), with the same skip-and-continue policy as
// FetchDailyRange.
func (c *Client) FetchYearlyRange(ctx context.Context, store pagestore.Store, firstYear, lastYear int) []FetchOutcome {
	slog.InfoContext(ctx, "requesting yearly statistics", "first_year", firstYear, "last_year", lastYear)

	var outcomes []FetchOutcome
	for year := firstYear; year <= lastYear; year++ {
		if ctx.Err() != nil {
			return outcomes
		}
		key := pagestore.StatsKey(year)
		outcomes = append(outcomes, c.fetchPage(ctx, store, key, fmt.Sprintf("/%d/stats", year)))
		c.pause(ctx)
	}
	return outcomes
}

func (c *Client) fetchPage(ctx context.Context, store pagestore.Store, key, path string) FetchOutcome {
	res, err := c.http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch page", "key", key, "err", err)
		return FetchOutcome{Key: key, Status: FetchTransportError, Err: err}
	}
	if res.StatusCode() != http.StatusOK {
		slog.WarnContext(ctx, "unexpected response status", "key", key, "status", res.StatusCode())
		return FetchOutcome{Key: key, Status: FetchHttpError, StatusCode: res.StatusCode()}
	}

	if err := store.Write(key, res.Body()); err != nil {
		slog.WarnContext(ctx, "failed to write page", "key", key, "err", err)
		return FetchOutcome{Key: key, Status: FetchTransportError, Err: err}
	}

	slog.DebugContext(ctx, "downloaded page", "key", key)
	return FetchOutcome{Key: key, Status: FetchOk, StatusCode: res.StatusCode()}
}

// a blunt unconditional rate limiter, applied after every request no
// matter how it went
func (c *Client) pause(ctx context.Context) {
	select {
	case <-time.After(c.delay):
	case <-ctx.Done():
	}
}
