package aocstats

import (
	"fmt"
	"strconv"
	"time"

	"github.com/NWNHT/advent-of-code-stats/lib/scrapers/adventofcode"
)

// DailyTuple is one extracted leaderboard entry. Year and day come from
// the page key, the remaining fields are scraped strings awaiting
// coercion.
type DailyTuple struct {
	Year       int
	Day        int
	Completion adventofcode.Completion
	Position   string
	Time       string
}

type DailyRow struct {
	Year       int
	Day        int
	Completion adventofcode.Completion
	Position   int
	Time       time.Duration
}

type DailyTable []DailyRow

// YearlyTuple is one extracted stats line. Year comes from the page key,
// the remaining fields are scraped strings awaiting coercion. First is a
// delta above the second-star count.
type YearlyTuple struct {
	Year   int
	Day    string
	Second string
	First  string
}

type YearlyRow struct {
	Year       int
	Day        int
	Completion adventofcode.Completion
	Count      int
}

type YearlyTable []YearlyRow

// BuildDaily coerces extracted daily tuples into a typed table. Rows are
// already in long form, no reshape needed.
func BuildDaily(tuples []DailyTuple) (DailyTable, error) {
	table := make(DailyTable, 0, len(tuples))
	for _, t := range tuples {
		position, err := strconv.Atoi(t.Position)
		if err != nil {
			return nil, fmt.Errorf("coerce position %q of %d-%02d: %w", t.Position, t.Year, t.Day, err)
		}
		elapsed, err := ParseClock(t.Time)
		if err != nil {
			return nil, fmt.Errorf("coerce time of %d-%02d: %w", t.Year, t.Day, err)
		}
		table = append(table, DailyRow{
			Year:       t.Year,
			Day:        t.Day,
			Completion: t.Completion,
			Position:   position,
			Time:       elapsed,
		})
	}
	return table, nil
}

// BuildYearly coerces extracted yearly tuples, corrects the first-star
// column from a delta to a total, and reshapes from wide (one row per day
// with a column per tier) to long (one row per day per tier).
func BuildYearly(tuples []YearlyTuple) (YearlyTable, error) {
	type wideRow struct {
		year, day, second, first int
	}

	wide := make([]wideRow, 0, len(tuples))
	for _, t := range tuples {
		day, err := strconv.Atoi(t.Day)
		if err != nil {
			return nil, fmt.Errorf("coerce day %q of %d: %w", t.Day, t.Year, err)
		}
		second, err := strconv.Atoi(t.Second)
		if err != nil {
			return nil, fmt.Errorf("coerce second-star count %q of %d-%02d: %w", t.Second, t.Year, day, err)
		}
		delta, err := strconv.Atoi(t.First)
		if err != nil {
			return nil, fmt.Errorf("coerce first-star delta %q of %d-%02d: %w", t.First, t.Year, day, err)
		}

		// everyone who finished the second half also got the first star,
		// so the scraped first-only column is a delta above the
		// second-star count
		wide = append(wide, wideRow{
			year:   t.Year,
			day:    day,
			second: second,
			first:  second + delta,
		})
	}

	// melt: all first-tier rows in input order, then all second-tier rows
	table := make(YearlyTable, 0, len(wide)*2)
	for _, w := range wide {
		table = append(table, YearlyRow{
			Year:       w.year,
			Day:        w.day,
			Completion: adventofcode.CompletionFirst,
			Count:      w.first,
		})
	}
	for _, w := range wide {
		table = append(table, YearlyRow{
			Year:       w.year,
			Day:        w.day,
			Completion: adventofcode.CompletionSecond,
			Count:      w.second,
		})
	}
	return table, nil
}
