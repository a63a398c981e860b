package adventofcode

import (
	"bytes"
	"errors"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// TopTierSize is the number of entries on each of the two leaderboards
// concatenated on a daily page. The first TopTierSize entries in document
// order are the second-star board, the remainder the first-star board.
// Inferred from the page layout; revalidate if the site markup changes.
const TopTierSize = 100

// Completion marks whether an entry refers to the first or second half of
// a day's puzzle.
type Completion string

const (
	CompletionFirst  Completion = "first"
	CompletionSecond Completion = "second"
)

// ErrMalformedPage indicates the page was fetched but its expected content
// container is absent, as opposed to a page that legitimately has zero
// entries.
var ErrMalformedPage = errors.New("page content container is missing")

// times render as a fixed-width HH:MM:SS suffix of the time field
const clockWidth = 8

// DailyEntry is one leaderboard entry as scraped, numeric coercion is
// deferred to the table builder.
type DailyEntry struct {
	Completion Completion
	Position   string
	Time       string
}

// YearlyEntry is one per-day line of a yearly statistics page. First is a
// delta above the second-star count, not a total.
type YearlyEntry struct {
	Day    string
	Second string
	First  string
}

// ExtractDaily pulls the leaderboard entries out of a daily page body in
// document order.
func ExtractDaily(body []byte) ([]DailyEntry, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	container := doc.Find("main")
	if container.Length() == 0 {
		return nil, ErrMalformedPage
	}

	var entries []DailyEntry
	container.ChildrenFiltered("div").Each(func(i int, entry *goquery.Selection) {
		completion := CompletionSecond
		if i >= TopTierSize {
			completion = CompletionFirst
		}

		position := strings.TrimSpace(entry.Find(".leaderboard-position").Text())
		position = strings.TrimRightFunc(position, func(r rune) bool {
			return !unicode.IsDigit(r)
		})

		clock := strings.TrimSpace(entry.Find(".leaderboard-time").Text())
		if len(clock) > clockWidth {
			clock = clock[len(clock)-clockWidth:]
		}

		entries = append(entries, DailyEntry{
			Completion: completion,
			Position:   position,
			Time:       clock,
		})
	})
	return entries, nil
}

// ExtractYearly pulls the per-day completion counts out of a yearly
// statistics page body in document order.
func ExtractYearly(body []byte) ([]YearlyEntry, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	container := doc.Find("main pre")
	if container.Length() == 0 {
		return nil, ErrMalformedPage
	}

	var entries []YearlyEntry
	container.Find("a").Each(func(_ int, a *goquery.Selection) {
		fields := strings.Fields(a.Text())
		if len(fields) < 3 {
			return
		}
		entries = append(entries, YearlyEntry{
			Day:    fields[0],
			Second: fields[1],
			First:  fields[2],
		})
	})
	return entries, nil
}
