package aocstats

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/NWNHT/advent-of-code-stats/lib/scrapers/adventofcode"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestClockRoundTrip(t *testing.T) {
	testCases := []string{
		"00:00:00",
		"00:12:34",
		"01:00:59",
		"23:59:59",
		"48:00:01",
	}
	for _, tc := range testCases {
		d, err := ParseClock(tc)
		require.NoError(t, err, tc)
		require.Equal(t, tc, FormatClock(d))
	}
}

func TestClockRejectsMalformedValues(t *testing.T) {
	testCases := []string{
		"",
		"12:34",
		"00:60:00",
		"00:00:60",
		"aa:bb:cc",
		"-1:00:00",
	}
	for _, tc := range testCases {
		_, err := ParseClock(tc)
		require.Error(t, err, tc)
	}
}

func TestBuildDailyEmpty(t *testing.T) {
	table, err := BuildDaily(nil)
	require.NoError(t, err)
	require.Empty(t, table)
}

func TestBuildYearlyEmpty(t *testing.T) {
	table, err := BuildYearly(nil)
	require.NoError(t, err)
	require.Empty(t, table)
}

func TestBuildDaily(t *testing.T) {
	table, err := BuildDaily([]DailyTuple{
		{Year: 2016, Day: 4, Completion: adventofcode.CompletionSecond, Position: "1", Time: "00:02:27"},
		{Year: 2016, Day: 4, Completion: adventofcode.CompletionFirst, Position: "101", Time: "01:10:00"},
	})
	require.NoError(t, err)
	require.Equal(t, DailyTable{
		{Year: 2016, Day: 4, Completion: adventofcode.CompletionSecond, Position: 1, Time: 2*time.Minute + 27*time.Second},
		{Year: 2016, Day: 4, Completion: adventofcode.CompletionFirst, Position: 101, Time: time.Hour + 10*time.Minute},
	}, table)
}

func TestBuildDailyBadPosition(t *testing.T) {
	_, err := BuildDaily([]DailyTuple{
		{Year: 2016, Day: 4, Completion: adventofcode.CompletionSecond, Position: "n/a", Time: "00:02:27"},
	})
	require.Error(t, err)
}

func TestBuildYearlyDeltaCorrection(t *testing.T) {
	table, err := BuildYearly([]YearlyTuple{
		{Year: 2015, Day: "1", Second: "50", First: "10"},
	})
	require.NoError(t, err)
	require.Equal(t, YearlyTable{
		{Year: 2015, Day: 1, Completion: adventofcode.CompletionFirst, Count: 60},
		{Year: 2015, Day: 1, Completion: adventofcode.CompletionSecond, Count: 50},
	}, table)

	// the corrected first-star total can never be below the second-star count
	for _, tuples := range [][]YearlyTuple{
		{{Year: 2016, Day: "1", Second: "0", First: "0"}},
		{{Year: 2016, Day: "2", Second: "12345", First: "0"}},
		{{Year: 2016, Day: "3", Second: "1", First: "99999"}},
	} {
		table, err := BuildYearly(tuples)
		require.NoError(t, err)
		require.GreaterOrEqual(t, table[0].Count, table[1].Count)
	}
}

func TestBuildYearlyPermutationInvariant(t *testing.T) {
	tuples := []YearlyTuple{
		{Year: 2015, Day: "1", Second: "50", First: "10"},
		{Year: 2015, Day: "2", Second: "40", First: "8"},
		{Year: 2016, Day: "1", Second: "70", First: "3"},
		{Year: 2016, Day: "2", Second: "65", First: "0"},
	}
	permuted := []YearlyTuple{tuples[2], tuples[0], tuples[3], tuples[1]}

	a, err := BuildYearly(tuples)
	require.NoError(t, err)
	b, err := BuildYearly(permuted)
	require.NoError(t, err)

	sorted := cmpopts.SortSlices(func(x, y YearlyRow) bool {
		if x.Year != y.Year {
			return x.Year < y.Year
		}
		if x.Day != y.Day {
			return x.Day < y.Day
		}
		return x.Completion < y.Completion
	})
	if diff := cmp.Diff(a, b, sorted); diff != "" {
		t.Fatalf("row sets differ (-base +permuted):\n%s", diff)
	}
}

func TestExtractAndBuildDaily(t *testing.T) {
	var page strings.Builder
	page.WriteString("<main>")
	for i := 1; i <= 101; i++ {
		fmt.Fprintf(
			&page,
			`<div><span class="leaderboard-position">%d.</span><span class="leaderboard-time">00:12:34</span></div>`,
			i,
		)
	}
	page.WriteString("</main>")

	entries, err := adventofcode.ExtractDaily([]byte(page.String()))
	require.NoError(t, err)
	require.Len(t, entries, 101)

	tuples := make([]DailyTuple, len(entries))
	for i, e := range entries {
		tuples[i] = DailyTuple{
			Year:       2015,
			Day:        1,
			Completion: e.Completion,
			Position:   e.Position,
			Time:       e.Time,
		}
	}
	table, err := BuildDaily(tuples)
	require.NoError(t, err)
	require.Len(t, table, 101)

	for i, row := range table {
		require.Equal(t, i+1, row.Position)
		require.Equal(t, 12*time.Minute+34*time.Second, row.Time)
		if i < adventofcode.TopTierSize {
			require.Equal(t, adventofcode.CompletionSecond, row.Completion)
		} else {
			require.Equal(t, adventofcode.CompletionFirst, row.Completion)
		}
	}
}
