package aocstats

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NWNHT/advent-of-code-stats/lib/pagestore"
	"github.com/NWNHT/advent-of-code-stats/lib/scrapers/adventofcode"
	"github.com/NWNHT/advent-of-code-stats/lib/testutil"
	"github.com/NWNHT/advent-of-code-stats/services/aocstats/db"

	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T, baseUrl string) (Service, func()) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/aocstats",
		DbSchema: db.Schema,
	})

	pages, err := pagestore.Open(t.TempDir())
	require.NoError(t, err)

	client := adventofcode.NewClient(adventofcode.ClientOptions{
		BaseUrl: baseUrl,
		Delay:   time.Millisecond,
	})
	return NewService(client, pages, NewStore(res.DB)), cleanup
}

func leaderboardPage(entries int) string {
	var b strings.Builder
	b.WriteString("<main>")
	for i := 1; i <= entries; i++ {
		fmt.Fprintf(
			&b,
			`<div><span class="leaderboard-position">%d)</span><span class="leaderboard-time">Dec 01  00:12:34</span></div>`,
			i,
		)
	}
	b.WriteString("</main>")
	return b.String()
}

func TestGetBeforeMake(t *testing.T) {
	svc, cleanup := setupService(t, "http://127.0.0.1:1")
	defer cleanup()

	ctx := context.Background()
	_, err := svc.GetDaily(ctx)
	require.ErrorIs(t, err, ErrArtifactNotFound)
	_, err = svc.GetYearly(ctx)
	require.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestMakeAndGetDaily(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// only day 1 of 2015 exists, everything else is a 404 skip
		if r.URL.Path != "/2015/leaderboard/day/1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, leaderboardPage(101))
	}))
	defer server.Close()

	svc, cleanup := setupService(t, server.URL)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	built, err := svc.MakeDaily(ctx, MakeOptions{Download: true, FirstYear: 2015, LastYear: 2015})
	require.NoError(t, err)
	require.Len(t, built, 101)

	loaded, err := svc.GetDaily(ctx)
	require.NoError(t, err)
	require.Equal(t, built, loaded)

	second := 0
	first := 0
	for _, row := range loaded {
		require.Equal(t, 2015, row.Year)
		require.Equal(t, 1, row.Day)
		require.Equal(t, 12*time.Minute+34*time.Second, row.Time)
		switch row.Completion {
		case adventofcode.CompletionSecond:
			second++
		case adventofcode.CompletionFirst:
			first++
		}
	}
	require.Equal(t, 100, second)
	require.Equal(t, 1, first)
}

func TestMakeAndGetYearly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2015/stats" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `<main><pre class="stats">`+
			`<a href="/2015/day/2"> 2 <span>40</span> <span>5</span></a>`+"\n"+
			`<a href="/2015/day/1"> 1 <span>50</span> <span>10</span></a>`+"\n"+
			`</pre></main>`)
	}))
	defer server.Close()

	svc, cleanup := setupService(t, server.URL)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	built, err := svc.MakeYearly(ctx, MakeOptions{Download: true, FirstYear: 2015, LastYear: 2016})
	require.NoError(t, err)
	require.Equal(t, YearlyTable{
		{Year: 2015, Day: 2, Completion: adventofcode.CompletionFirst, Count: 45},
		{Year: 2015, Day: 1, Completion: adventofcode.CompletionFirst, Count: 60},
		{Year: 2015, Day: 2, Completion: adventofcode.CompletionSecond, Count: 40},
		{Year: 2015, Day: 1, Completion: adventofcode.CompletionSecond, Count: 50},
	}, built)

	loaded, err := svc.GetYearly(ctx)
	require.NoError(t, err)
	require.Equal(t, built, loaded)
}

func TestMakeWithoutDownload(t *testing.T) {
	svc, cleanup := setupService(t, "http://127.0.0.1:1")
	defer cleanup()

	ctx := context.Background()

	// seed the raw-page store directly, as a previous fetch-only run
	// would have
	require.NoError(t, svc.pages.Write(pagestore.DailyKey(2016, 5), []byte(leaderboardPage(3))))
	// a page whose markup changed under us only yields a warning
	require.NoError(t, svc.pages.Write(pagestore.DailyKey(2016, 6), []byte("<html><body>no content container</body></html>")))

	built, err := svc.MakeDaily(ctx, MakeOptions{Download: false})
	require.NoError(t, err)
	require.Len(t, built, 3)

	loaded, err := svc.GetDaily(ctx)
	require.NoError(t, err)
	require.Equal(t, built, loaded)
}
