// Package pagestore persists raw fetched HTML pages as files in a single
// directory, keyed by `{year}-{zero padded day}` for daily leaderboard
// pages and `{year}-stats` for yearly statistics pages.
package pagestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const pageExt = ".html"

type Store struct {
	dir string
}

func Open(dir string) (Store, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return Store{}, fmt.Errorf("open page store: %w", err)
	}
	return Store{dir: dir}, nil
}

func (s Store) path(key string) string {
	return filepath.Join(s.dir, key+pageExt)
}

// Write stores a page body under the given key, replacing any previously
// stored page.
func (s Store) Write(key string, body []byte) error {
	return os.WriteFile(s.path(key), body, 0644)
}

// Read returns the stored body for the key. A missing page surfaces the
// underlying fs.ErrNotExist so callers can tell "never fetched" apart
// from "fetched but unparseable".
func (s Store) Read(key string) ([]byte, error) {
	return os.ReadFile(s.path(key))
}

// Keys enumerates all stored page keys in lexicographic order.
func (s Store) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), pageExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(e.Name(), pageExt))
	}
	sort.Strings(keys)
	return keys, nil
}

func DailyKey(year, day int) string {
	return fmt.Sprintf("%d-%02d", year, day)
}

func StatsKey(year int) string {
	return fmt.Sprintf("%d-stats", year)
}

// ParseDailyKey recovers (year, day) from a daily page key.
func ParseDailyKey(key string) (year, day int, ok bool) {
	a, b, found := strings.Cut(key, "-")
	if !found || b == "stats" {
		return 0, 0, false
	}
	year, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, false
	}
	day, err = strconv.Atoi(b)
	if err != nil {
		return 0, 0, false
	}
	return year, day, true
}

// ParseStatsKey recovers the year from a yearly stats page key.
func ParseStatsKey(key string) (year int, ok bool) {
	a, b, found := strings.Cut(key, "-")
	if !found || b != "stats" {
		return 0, false
	}
	year, err := strconv.Atoi(a)
	if err != nil {
		return 0, false
	}
	return year, true
}
