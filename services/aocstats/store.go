package aocstats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/NWNHT/advent-of-code-stats/lib/scrapers/adventofcode"
	"github.com/NWNHT/advent-of-code-stats/services/aocstats/db"

	_ "modernc.org/sqlite"
)

// ErrArtifactNotFound is returned by the load methods when a dataset has
// never been built.
var ErrArtifactNotFound = errors.New("dataset has not been built")

const (
	datasetDaily  = "daily"
	datasetYearly = "yearly"
)

// Store persists the finalized tables. A saved dataset is marked in the
// artifacts table so an empty-but-built dataset is distinguishable from
// one that was never built.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// OpenDB opens the sqlite artifact database at path and applies the
// schema.
func OpenDB(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := database.Exec(db.Schema); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func (s Store) SaveDaily(ctx context.Context, table DailyTable) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily`); err != nil {
		return err
	}
	for _, row := range table {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO daily (year, day, completion, position, time_seconds) VALUES (?, ?, ?, ?, ?)`,
			row.Year, row.Day, string(row.Completion), row.Position, int64(row.Time/time.Second),
		)
		if err != nil {
			return err
		}
	}
	if err := markBuilt(ctx, tx, datasetDaily); err != nil {
		return err
	}
	return tx.Commit()
}

func (s Store) LoadDaily(ctx context.Context) (DailyTable, error) {
	if err := s.requireBuilt(ctx, datasetDaily); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT year, day, completion, position, time_seconds FROM daily ORDER BY rowid`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	table := DailyTable{}
	for rows.Next() {
		var row DailyRow
		var completion string
		var seconds int64
		if err := rows.Scan(&row.Year, &row.Day, &completion, &row.Position, &seconds); err != nil {
			return nil, err
		}
		row.Completion = adventofcode.Completion(completion)
		row.Time = time.Duration(seconds) * time.Second
		table = append(table, row)
	}
	return table, rows.Err()
}

func (s Store) SaveYearly(ctx context.Context, table YearlyTable) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM yearly`); err != nil {
		return err
	}
	for _, row := range table {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO yearly (year, day, completion, count) VALUES (?, ?, ?, ?)`,
			row.Year, row.Day, string(row.Completion), row.Count,
		)
		if err != nil {
			return err
		}
	}
	if err := markBuilt(ctx, tx, datasetYearly); err != nil {
		return err
	}
	return tx.Commit()
}

func (s Store) LoadYearly(ctx context.Context) (YearlyTable, error) {
	if err := s.requireBuilt(ctx, datasetYearly); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT year, day, completion, count FROM yearly ORDER BY rowid`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	table := YearlyTable{}
	for rows.Next() {
		var row YearlyRow
		var completion string
		if err := rows.Scan(&row.Year, &row.Day, &completion, &row.Count); err != nil {
			return nil, err
		}
		row.Completion = adventofcode.Completion(completion)
		table = append(table, row)
	}
	return table, rows.Err()
}

func markBuilt(ctx context.Context, tx *sql.Tx, name string) error {
	_, err := tx.ExecContext(
		ctx,
		`INSERT INTO artifacts (name, built_at) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET built_at = excluded.built_at`,
		name, time.Now().Unix(),
	)
	return err
}

func (s Store) requireBuilt(ctx context.Context, name string) error {
	var builtAt int64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT built_at FROM artifacts WHERE name = ?`,
		name,
	).Scan(&builtAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrArtifactNotFound, name)
	}
	return err
}
