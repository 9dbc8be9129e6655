// Package storage persists canonical activity records to SQLite and serves
// the derived-fact and aggregate queries over them.
//
// The sink's operations have a strict ordering dependency: BulkInsert must
// fully complete before DeriveEstimatedFriendships, which must complete
// before SyncFriendTable, which must complete before MaterializeDates. Each
// stage's SQL reads the prior stage's fully committed rows.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/hshore29/FacebookActivityGrapher/internal/aggregate"
	"github.com/hshore29/FacebookActivityGrapher/internal/models"
	"github.com/hshore29/FacebookActivityGrapher/internal/titles"
)

const sqlSchema = `
CREATE TABLE IF NOT EXISTS facebook (
  action text, action_type text, timestamp int, description text,
  person text, thread text, title text, url text, fbgroup text,
  camera_make text, camera_model text, fb_date datetime, "with" text
);
CREATE TABLE IF NOT EXISTS friends (
  person text UNIQUE, cohort text
);`

const sqlInsertActivity = `
INSERT INTO facebook (action, action_type, timestamp, description, person,
  "with", thread, title, url, fbgroup, camera_make, camera_model)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

// sqlEstimateRemovedFriends backfills a friendship-start event for friends
// whose acceptance predates the export's retention window: for every removed
// friend, the earliest non-removed activity naming that person at or before
// the removal anchors a synthetic accepted_est row.
const sqlEstimateRemovedFriends = `
INSERT INTO facebook (action, action_type, person, timestamp)
SELECT 'accepted_est', 'friend', f.person, (
  SELECT min(timestamp) FROM facebook
  WHERE action != 'removed' AND (person = f.person OR "with" = f.person)
    AND timestamp <= f.timestamp) AS est_date
FROM facebook f
WHERE action_type = 'friend' AND action = 'removed'
  AND est_date IS NOT NULL;`

const sqlSyncFriendTable = `
INSERT INTO friends (person)
SELECT person FROM facebook WHERE action IN ('accepted', 'accepted_est')
  AND action_type = 'friend' AND person NOT IN (SELECT person FROM friends);`

const sqlMaterializeDates = `
UPDATE facebook SET fb_date = datetime(timestamp, 'unixepoch')
  WHERE timestamp IS NOT NULL;`

// sqlActionCounts buckets activity by month (year + (month-1)/12, a sortable
// real) and classifies each row's author relative to the account owner:
// 'self' (owner, no counterparty), 'me' (owner, with someone), 'other'.
// Photo rows and messages are excluded as in the original charts.
const sqlActionCounts = `
SELECT
  cast(strftime('%Y', fb_date) AS FLOAT) +
    (cast(strftime('%m', fb_date) AS FLOAT) - 1) / 12 AS month,
  CASE WHEN person = ? THEN
      CASE WHEN "with" IS NULL THEN 'self' ELSE 'me' END
  ELSE 'other' END AS person1,
  action_type, count(*)
FROM facebook WHERE action NOT IN ('album_photo', 'message')
  AND fb_date IS NOT NULL
GROUP BY month, person1, action_type;`

// sqlFriendCohortDeltas buckets friend transitions by month and cohort with
// +1 for accept-like actions and -1 for removals.
const sqlFriendCohortDeltas = `
SELECT
  cast(strftime('%Y', fb_date) AS FLOAT) +
    (cast(strftime('%m', fb_date) AS FLOAT) - 1) / 12 AS month,
  cohort,
  sum(CASE WHEN action LIKE 'accepted%' THEN 1 ELSE -1 END)
FROM facebook f JOIN friends d ON f.person = d.person
WHERE action_type = 'friend'
  AND action IN ('accepted', 'removed', 'accepted_est')
GROUP BY month, cohort;`

// Storage is the record sink: a SQLite store of activity and friend rows.
type Storage struct {
	db       *sql.DB
	resolver *titles.Resolver
}

// Open opens (creating if absent) the SQLite database at dbPath and ensures
// the schema exists. The resolver finalizes person/with at write time.
func Open(dbPath string, resolver *titles.Resolver) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(sqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Storage{db: db, resolver: resolver}, nil
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Count returns the number of stored activity rows.
func (s *Storage) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT count(*) FROM facebook;").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return n, nil
}

// Clear deletes all activity rows. Friend rows survive so manually assigned
// cohorts are not lost across re-runs.
func (s *Storage) Clear() error {
	if _, err := s.db.Exec("DELETE FROM facebook;"); err != nil {
		return fmt.Errorf("failed to clear activities: %w", err)
	}
	return nil
}

// BulkInsert streams activities from source into the store inside a single
// transaction. Title resolution runs immediately before each row is written
// so person and with are final at write time; a resolver miss leaves the
// normalizer's values untouched. Returns the number of rows inserted.
func (s *Storage) BulkInsert(source func(func(models.Activity) error) error) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(sqlInsertActivity)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	err = source(func(a models.Activity) error {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("invalid activity: %w", err)
		}
		if a.Title != "" {
			if person, with, ok := s.resolver.Resolve(a.Title); ok {
				a.Person = person
				a.With = with
			}
		}
		if _, err := stmt.Exec(
			a.Action, a.ActionType, nullInt(a.Timestamp), nullStr(a.Description),
			nullStr(a.Person), nullStr(a.With), nullStr(a.Thread), nullStr(a.Title),
			nullStr(a.URL), nullStr(a.Group), nullStr(a.CameraMake), nullStr(a.CameraModel),
		); err != nil {
			return fmt.Errorf("failed to insert activity: %w", err)
		}
		inserted++
		return nil
	})
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit inserts: %w", err)
	}
	return inserted, nil
}

// DeriveEstimatedFriendships inserts synthetic accepted_est rows for removed
// friends with an earlier anchoring activity. Removals with no prior
// evidence are left unexplained. Returns the number of synthetic rows.
func (s *Storage) DeriveEstimatedFriendships() (int64, error) {
	res, err := s.db.Exec(sqlEstimateRemovedFriends)
	if err != nil {
		return 0, fmt.Errorf("failed to derive estimated friendships: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count derived rows: %w", err)
	}
	return n, nil
}

// SyncFriendTable ensures a friend row exists for every person with an
// accepted or accepted_est activity. Rows are never removed and cohorts stay
// NULL until classified.
func (s *Storage) SyncFriendTable() (int64, error) {
	res, err := s.db.Exec(sqlSyncFriendTable)
	if err != nil {
		return 0, fmt.Errorf("failed to sync friend table: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count friend rows: %w", err)
	}
	return n, nil
}

// MaterializeDates computes display dates from raw timestamps for every row
// that has one. Runs once, after all insertions including derived rows, so
// synthetic records get dates too.
func (s *Storage) MaterializeDates() error {
	if _, err := s.db.Exec(sqlMaterializeDates); err != nil {
		return fmt.Errorf("failed to materialize dates: %w", err)
	}
	return nil
}

// ActionCounts runs the per-month activity aggregate. Each row carries two
// group columns: the author class (self/me/other) and the action type.
func (s *Storage) ActionCounts() ([]aggregate.Row, error) {
	rows, err := s.db.Query(sqlActionCounts, s.resolver.Self())
	if err != nil {
		return nil, fmt.Errorf("failed to query action counts: %w", err)
	}
	defer rows.Close()

	var out []aggregate.Row
	for rows.Next() {
		var bucket, value float64
		var personClass, actionType string
		if err := rows.Scan(&bucket, &personClass, &actionType, &value); err != nil {
			return nil, fmt.Errorf("failed to scan action count row: %w", err)
		}
		out = append(out, aggregate.Row{
			Bucket: bucket,
			Groups: []string{personClass, actionType},
			Value:  value,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read action counts: %w", err)
	}
	return out, nil
}

// FriendCohortDeltas runs the per-month signed friend-count aggregate,
// grouped by cohort. Unclassified friends appear under an empty cohort.
func (s *Storage) FriendCohortDeltas() ([]aggregate.Row, error) {
	rows, err := s.db.Query(sqlFriendCohortDeltas)
	if err != nil {
		return nil, fmt.Errorf("failed to query friend deltas: %w", err)
	}
	defer rows.Close()

	var out []aggregate.Row
	for rows.Next() {
		var bucket, value float64
		var cohort sql.NullString
		if err := rows.Scan(&bucket, &cohort, &value); err != nil {
			return nil, fmt.Errorf("failed to scan friend delta row: %w", err)
		}
		out = append(out, aggregate.Row{
			Bucket: bucket,
			Groups: []string{cohort.String},
			Value:  value,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read friend deltas: %w", err)
	}
	return out, nil
}

// BlankCohorts lists friends who have not been classified yet.
func (s *Storage) BlankCohorts() ([]string, error) {
	rows, err := s.db.Query("SELECT person FROM friends WHERE cohort IS NULL;")
	if err != nil {
		return nil, fmt.Errorf("failed to query blank cohorts: %w", err)
	}
	defer rows.Close()

	var people []string
	for rows.Next() {
		var person string
		if err := rows.Scan(&person); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read friends: %w", err)
	}
	return people, nil
}

// SetCohort stores a cohort label for a friend, verbatim.
func (s *Storage) SetCohort(person, cohort string) error {
	if _, err := s.db.Exec("UPDATE friends SET cohort=? WHERE person=?;", cohort, person); err != nil {
		return fmt.Errorf("failed to set cohort for %s: %w", person, err)
	}
	return nil
}

// nullStr maps the empty string to SQL NULL.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullInt maps a nil timestamp to SQL NULL.
func nullInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
