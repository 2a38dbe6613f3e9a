// Package featurestore keeps raw per-frame detections (features) in sqlite
// and serves them to the linker by selection.
package featurestore

import (
	"context"
	"database/sql"
	_ "embed"
	"strings"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/LdDl/mr-go/mr"
)

// schema.sql creates the features table and its selection index.
//
//go:embed schema.sql
var schemaSQL string

// Feature is a single detection of the acquisition (trial, stack)
type Feature struct {
	Trial int
	Stack int
	mr.Sample
}

// Store is sqlite-backed feature storage
type Store struct {
	*sql.DB
}

// Open opens (or creates) the database at path and applies the schema
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open feature store %s", path)
	}
	if _, err = db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Can't apply feature store schema")
	}
	mr.Opsf("opened feature store %s", path)
	return &Store{db}, nil
}

// Insert stores features in a single transaction
func (store *Store) Insert(ctx context.Context, features []Feature) error {
	tx, err := store.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "Can't begin transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO features (trial, stack, frame, x, y, mass, size, ecc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.Wrap(err, "Can't prepare insert")
	}
	defer stmt.Close()

	for i, f := range features {
		_, err := stmt.ExecContext(ctx, f.Trial, f.Stack, f.Frame, f.X, f.Y, f.Mass, f.Size, f.Ecc)
		if err != nil {
			return errors.Wrapf(err, "Can't insert feature #%d (frame %d)", i, f.Frame)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "Can't commit features")
	}
	mr.Diagf("stored %d features", len(features))
	return nil
}

// selectionQuery builds the WHERE clause for a selection. Zero fields put no constraint.
func selectionQuery(selection mr.Selection) (string, []any) {
	conds := make([]string, 0, 5)
	args := make([]any, 0, 5)
	if selection.Trial != 0 {
		conds = append(conds, "trial = ?")
		args = append(args, selection.Trial)
	}
	if selection.Stack != 0 {
		conds = append(conds, "stack = ?")
		args = append(args, selection.Stack)
	}
	if selection.FrameStart != 0 {
		conds = append(conds, "frame >= ?")
		args = append(args, selection.FrameStart)
	}
	if selection.FrameEnd != 0 {
		conds = append(conds, "frame <= ?")
		args = append(args, selection.FrameEnd)
	}
	if selection.MinMass != 0 {
		conds = append(conds, "mass >= ?")
		args = append(args, selection.MinMass)
	}
	query := "SELECT frame, x, y, mass, size, ecc FROM features"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	return query + " ORDER BY frame, id", args
}

// Detections returns the samples of selection ordered by frame. It implements mot.DetectionSource.
func (store *Store) Detections(ctx context.Context, selection mr.Selection) ([]mr.Sample, error) {
	query, args := selectionQuery(selection)
	rows, err := store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "Can't query features")
	}
	defer rows.Close()

	samples := make([]mr.Sample, 0)
	for rows.Next() {
		var s mr.Sample
		if err := rows.Scan(&s.Frame, &s.X, &s.Y, &s.Mass, &s.Size, &s.Ecc); err != nil {
			return nil, errors.Wrap(err, "Can't scan feature")
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "Can't iterate features")
	}
	return samples, nil
}

// Count returns number of stored features
func (store *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := store.QueryRowContext(ctx, "SELECT COUNT(*) FROM features").Scan(&n)
	if err != nil {
		return 0, errors.Wrap(err, "Can't count features")
	}
	return n, nil
}
