// SPDX-License-Identifier: MIT
package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"gitlab.com/fisherprime/orgchart/types"
)

type (
	// SQLite stores the Relation in a `users` table, ordered by insertion.
	SQLite struct {
		db *sql.DB
	}
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	manager_id TEXT NOT NULL DEFAULT '',
	name       TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	image      TEXT NOT NULL DEFAULT ''
);
`

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (s *SQLite, err error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

// Fetch reads the Relation in insertion order.
func (s *SQLite) Fetch(ctx context.Context) (relation Relation, err error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, manager_id, name, email, image FROM users ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	relation = Relation{}
	for rows.Next() {
		var id, managerID, name, email, image string
		if err = rows.Scan(&id, &managerID, &name, &email, &image); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}

		relation = append(relation, newRecord(id, managerID, types.Attributes{
			types.AttrName:  name,
			types.AttrEmail: email,
			types.AttrImage: image,
		}))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	fLogger.Debugf("fetched %d users", len(relation))

	return
}

// Save replaces the stored Relation within a transaction.
func (s *SQLite) Save(ctx context.Context, relation Relation) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO users (id, manager_id, name, email, image) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range relation {
		if record.ID == "" {
			return fmt.Errorf("insert user: %w", ErrMissingID)
		}

		name, _ := record.Attributes.Get(types.AttrName)
		email, _ := record.Attributes.Get(types.AttrEmail)
		image, _ := record.Attributes.Get(types.AttrImage)
		if _, err = stmt.ExecContext(ctx, record.ID, record.ManagerID, name, email, image); err != nil {
			return fmt.Errorf("insert user (%s): %w", record.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	fLogger.Debugf("saved %d users", len(relation))

	return
}
