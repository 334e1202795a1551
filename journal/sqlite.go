package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite journal path is required")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite journal")
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create journal schema")
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordEdit(e EditRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO edits
		(edit_id, session_id, bond_id, time, field, input, price, zspread, asm, errors, valid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.EditID, e.SessionID, e.BondID, e.Time.UTC(), e.Field, e.Input,
		e.Price, e.ZSpread, e.ASM, e.Errors, e.Valid,
	)
	return errors.Wrap(err, "insert edit")
}

func (j *SQLite) RecordCommit(c CommitRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO commits
		(commit_id, session_id, bond_id, time)
		VALUES (?, ?, ?, ?)`,
		c.CommitID, c.SessionID, c.BondID, c.Time.UTC(),
	)
	return errors.Wrap(err, "insert commit")
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
