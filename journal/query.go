package journal

import (
	"database/sql"
	"fmt"
)

const editColumns = `edit_id, session_id, bond_id, time, field, input, price, zspread, asm, errors, valid`

// GetEdit returns a single edit by ID.
func (j *SQLite) GetEdit(editID string) (EditRecord, error) {
	row := j.db.QueryRow(`SELECT `+editColumns+` FROM edits WHERE edit_id = ?`, editID)

	rec, err := scanEdit(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return EditRecord{}, fmt.Errorf("edit %q not found", editID)
		}
		return EditRecord{}, err
	}
	return rec, nil
}

// ListEdits returns the edits of a session in the order they were made.
// An empty sessionID lists every session.
func (j *SQLite) ListEdits(sessionID string) ([]EditRecord, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if sessionID == "" {
		rows, err = j.db.Query(`SELECT ` + editColumns + ` FROM edits ORDER BY time ASC, edit_id ASC`)
	} else {
		rows, err = j.db.Query(`SELECT `+editColumns+` FROM edits WHERE session_id = ? ORDER BY time ASC, edit_id ASC`, sessionID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EditRecord
	for rows.Next() {
		rec, err := scanEdit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCommits returns the commit events of a session.
func (j *SQLite) ListCommits(sessionID string) ([]CommitRecord, error) {
	rows, err := j.db.Query(`
		SELECT commit_id, session_id, bond_id, time
		FROM commits
		WHERE session_id = ?
		ORDER BY time ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CommitRecord
	for rows.Next() {
		var rec CommitRecord
		if err := rows.Scan(&rec.CommitID, &rec.SessionID, &rec.BondID, &rec.Time); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEdit(s scanner) (EditRecord, error) {
	var rec EditRecord
	err := s.Scan(
		&rec.EditID,
		&rec.SessionID,
		&rec.BondID,
		&rec.Time,
		&rec.Field,
		&rec.Input,
		&rec.Price,
		&rec.ZSpread,
		&rec.ASM,
		&rec.Errors,
		&rec.Valid,
	)
	return rec, err
}
