// Package journal keeps an audit trail of price edits and commit events.
// It records what the operator typed and what the editor derived from it;
// it is not a store for the committed market value.
package journal

import (
	"strings"
	"time"
)

// EditRecord is the state of the editor right after one field edit.
type EditRecord struct {
	EditID    string
	SessionID string
	BondID    string
	Time      time.Time
	Field     string // field the operator edited
	Input     string // value as typed
	Price     string // encoded price record after the edit
	ZSpread   *float64
	ASM       *float64
	Errors    string
	Valid     bool
}

// CommitRecord marks that the operator committed a session.
type CommitRecord struct {
	CommitID  string
	SessionID string
	BondID    string
	Time      time.Time
}

type Journal interface {
	RecordEdit(EditRecord) error
	RecordCommit(CommitRecord) error
	Close() error
}

// Options select and locate a journal backend.
type Options struct {
	Type        string // "csv", "sqlite", "wal" or "none"
	EditsFile   string
	CommitsFile string
	DBPath      string
	Dir         string
}

// Open creates the journal described by opts.
func Open(opts Options) (Journal, error) {
	switch strings.ToLower(opts.Type) {
	case "csv":
		return NewCSV(opts.EditsFile, opts.CommitsFile)
	case "sqlite":
		return NewSQLite(opts.DBPath)
	case "wal":
		return NewWAL(opts.Dir)
	case "", "none":
		return Nop{}, nil
	}
	return nil, &UnknownTypeError{Type: opts.Type}
}

type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return "unknown journal type " + e.Type
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordEdit(EditRecord) error     { return nil }
func (Nop) RecordCommit(CommitRecord) error { return nil }
func (Nop) Close() error                    { return nil }
