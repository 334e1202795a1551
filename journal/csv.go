package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

var (
	editHeader   = []string{"edit_id", "session_id", "bond_id", "time", "field", "input", "price", "zspread", "asm", "errors", "valid"}
	commitHeader = []string{"commit_id", "session_id", "bond_id", "time"}
)

type CSVJournal struct {
	edits   *csv.Writer
	commits *csv.Writer
	ef, cf  *os.File
}

func NewCSV(editsPath, commitsPath string) (*CSVJournal, error) {
	if editsPath == "" || commitsPath == "" {
		return nil, errors.New("csv journal needs both edits and commits paths")
	}
	ef, err := os.Create(editsPath)
	if err != nil {
		return nil, errors.Wrap(err, "create edits file")
	}
	cf, err := os.Create(commitsPath)
	if err != nil {
		_ = ef.Close()
		return nil, errors.Wrap(err, "create commits file")
	}

	ew := csv.NewWriter(ef)
	cw := csv.NewWriter(cf)

	if err := ew.Write(editHeader); err != nil {
		return nil, err
	}
	if err := cw.Write(commitHeader); err != nil {
		return nil, err
	}

	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{ew, cw, ef, cf}, nil
}

func (j *CSVJournal) RecordEdit(e EditRecord) error {
	err := j.edits.Write([]string{
		e.EditID,
		e.SessionID,
		e.BondID,
		e.Time.UTC().Format(time.RFC3339Nano),
		e.Field,
		e.Input,
		e.Price,
		f(e.ZSpread),
		f(e.ASM),
		e.Errors,
		strconv.FormatBool(e.Valid),
	})
	if err != nil {
		return err
	}

	j.edits.Flush()
	return j.edits.Error()
}

func (j *CSVJournal) RecordCommit(c CommitRecord) error {
	err := j.commits.Write([]string{
		c.CommitID,
		c.SessionID,
		c.BondID,
		c.Time.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	j.commits.Flush()
	return j.commits.Error()
}

func (j *CSVJournal) Close() error {
	j.edits.Flush()
	if err := j.edits.Error(); err != nil {
		return err
	}
	j.commits.Flush()
	if err := j.commits.Error(); err != nil {
		return err
	}

	if err := j.ef.Close(); err != nil {
		return err
	}
	if err := j.cf.Close(); err != nil {
		return err
	}
	return nil
}

// f formats an optional value; unset values become an empty cell.
func f(x *float64) string {
	if x == nil {
		return ""
	}
	return strconv.FormatFloat(*x, 'f', -1, 64)
}
