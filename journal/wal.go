package journal

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"
)

const (
	DefaultWALDir = "./wal/journal"
	segmentLimit  = 100
	maxSegments   = 10

	editKeyPrefix   = "edit_"
	commitKeyPrefix = "commit_"
)

// WAL is an append-only journal on top of gowal.
type WAL struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

func NewWAL(dir string) (*WAL, error) {
	if dir == "" {
		dir = DefaultWALDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "journal_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init journal WAL")
	}

	return &WAL{wal: wal}, nil
}

func (w *WAL) RecordEdit(e EditRecord) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "marshal edit")
	}
	return w.write(editKeyPrefix+e.EditID, payload)
}

func (w *WAL) RecordCommit(c CommitRecord) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal commit")
	}
	return w.write(commitKeyPrefix+c.CommitID, payload)
}

func (w *WAL) write(key string, payload []byte) error {
	if w == nil || w.wal == nil {
		return errors.New("journal WAL is not initialized")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	next := w.wal.CurrentIndex() + 1
	return w.wal.Write(next, key, payload)
}

// Replay returns every edit and commit written after index, in write order.
func (w *WAL) Replay(index uint64) ([]EditRecord, []CommitRecord, error) {
	if w == nil || w.wal == nil {
		return nil, nil, errors.New("journal WAL is not initialized")
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	var (
		edits   []EditRecord
		commits []CommitRecord
	)
	for idx := index + 1; idx <= w.wal.CurrentIndex(); idx++ {
		key, payload, err := w.wal.Get(idx)
		if err != nil {
			continue
		}

		switch {
		case strings.HasPrefix(key, editKeyPrefix):
			var e EditRecord
			if err := json.Unmarshal(payload, &e); err != nil {
				return nil, nil, errors.Wrap(err, "decode edit")
			}
			edits = append(edits, e)
		case strings.HasPrefix(key, commitKeyPrefix):
			var c CommitRecord
			if err := json.Unmarshal(payload, &c); err != nil {
				return nil, nil, errors.Wrap(err, "decode commit")
			}
			commits = append(commits, c)
		}
	}
	return edits, commits, nil
}

func (w *WAL) CurrentIndex() uint64 {
	if w == nil || w.wal == nil {
		return 0
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.wal.CurrentIndex()
}

func (w *WAL) Close() error {
	if w == nil || w.wal == nil {
		return errors.New("journal WAL is not initialized")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return w.wal.Close()
}
