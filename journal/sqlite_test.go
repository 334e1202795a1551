package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('edits','commits')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["edits"])
	assert.True(t, found["commits"])
}

func TestSQLiteRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := NewSQLite("")
	assert.Error(t, err)
}

func TestSQLiteEditsRoundTrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	t0 := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	first := sampleEdit("E1", "S1", t0)
	second := sampleEdit("E2", "S1", t0.Add(time.Second))
	second.Field = "ZSpread"
	second.Valid = true
	second.Errors = ""
	second.ASM = fp(0.5)
	other := sampleEdit("E3", "S2", t0)

	require.NoError(t, j.RecordEdit(first))
	require.NoError(t, j.RecordEdit(second))
	require.NoError(t, j.RecordEdit(other))

	got, err := j.ListEdits("S1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "E1", got[0].EditID)
	assert.True(t, got[0].Time.Equal(t0))
	require.NotNil(t, got[0].ZSpread)
	assert.Equal(t, 0.0123, *got[0].ZSpread)
	assert.Nil(t, got[0].ASM)
	assert.False(t, got[0].Valid)
	assert.Equal(t, "ASM: no curve", got[0].Errors)

	assert.Equal(t, "E2", got[1].EditID)
	assert.True(t, got[1].Valid)
	require.NotNil(t, got[1].ASM)
	assert.Equal(t, 0.5, *got[1].ASM)

	all, err := j.ListEdits("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	one, err := j.GetEdit("E3")
	require.NoError(t, err)
	assert.Equal(t, "S2", one.SessionID)

	_, err = j.GetEdit("missing")
	assert.Error(t, err)
}

func TestSQLiteDuplicateEditRejected(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	e := sampleEdit("E1", "S1", time.Now())
	require.NoError(t, j.RecordEdit(e))
	assert.Error(t, j.RecordEdit(e))
}

func TestSQLiteCommits(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	require.NoError(t, j.RecordCommit(CommitRecord{CommitID: "C1", SessionID: "S1", BondID: "XS123", Time: at}))

	got, err := j.ListCommits("S1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "C1", got[0].CommitID)
	assert.Equal(t, "XS123", got[0].BondID)
	assert.True(t, got[0].Time.Equal(at))

	none, err := j.ListCommits("S2")
	require.NoError(t, err)
	assert.Empty(t, none)
}
