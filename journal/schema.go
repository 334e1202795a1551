package journal

const Schema = `
CREATE TABLE IF NOT EXISTS edits (
	edit_id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	bond_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	field TEXT NOT NULL,
	input TEXT NOT NULL,
	price TEXT NOT NULL,
	zspread REAL,
	asm REAL,
	errors TEXT NOT NULL,
	valid INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS commits (
	commit_id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	bond_id TEXT NOT NULL,
	time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_edits_session ON edits(session_id, time);
CREATE INDEX IF NOT EXISTS idx_commits_session ON commits(session_id);
`
