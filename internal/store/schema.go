package store

// schema holds the full database schema. All statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL,
	domain        TEXT NOT NULL,
	url           TEXT NOT NULL,
	title         TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	technologies  TEXT NOT NULL DEFAULT '[]',
	headers       TEXT NOT NULL DEFAULT '{}',
	performance   TEXT NOT NULL DEFAULT '{}',
	security      TEXT NOT NULL DEFAULT '{}',
	seo           TEXT NOT NULL DEFAULT '{}',
	status_code   INTEGER NOT NULL DEFAULT 0,
	load_time_ms  INTEGER NOT NULL DEFAULT 0,
	search_count  INTEGER NOT NULL DEFAULT 1,
	last_analyzed INTEGER NOT NULL,
	created_at    INTEGER NOT NULL,
	UNIQUE (user_id, domain)
);

CREATE INDEX IF NOT EXISTS idx_analyses_user_last
	ON analyses (user_id, last_analyzed DESC);

CREATE TABLE IF NOT EXISTS request_history (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	method     TEXT NOT NULL,
	url        TEXT NOT NULL,
	headers    TEXT NOT NULL DEFAULT '{}',
	body       TEXT NOT NULL DEFAULT '',
	status     INTEGER NOT NULL DEFAULT 0,
	response   TEXT NOT NULL DEFAULT '',
	elapsed_ms INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_request_history_user_created
	ON request_history (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS bulk_jobs (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	urls       TEXT NOT NULL DEFAULT '[]',
	results    TEXT NOT NULL DEFAULT '[]',
	status     TEXT NOT NULL DEFAULT 'pending',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bulk_jobs_user_created
	ON bulk_jobs (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS comparisons (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	name       TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS comparison_sites (
	comparison_id TEXT NOT NULL REFERENCES comparisons(id) ON DELETE CASCADE,
	analysis_id   TEXT NOT NULL REFERENCES analyses(id) ON DELETE CASCADE,
	added_at      INTEGER NOT NULL,
	PRIMARY KEY (comparison_id, analysis_id)
);
`
