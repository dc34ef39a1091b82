package journal

const Schema = `
CREATE TABLE IF NOT EXISTS journal_kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);
`
