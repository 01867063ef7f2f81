// journal/schema.go
package journal

// Schema is the SQLite layout of the trade table. row_id is a ULID
// assigned at save time; ordering by it gives append order.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	row_id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	price_t1 REAL NOT NULL,
	quantity INTEGER NOT NULL,
	price_t2 REAL NOT NULL,
	profit REAL NOT NULL,
	kelly_fraction REAL,
	sharpe_ratio REAL,
	sharpe_inf INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_trades_time ON trades(time);
`
