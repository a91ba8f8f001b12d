package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS loans (
    position             INTEGER PRIMARY KEY,
    name                 TEXT NOT NULL,
    principal            TEXT,
    start_date           TEXT,
    monthly_rate         TEXT,
    cumulative_payments  TEXT,
    status               TEXT,
    elapsed_months       INTEGER,
    current_debt         TEXT,
    current_debt_num     REAL,
    malformed            TEXT
);

CREATE TABLE IF NOT EXISTS report (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    as_of                TEXT NOT NULL,
    ledger_file          TEXT NOT NULL,
    total_receivable     TEXT NOT NULL,
    pending_count        INTEGER NOT NULL,
    paid_count           INTEGER NOT NULL,
    malformed_count      INTEGER NOT NULL,
    generated_at         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_loans_name ON loans(name);
CREATE INDEX IF NOT EXISTS idx_loans_status ON loans(status);
`
