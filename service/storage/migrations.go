package storage

const schemaV1 = `
CREATE TABLE IF NOT EXISTS runs (
    run_id          INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid        TEXT UNIQUE NOT NULL,
    region          TEXT NOT NULL,
    log_file_name   TEXT NOT NULL,
    start_date      TEXT,
    end_date        TEXT,
    started_at      DATETIME NOT NULL,
    finished_at     DATETIME NOT NULL,
    total_count     INTEGER DEFAULT 0,
    succeeded_count INTEGER DEFAULT 0,
    failed_count    INTEGER DEFAULT 0,
    skipped_count   INTEGER DEFAULT 0,
    cli_version     TEXT,
    created_at      DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_started
    ON runs(started_at DESC);

CREATE TABLE IF NOT EXISTS outcomes (
    outcome_id      INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id          INTEGER NOT NULL,
    position        INTEGER NOT NULL,
    profile         TEXT NOT NULL,
    status          TEXT NOT NULL,
    account_id      TEXT,
    output_file     TEXT NOT NULL,
    exit_code       INTEGER DEFAULT 0,
    reason          TEXT,
    duration_ms     INTEGER DEFAULT 0,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_outcomes_run ON outcomes(run_id, position);
CREATE INDEX IF NOT EXISTS idx_outcomes_profile ON outcomes(profile);
`
