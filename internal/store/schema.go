package store

// Schema is the report archive schema.
const Schema = `
-- Completed insight runs
CREATE TABLE IF NOT EXISTS reports (
    id            TEXT PRIMARY KEY,
    csv_path      TEXT NOT NULL,
    instruction   TEXT NOT NULL,
    model         TEXT NOT NULL DEFAULT '',
    review_count  INTEGER NOT NULL,
    chunk_count   INTEGER NOT NULL,
    final_report  TEXT NOT NULL,
    created_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_time ON reports(created_at DESC);

-- Per-chunk model responses of a run
CREATE TABLE IF NOT EXISTS chunk_reports (
    report_id    TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
    chunk_index  INTEGER NOT NULL,
    content      TEXT NOT NULL,
    PRIMARY KEY (report_id, chunk_index)
);
`
