package callrecords

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PostgresStore implements Store on top of database/sql.
//
// Assumed table:
//
//	call_records (
//	  call_key TEXT PRIMARY KEY,
//	  status TEXT NOT NULL,
//	  prospect_id TEXT, caller_id TEXT, to_number TEXT,
//	  outcome TEXT, notes TEXT,
//	  recording_url TEXT, duration_seconds INT,
//	  attempted_at TIMESTAMPTZ NOT NULL,
//	  updated_at TIMESTAMPTZ NOT NULL
//	)
//
// The merge-upsert rides the primary key: INSERT ... ON CONFLICT serializes
// racing upserts for the same key at the row, and COALESCE against the
// stored column makes the update field-level (NULL parameter = leave as-is).
// attempted_at is only ever written by the INSERT arm.

type PostgresStore struct {
	db *sql.DB

	// opTimeout bounds each storage call; a timeout propagates to the caller
	// so the webhook sender retries.
	opTimeout time.Duration

	clock func() time.Time
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, opTimeout: 5 * time.Second, clock: time.Now}
}

const callRecordColumns = `
call_key, status, prospect_id, caller_id, to_number, outcome, notes,
recording_url, duration_seconds, attempted_at, updated_at
`

func (s *PostgresStore) Upsert(ctx context.Context, key string, patch Patch) (CallRecord, error) {
	if key == "" {
		return CallRecord{}, ErrInvalidArgument
	}
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	const q = `
INSERT INTO call_records (` + callRecordColumns + `)
VALUES ($1, COALESCE($2, 'pending'), $3, $4, $5, COALESCE($6, 'Call in progress'),
        $7, $8, $9, $10, $10)
ON CONFLICT (call_key) DO UPDATE SET
	status           = COALESCE($2, call_records.status),
	prospect_id      = COALESCE($3, call_records.prospect_id),
	caller_id        = COALESCE($4, call_records.caller_id),
	to_number        = COALESCE($5, call_records.to_number),
	outcome          = COALESCE($6, call_records.outcome),
	notes            = COALESCE($7, call_records.notes),
	recording_url    = COALESCE($8, call_records.recording_url),
	duration_seconds = COALESCE($9, call_records.duration_seconds),
	updated_at       = $10
RETURNING ` + callRecordColumns + `
`
	now := s.clock().UTC()
	rec, err := scanCallRecord(s.db.QueryRowContext(ctx, q,
		key,
		patch.Status,
		patch.ProspectID,
		patch.CallerID,
		patch.To,
		patch.Outcome,
		patch.Notes,
		patch.RecordingURL,
		patch.DurationSeconds,
		now,
	))
	if err != nil {
		return CallRecord{}, fmt.Errorf("upsert call record: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) GetByKey(ctx context.Context, key string) (CallRecord, error) {
	if key == "" {
		return CallRecord{}, ErrInvalidArgument
	}
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	const q = `
SELECT ` + callRecordColumns + `
FROM call_records
WHERE call_key = $1
`
	return scanCallRecord(s.db.QueryRowContext(ctx, q, key))
}

func (s *PostgresStore) LatestFor(ctx context.Context, prospectID, callerID string) (CallRecord, error) {
	if prospectID == "" || callerID == "" {
		return CallRecord{}, ErrInvalidArgument
	}
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	const q = `
SELECT ` + callRecordColumns + `
FROM call_records
WHERE prospect_id = $1 AND caller_id = $2
ORDER BY attempted_at DESC
LIMIT 1
`
	return scanCallRecord(s.db.QueryRowContext(ctx, q, prospectID, callerID))
}

func (s *PostgresStore) ListByProspect(ctx context.Context, prospectID string) ([]CallRecord, error) {
	if prospectID == "" {
		return nil, ErrInvalidArgument
	}
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	const q = `
SELECT ` + callRecordColumns + `
FROM call_records
WHERE prospect_id = $1
ORDER BY attempted_at DESC
`
	return s.list(ctx, q, prospectID)
}

func (s *PostgresStore) ListByCaller(ctx context.Context, callerID string, from, to time.Time) ([]CallRecord, error) {
	if callerID == "" {
		return nil, ErrInvalidArgument
	}
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	const q = `
SELECT ` + callRecordColumns + `
FROM call_records
WHERE caller_id = $1 AND attempted_at >= $2 AND attempted_at <= $3
ORDER BY attempted_at DESC
`
	return s.list(ctx, q, callerID, from.UTC(), to.UTC())
}

func (s *PostgresStore) list(ctx context.Context, q string, args ...any) ([]CallRecord, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CallRecord, 0)
	for rows.Next() {
		rec, err := scanCallRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCallRecord(row rowScanner) (CallRecord, error) {
	var rec CallRecord
	var prospectID, callerID, to, outcome, notes, recordingURL sql.NullString
	var duration sql.NullInt64
	if err := row.Scan(
		&rec.CallKey,
		&rec.Status,
		&prospectID,
		&callerID,
		&to,
		&outcome,
		&notes,
		&recordingURL,
		&duration,
		&rec.AttemptedAt,
		&rec.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CallRecord{}, ErrNotFound
		}
		return CallRecord{}, err
	}
	rec.ProspectID = prospectID.String
	rec.CallerID = callerID.String
	rec.To = to.String
	rec.Outcome = outcome.String
	rec.Notes = notes.String
	rec.RecordingURL = recordingURL.String
	rec.DurationSeconds = int(duration.Int64)
	return rec, nil
}
