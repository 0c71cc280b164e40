package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/nodari-ai/sales-engine/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. It backs local
// development and tests; production deployments use PostgresStore.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: sqlDB}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS inquiries (
	id                 TEXT PRIMARY KEY,
	lead               TEXT NOT NULL,
	status             TEXT NOT NULL DEFAULT 'new',
	research           TEXT,
	scoring            TEXT,
	lead_score         INTEGER NOT NULL DEFAULT 0,
	lead_category      TEXT NOT NULL DEFAULT '',
	call_id            TEXT,
	transcript         TEXT NOT NULL DEFAULT '',
	recording_url      TEXT NOT NULL DEFAULT '',
	call_duration_secs INTEGER NOT NULL DEFAULT 0,
	analysis           TEXT,
	proposal_ref       TEXT NOT NULL DEFAULT '',
	meeting_booked     INTEGER NOT NULL DEFAULT 0,
	meeting_link       TEXT NOT NULL DEFAULT '',
	follow_up_sent     INTEGER NOT NULL DEFAULT 0,
	created_at         DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at         DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_inquiries_status ON inquiries(status);
CREATE INDEX IF NOT EXISTS idx_inquiries_category ON inquiries(lead_category);
CREATE UNIQUE INDEX IF NOT EXISTS idx_inquiries_call_id ON inquiries(call_id) WHERE call_id IS NOT NULL;
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateInquiry(ctx context.Context, lead model.Lead) (*model.InquiryRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	leadJSON, err := json.Marshal(lead)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal lead")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO inquiries (id, lead, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, string(leadJSON), string(model.StatusNew), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert inquiry")
	}

	return &model.InquiryRecord{
		ID:        id,
		Lead:      lead,
		Status:    model.StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *SQLiteStore) GetInquiry(ctx context.Context, id string) (*model.InquiryRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+inquiryColumns+` FROM inquiries WHERE id = ?`, id)
	rec, err := scanInquiry(row)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get inquiry %s", id)
	}
	return rec, nil
}

func (s *SQLiteStore) GetInquiryByCallID(ctx context.Context, callID string) (*model.InquiryRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+inquiryColumns+` FROM inquiries WHERE call_id = ?`, callID)
	rec, err := scanInquiry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get inquiry by call %s", callID)
	}
	return rec, nil
}

func (s *SQLiteStore) ListInquiries(ctx context.Context, filter InquiryFilter) ([]model.InquiryRecord, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE true`
	args := []any{}

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.Category != "" {
		query += ` AND lead_category = ?`
		args = append(args, string(filter.Category))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list inquiries")
	}
	defer rows.Close()

	var records []model.InquiryRecord
	for rows.Next() {
		rec, err := scanInquiry(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan inquiry")
		}
		records = append(records, *rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: list inquiries")
}

func (s *SQLiteStore) UpdateStatus(ctx context.Context, id string, status model.LeadStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE inquiries SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update status %s", id)
	}
	return checkRowsAffected(res, id)
}

func (s *SQLiteStore) SaveResearch(ctx context.Context, id string, research *model.ResearchResult, scoring *model.LeadScoring, status model.LeadStatus) error {
	researchJSON, err := json.Marshal(research)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal research")
	}
	scoringJSON, err := json.Marshal(scoring)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal scoring")
	}

	score := 0
	category := ""
	if scoring != nil {
		score = scoring.TotalScore
		category = string(scoring.Category)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE inquiries SET research = ?, scoring = ?, lead_score = ?, lead_category = ?, status = ?, updated_at = ? WHERE id = ?`,
		string(researchJSON), string(scoringJSON), score, category, string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: save research %s", id)
	}
	return checkRowsAffected(res, id)
}

func (s *SQLiteStore) MarkCallInitiated(ctx context.Context, id, callID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE inquiries SET call_id = ?, status = ?, updated_at = ? WHERE id = ?`,
		callID, string(model.StatusCallInitiated), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: mark call initiated %s", id)
	}
	return checkRowsAffected(res, id)
}

func (s *SQLiteStore) SaveCallOutcome(ctx context.Context, id, transcript, recordingURL string, durationSecs int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE inquiries SET transcript = ?, recording_url = ?, call_duration_secs = ?, status = ?, updated_at = ? WHERE id = ?`,
		transcript, recordingURL, durationSecs, string(model.StatusCallCompleted), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: save call outcome %s", id)
	}
	return checkRowsAffected(res, id)
}

func (s *SQLiteStore) SaveAnalysis(ctx context.Context, id string, analysis *model.CallAnalysis) error {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal analysis")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE inquiries SET analysis = ?, updated_at = ? WHERE id = ?`,
		string(analysisJSON), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: save analysis %s", id)
	}
	return checkRowsAffected(res, id)
}

func (s *SQLiteStore) SaveFollowUp(ctx context.Context, id string, outcome FollowUpOutcome) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE inquiries SET status = ?, proposal_ref = ?, meeting_booked = ?, meeting_link = ?, follow_up_sent = ?, updated_at = ? WHERE id = ?`,
		string(outcome.Status), outcome.ProposalRef, outcome.MeetingBooked, outcome.MeetingLink, outcome.FollowUpSent, time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: save follow-up %s", id)
	}
	return checkRowsAffected(res, id)
}

func checkRowsAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return fmt.Errorf("inquiry not found: %s", id)
	}
	return nil
}
