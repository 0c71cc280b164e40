package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/nodari-ai/sales-engine/internal/db"
	"github.com/nodari-ai/sales-engine/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

const inquiryColumns = `id, lead, status, research, scoring, lead_score, lead_category,
	call_id, transcript, recording_url, call_duration_secs, analysis,
	proposal_ref, meeting_booked, meeting_link, follow_up_sent, created_at, updated_at`

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_inquiry":      `INSERT INTO inquiries (id, lead, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
	"get_inquiry":         `SELECT ` + inquiryColumns + ` FROM inquiries WHERE id = $1`,
	"get_by_call_id":      `SELECT ` + inquiryColumns + ` FROM inquiries WHERE call_id = $1`,
	"update_status":       `UPDATE inquiries SET status = $1, updated_at = $2 WHERE id = $3`,
	"save_research":       `UPDATE inquiries SET research = $1, scoring = $2, lead_score = $3, lead_category = $4, status = $5, updated_at = $6 WHERE id = $7`,
	"mark_call_initiated": `UPDATE inquiries SET call_id = $1, status = $2, updated_at = $3 WHERE id = $4`,
	"save_call_outcome":   `UPDATE inquiries SET transcript = $1, recording_url = $2, call_duration_secs = $3, status = $4, updated_at = $5 WHERE id = $6`,
	"save_analysis":       `UPDATE inquiries SET analysis = $1, updated_at = $2 WHERE id = $3`,
	"save_follow_up":      `UPDATE inquiries SET status = $1, proposal_ref = $2, meeting_booked = $3, meeting_link = $4, follow_up_sent = $5, updated_at = $6 WHERE id = $7`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS inquiries (
	id                 TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	lead               JSONB NOT NULL,
	status             TEXT NOT NULL DEFAULT 'new',
	research           JSONB,
	scoring            JSONB,
	lead_score         INTEGER NOT NULL DEFAULT 0,
	lead_category      TEXT NOT NULL DEFAULT '',
	call_id            TEXT,
	transcript         TEXT NOT NULL DEFAULT '',
	recording_url      TEXT NOT NULL DEFAULT '',
	call_duration_secs INTEGER NOT NULL DEFAULT 0,
	analysis           JSONB,
	proposal_ref       TEXT NOT NULL DEFAULT '',
	meeting_booked     BOOLEAN NOT NULL DEFAULT false,
	meeting_link       TEXT NOT NULL DEFAULT '',
	follow_up_sent     BOOLEAN NOT NULL DEFAULT false,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_inquiries_status ON inquiries(status);
CREATE INDEX IF NOT EXISTS idx_inquiries_category ON inquiries(lead_category);
CREATE UNIQUE INDEX IF NOT EXISTS idx_inquiries_call_id ON inquiries(call_id) WHERE call_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_inquiries_created_at ON inquiries(created_at);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateInquiry(ctx context.Context, lead model.Lead) (*model.InquiryRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	leadJSON, err := json.Marshal(lead)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal lead")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO inquiries (id, lead, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		id, leadJSON, string(model.StatusNew), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert inquiry")
	}

	return &model.InquiryRecord{
		ID:        id,
		Lead:      lead,
		Status:    model.StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *PostgresStore) GetInquiry(ctx context.Context, id string) (*model.InquiryRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+inquiryColumns+` FROM inquiries WHERE id = $1`, id)
	rec, err := scanInquiry(row)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get inquiry %s", id)
	}
	return rec, nil
}

// GetInquiryByCallID returns nil without error when no inquiry carries the
// call ID, so webhook handlers can drop unknown events without treating the
// lookup as a failure.
func (s *PostgresStore) GetInquiryByCallID(ctx context.Context, callID string) (*model.InquiryRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+inquiryColumns+` FROM inquiries WHERE call_id = $1`, callID)
	rec, err := scanInquiry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get inquiry by call %s", callID)
	}
	return rec, nil
}

func (s *PostgresStore) ListInquiries(ctx context.Context, filter InquiryFilter) ([]model.InquiryRecord, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, string(filter.Status))
		argIdx++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(` AND lead_category = $%d`, argIdx)
		args = append(args, string(filter.Category))
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list inquiries")
	}
	defer rows.Close()

	var records []model.InquiryRecord
	for rows.Next() {
		rec, err := scanInquiry(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan inquiry")
		}
		records = append(records, *rec)
	}
	return records, eris.Wrap(rows.Err(), "postgres: list inquiries")
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status model.LeadStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE inquiries SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update status %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("inquiry not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) SaveResearch(ctx context.Context, id string, research *model.ResearchResult, scoring *model.LeadScoring, status model.LeadStatus) error {
	researchJSON, err := json.Marshal(research)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal research")
	}
	scoringJSON, err := json.Marshal(scoring)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal scoring")
	}

	score := 0
	category := ""
	if scoring != nil {
		score = scoring.TotalScore
		category = string(scoring.Category)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE inquiries SET research = $1, scoring = $2, lead_score = $3, lead_category = $4, status = $5, updated_at = $6 WHERE id = $7`,
		researchJSON, scoringJSON, score, category, string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: save research %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("inquiry not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) MarkCallInitiated(ctx context.Context, id, callID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE inquiries SET call_id = $1, status = $2, updated_at = $3 WHERE id = $4`,
		callID, string(model.StatusCallInitiated), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: mark call initiated %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("inquiry not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) SaveCallOutcome(ctx context.Context, id, transcript, recordingURL string, durationSecs int) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE inquiries SET transcript = $1, recording_url = $2, call_duration_secs = $3, status = $4, updated_at = $5 WHERE id = $6`,
		transcript, recordingURL, durationSecs, string(model.StatusCallCompleted), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: save call outcome %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("inquiry not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) SaveAnalysis(ctx context.Context, id string, analysis *model.CallAnalysis) error {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal analysis")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE inquiries SET analysis = $1, updated_at = $2 WHERE id = $3`,
		analysisJSON, time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: save analysis %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("inquiry not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) SaveFollowUp(ctx context.Context, id string, outcome FollowUpOutcome) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE inquiries SET status = $1, proposal_ref = $2, meeting_booked = $3, meeting_link = $4, follow_up_sent = $5, updated_at = $6 WHERE id = $7`,
		string(outcome.Status), outcome.ProposalRef, outcome.MeetingBooked, outcome.MeetingLink, outcome.FollowUpSent, time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: save follow-up %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("inquiry not found: %s", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInquiry(row rowScanner) (*model.InquiryRecord, error) {
	var (
		rec          model.InquiryRecord
		leadJSON     []byte
		researchJSON []byte
		scoringJSON  []byte
		analysisJSON []byte
		callID       *string
		category     string
	)

	err := row.Scan(
		&rec.ID, &leadJSON, &rec.Status, &researchJSON, &scoringJSON,
		&rec.LeadScore, &category, &callID, &rec.Transcript, &rec.RecordingURL,
		&rec.CallDurationSecs, &analysisJSON, &rec.ProposalRef,
		&rec.MeetingBooked, &rec.MeetingLink, &rec.FollowUpSent,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(leadJSON, &rec.Lead); err != nil {
		return nil, eris.Wrap(err, "unmarshal lead")
	}
	rec.LeadCategory = model.LeadCategory(category)
	if callID != nil {
		rec.CallID = *callID
	}
	if len(researchJSON) > 0 {
		rec.Research = &model.ResearchResult{}
		if err := json.Unmarshal(researchJSON, rec.Research); err != nil {
			return nil, eris.Wrap(err, "unmarshal research")
		}
	}
	if len(scoringJSON) > 0 {
		rec.ScoringDetails = &model.LeadScoring{}
		if err := json.Unmarshal(scoringJSON, rec.ScoringDetails); err != nil {
			return nil, eris.Wrap(err, "unmarshal scoring")
		}
	}
	if len(analysisJSON) > 0 {
		rec.Analysis = &model.CallAnalysis{}
		if err := json.Unmarshal(analysisJSON, rec.Analysis); err != nil {
			return nil, eris.Wrap(err, "unmarshal analysis")
		}
	}
	return &rec, nil
}
