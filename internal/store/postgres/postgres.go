package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/hearthside/planner/internal/model"
	"github.com/hearthside/planner/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres-backed planner store. Schema management is
// external (migrations run by the deployment, not the service).
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

// Bootstrap performs a connectivity check to ensure Postgres is reachable.
func Bootstrap(ctx context.Context, dsn string) error {
	if dsn == "" {
		return nil
	}
	db, err := Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return db.PingContext(ctx)
}

type pgStore struct{ db *sql.DB }

func (s *pgStore) Children() store.Children     { return &children{db: s.db} }
func (s *pgStore) Sessions() store.Sessions     { return &sessions{db: s.db} }
func (s *pgStore) TimeBlocks() store.TimeBlocks { return &timeBlocks{db: s.db} }
func (s *pgStore) CatchUps() store.CatchUps     { return &catchUps{db: s.db} }

// HealthPing reports backend connectivity.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Children ---

type children struct{ db *sql.DB }

func (c *children) Create(ctx context.Context, m *model.Child) (*model.Child, error) {
	id := m.ChildID
	if id == "" {
		id = uuid.New().String()
	}
	tz := m.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	now := time.Now().UTC()
	_, err := c.db.ExecContext(ctx, `
        INSERT INTO children (child_id, name, time_zone, creation_time)
        VALUES ($1,$2,$3,$4)
    `, id, m.Name, tz, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.ChildID = id
	out.TimeZone = tz
	out.CreationTime = now
	return &out, nil
}

func (c *children) Get(ctx context.Context, childID string) (*model.Child, error) {
	var out model.Child
	row := c.db.QueryRowContext(ctx, `
        SELECT child_id, name, time_zone, creation_time FROM children WHERE child_id=$1
    `, childID)
	if err := row.Scan(&out.ChildID, &out.Name, &out.TimeZone, &out.CreationTime); err != nil {
		if err == sql.ErrNoRows {
			return nil, model.NewNotFoundError("childId", "child not found")
		}
		return nil, err
	}
	return &out, nil
}

func (c *children) Delete(ctx context.Context, childID string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM children WHERE child_id=$1`, childID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.NewNotFoundError("childId", "child not found")
	}
	return nil
}

// --- Sessions ---

type sessions struct{ db *sql.DB }

const sessionCols = `session_id, child_id, topic_id, title, estimated_minutes, status, commitment,
    scheduled_day, scheduled_date, start_time, end_time, creation_time`

func (s *sessions) Create(ctx context.Context, m *model.Session) (*model.Session, error) {
	id := m.SessionID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO sessions (`+sessionCols+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    `, id, m.ChildID, m.TopicID, m.Title, m.EstimatedMinutes, string(m.Status), string(m.Commitment),
		m.ScheduledDay, m.ScheduledDate, m.StartTime, m.EndTime, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.SessionID = id
	out.CreationTime = now
	return &out, nil
}

func (s *sessions) Get(ctx context.Context, childID, sessionID string) (*model.Session, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT `+sessionCols+` FROM sessions WHERE child_id=$1 AND session_id=$2
    `, childID, sessionID)
	out, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, model.NewNotFoundError("sessionId", "session not found")
	}
	return out, err
}

func (s *sessions) ListByChild(ctx context.Context, childID string) ([]*model.Session, error) {
	return s.query(ctx, `
        SELECT `+sessionCols+` FROM sessions WHERE child_id=$1 ORDER BY creation_time
    `, childID)
}

func (s *sessions) ListByChildAndDay(ctx context.Context, childID string, weekday int) ([]*model.Session, error) {
	return s.query(ctx, `
        SELECT `+sessionCols+` FROM sessions WHERE child_id=$1 AND scheduled_day=$2 ORDER BY start_time
    `, childID, weekday)
}

func (s *sessions) UpdateSchedule(ctx context.Context, childID, sessionID string, weekday int, start, end string, date *time.Time) (*model.Session, error) {
	res, err := s.db.ExecContext(ctx, `
        UPDATE sessions SET scheduled_day=$1, start_time=$2, end_time=$3, scheduled_date=$4, status=$5
        WHERE child_id=$6 AND session_id=$7
    `, weekday, start, end, date, string(model.StatusScheduled), childID, sessionID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.NewNotFoundError("sessionId", "session not found")
	}
	return s.Get(ctx, childID, sessionID)
}

func (s *sessions) query(ctx context.Context, q string, args ...any) ([]*model.Session, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Session
	for rows.Next() {
		m, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanSession(r rowScanner) (*model.Session, error) {
	var m model.Session
	var status, commitment string
	var date sql.NullTime
	if err := r.Scan(&m.SessionID, &m.ChildID, &m.TopicID, &m.Title, &m.EstimatedMinutes,
		&status, &commitment, &m.ScheduledDay, &date, &m.StartTime, &m.EndTime, &m.CreationTime); err != nil {
		return nil, err
	}
	m.Status = model.SessionStatus(status)
	m.Commitment = model.CommitmentKind(commitment)
	if date.Valid {
		d := date.Time
		m.ScheduledDate = &d
	}
	return &m, nil
}

// --- Time blocks ---

type timeBlocks struct{ db *sql.DB }

const blockCols = `block_id, child_id, weekday, start_time, end_time, label, imported, commitment, source_id, creation_time`

func (t *timeBlocks) Create(ctx context.Context, m *model.TimeBlock) (*model.TimeBlock, error) {
	id := m.BlockID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := t.db.ExecContext(ctx, `
        INSERT INTO time_blocks (`+blockCols+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    `, id, m.ChildID, m.Weekday, m.StartTime, m.EndTime, m.Label, m.Imported, string(m.Commitment), m.SourceID, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.BlockID = id
	out.CreationTime = now
	return &out, nil
}

func (t *timeBlocks) ListByChild(ctx context.Context, childID string) ([]*model.TimeBlock, error) {
	return t.query(ctx, `
        SELECT `+blockCols+` FROM time_blocks WHERE child_id=$1 ORDER BY weekday, start_time
    `, childID)
}

func (t *timeBlocks) ListBySource(ctx context.Context, childID, sourceID string) ([]*model.TimeBlock, error) {
	return t.query(ctx, `
        SELECT `+blockCols+` FROM time_blocks WHERE child_id=$1 AND source_id=$2
    `, childID, sourceID)
}

func (t *timeBlocks) query(ctx context.Context, q string, args ...any) ([]*model.TimeBlock, error) {
	rows, err := t.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.TimeBlock
	for rows.Next() {
		var m model.TimeBlock
		var commitment string
		if err := rows.Scan(&m.BlockID, &m.ChildID, &m.Weekday, &m.StartTime, &m.EndTime,
			&m.Label, &m.Imported, &commitment, &m.SourceID, &m.CreationTime); err != nil {
			return nil, err
		}
		m.Commitment = model.CommitmentKind(commitment)
		out = append(out, &m)
	}
	return out, rows.Err()
}

// --- Catch-ups ---

type catchUps struct{ db *sql.DB }

const catchUpCols = `catch_up_id, session_id, child_id, topic_id, title, estimated_minutes,
    missed_date, priority, status, reassigned_to, creation_time`

func (c *catchUps) Create(ctx context.Context, m *model.CatchUpSession) (*model.CatchUpSession, error) {
	id := m.CatchUpID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := c.db.ExecContext(ctx, `
        INSERT INTO catch_up_sessions (`+catchUpCols+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    `, id, m.SessionID, m.ChildID, m.TopicID, m.Title, m.EstimatedMinutes,
		m.MissedDate, m.Priority, string(model.CatchUpPending), nil, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.CatchUpID = id
	out.Status = model.CatchUpPending
	out.ReassignedTo = nil
	out.CreationTime = now
	return &out, nil
}

func (c *catchUps) Get(ctx context.Context, childID, catchUpID string) (*model.CatchUpSession, error) {
	row := c.db.QueryRowContext(ctx, `
        SELECT `+catchUpCols+` FROM catch_up_sessions WHERE child_id=$1 AND catch_up_id=$2
    `, childID, catchUpID)
	out, err := scanCatchUp(row)
	if err == sql.ErrNoRows {
		return nil, model.NewNotFoundError("catchUpId", "catch-up record not found")
	}
	return out, err
}

func (c *catchUps) ListPending(ctx context.Context, childID string) ([]*model.CatchUpSession, error) {
	rows, err := c.db.QueryContext(ctx, `
        SELECT `+catchUpCols+` FROM catch_up_sessions
        WHERE child_id=$1 AND status=$2 ORDER BY priority, creation_time
    `, childID, string(model.CatchUpPending))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.CatchUpSession
	for rows.Next() {
		m, err := scanCatchUp(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (c *catchUps) MarkReassigned(ctx context.Context, childID, catchUpID, newSessionID string) error {
	res, err := c.db.ExecContext(ctx, `
        UPDATE catch_up_sessions SET status=$1, reassigned_to=$2
        WHERE child_id=$3 AND catch_up_id=$4 AND status=$5
    `, string(model.CatchUpReassigned), newSessionID, childID, catchUpID, string(model.CatchUpPending))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.NewNotFoundError("catchUpId", "pending catch-up record not found")
	}
	return nil
}

func scanCatchUp(r rowScanner) (*model.CatchUpSession, error) {
	var m model.CatchUpSession
	var status string
	var reassigned sql.NullString
	if err := r.Scan(&m.CatchUpID, &m.SessionID, &m.ChildID, &m.TopicID, &m.Title, &m.EstimatedMinutes,
		&m.MissedDate, &m.Priority, &status, &reassigned, &m.CreationTime); err != nil {
		return nil, err
	}
	m.Status = model.CatchUpStatus(status)
	if reassigned.Valid {
		v := reassigned.String
		m.ReassignedTo = &v
	}
	return &m, nil
}
