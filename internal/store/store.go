package store

import (
	"context"
	"time"

	"github.com/hearthside/planner/internal/model"
)

// Store exposes persistence operations required by the scheduling engine and
// the API layer. Implementations live under internal/store/<driver>/
// (e.g., sqlite, postgres).
type Store interface {
	Children() Children
	Sessions() Sessions
	TimeBlocks() TimeBlocks
	CatchUps() CatchUps
}

type Children interface {
	Create(ctx context.Context, c *model.Child) (*model.Child, error)
	Get(ctx context.Context, childID string) (*model.Child, error)
	Delete(ctx context.Context, childID string) error
}

type Sessions interface {
	Create(ctx context.Context, s *model.Session) (*model.Session, error)
	Get(ctx context.Context, childID, sessionID string) (*model.Session, error)
	ListByChild(ctx context.Context, childID string) ([]*model.Session, error)
	ListByChildAndDay(ctx context.Context, childID string, weekday int) ([]*model.Session, error)
	// UpdateSchedule places the session on a weekday and time-of-day slot.
	// date, when non-nil, pins the placement to a concrete calendar date.
	UpdateSchedule(ctx context.Context, childID, sessionID string, weekday int, start, end string, date *time.Time) (*model.Session, error)
}

type TimeBlocks interface {
	Create(ctx context.Context, b *model.TimeBlock) (*model.TimeBlock, error)
	ListByChild(ctx context.Context, childID string) ([]*model.TimeBlock, error)
	// ListBySource returns blocks previously imported from the given external
	// source id, used to de-duplicate repeated calendar imports.
	ListBySource(ctx context.Context, childID, sourceID string) ([]*model.TimeBlock, error)
}

type CatchUps interface {
	Create(ctx context.Context, cu *model.CatchUpSession) (*model.CatchUpSession, error)
	Get(ctx context.Context, childID, catchUpID string) (*model.CatchUpSession, error)
	// ListPending returns unresolved catch-up records ordered by ascending
	// priority (most urgent first).
	ListPending(ctx context.Context, childID string) ([]*model.CatchUpSession, error)
	MarkReassigned(ctx context.Context, childID, catchUpID, newSessionID string) error
}
