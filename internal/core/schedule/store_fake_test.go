package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hearthside/planner/internal/model"
	"github.com/hearthside/planner/internal/store"
)

// fakeStore is an in-memory store.Store for engine tests.
type fakeStore struct {
	children []*model.Child
	sessions []*model.Session
	blocks   []*model.TimeBlock
	catchUps []*model.CatchUpSession
	nextID   int
}

func newFakeStore() *fakeStore { return &fakeStore{} }

func (f *fakeStore) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) Children() store.Children     { return fakeChildren{f} }
func (f *fakeStore) Sessions() store.Sessions     { return fakeSessions{f} }
func (f *fakeStore) TimeBlocks() store.TimeBlocks { return fakeTimeBlocks{f} }
func (f *fakeStore) CatchUps() store.CatchUps     { return fakeCatchUps{f} }

type fakeChildren struct{ f *fakeStore }

func (c fakeChildren) Create(_ context.Context, m *model.Child) (*model.Child, error) {
	out := *m
	if out.ChildID == "" {
		out.ChildID = c.f.id("child")
	}
	c.f.children = append(c.f.children, &out)
	return &out, nil
}

func (c fakeChildren) Get(_ context.Context, childID string) (*model.Child, error) {
	for _, ch := range c.f.children {
		if ch.ChildID == childID {
			return ch, nil
		}
	}
	return nil, model.NewNotFoundError("childId", "child not found")
}

func (c fakeChildren) Delete(_ context.Context, childID string) error {
	for i, ch := range c.f.children {
		if ch.ChildID == childID {
			c.f.children = append(c.f.children[:i], c.f.children[i+1:]...)
			return nil
		}
	}
	return model.NewNotFoundError("childId", "child not found")
}

type fakeSessions struct{ f *fakeStore }

func (s fakeSessions) Create(_ context.Context, m *model.Session) (*model.Session, error) {
	out := *m
	if out.SessionID == "" {
		out.SessionID = s.f.id("sess")
	}
	s.f.sessions = append(s.f.sessions, &out)
	return &out, nil
}

func (s fakeSessions) Get(_ context.Context, childID, sessionID string) (*model.Session, error) {
	for _, sess := range s.f.sessions {
		if sess.ChildID == childID && sess.SessionID == sessionID {
			return sess, nil
		}
	}
	return nil, model.NewNotFoundError("sessionId", "session not found")
}

func (s fakeSessions) ListByChild(_ context.Context, childID string) ([]*model.Session, error) {
	var out []*model.Session
	for _, sess := range s.f.sessions {
		if sess.ChildID == childID {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (s fakeSessions) ListByChildAndDay(_ context.Context, childID string, weekday int) ([]*model.Session, error) {
	var out []*model.Session
	for _, sess := range s.f.sessions {
		if sess.ChildID == childID && sess.ScheduledDay == weekday {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (s fakeSessions) UpdateSchedule(ctx context.Context, childID, sessionID string, weekday int, start, end string, date *time.Time) (*model.Session, error) {
	sess, err := s.Get(ctx, childID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.ScheduledDay = weekday
	sess.StartTime = start
	sess.EndTime = end
	sess.ScheduledDate = date
	sess.Status = model.StatusScheduled
	return sess, nil
}

type fakeTimeBlocks struct{ f *fakeStore }

func (t fakeTimeBlocks) Create(_ context.Context, m *model.TimeBlock) (*model.TimeBlock, error) {
	out := *m
	if out.BlockID == "" {
		out.BlockID = t.f.id("blk")
	}
	t.f.blocks = append(t.f.blocks, &out)
	return &out, nil
}

func (t fakeTimeBlocks) ListByChild(_ context.Context, childID string) ([]*model.TimeBlock, error) {
	var out []*model.TimeBlock
	for _, b := range t.f.blocks {
		if b.ChildID == childID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (t fakeTimeBlocks) ListBySource(_ context.Context, childID, sourceID string) ([]*model.TimeBlock, error) {
	var out []*model.TimeBlock
	for _, b := range t.f.blocks {
		if b.ChildID == childID && b.SourceID == sourceID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeCatchUps struct{ f *fakeStore }

func (c fakeCatchUps) Create(_ context.Context, m *model.CatchUpSession) (*model.CatchUpSession, error) {
	out := *m
	if out.CatchUpID == "" {
		out.CatchUpID = c.f.id("cu")
	}
	out.Status = model.CatchUpPending
	out.ReassignedTo = nil
	c.f.catchUps = append(c.f.catchUps, &out)
	return &out, nil
}

func (c fakeCatchUps) Get(_ context.Context, childID, catchUpID string) (*model.CatchUpSession, error) {
	for _, cu := range c.f.catchUps {
		if cu.ChildID == childID && cu.CatchUpID == catchUpID {
			return cu, nil
		}
	}
	return nil, model.NewNotFoundError("catchUpId", "catch-up record not found")
}

func (c fakeCatchUps) ListPending(_ context.Context, childID string) ([]*model.CatchUpSession, error) {
	var out []*model.CatchUpSession
	for _, cu := range c.f.catchUps {
		if cu.ChildID == childID && cu.Status == model.CatchUpPending {
			out = append(out, cu)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out, nil
}

func (c fakeCatchUps) MarkReassigned(ctx context.Context, childID, catchUpID, newSessionID string) error {
	cu, err := c.Get(ctx, childID, catchUpID)
	if err != nil {
		return err
	}
	if cu.Status != model.CatchUpPending {
		return model.NewNotFoundError("catchUpId", "pending catch-up record not found")
	}
	cu.Status = model.CatchUpReassigned
	cu.ReassignedTo = &newSessionID
	return nil
}
