package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hearthside/planner/internal/model"
	"github.com/hearthside/planner/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	childID := "c-" + uuid.New().String()

	// Children
	child, err := s.Children().Create(ctx, &model.Child{ChildID: childID, Name: "Maya", TimeZone: "UTC"})
	if err != nil {
		t.Fatalf("CreateChild: %v", err)
	}
	if got, err := s.Children().Get(ctx, child.ChildID); err != nil || got.Name != "Maya" {
		t.Fatalf("GetChild: got=%v err=%v", got, err)
	}
	if _, err := s.Children().Get(ctx, "missing"); !model.IsNotFoundError(err) {
		t.Fatalf("GetChild missing: want NotFoundError, got %v", err)
	}

	// Sessions
	sess, err := s.Sessions().Create(ctx, &model.Session{
		ChildID:          childID,
		Title:            "Fractions",
		EstimatedMinutes: 45,
		Status:           model.StatusScheduled,
		Commitment:       model.CommitmentFlexible,
		ScheduledDay:     3,
		StartTime:        "09:00",
		EndTime:          "09:45",
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.SessionID == "" {
		t.Fatal("CreateSession: empty session id")
	}
	if got, err := s.Sessions().Get(ctx, childID, sess.SessionID); err != nil || got.Title != "Fractions" {
		t.Fatalf("GetSession: got=%v err=%v", got, err)
	}
	if lst, err := s.Sessions().ListByChild(ctx, childID); err != nil || len(lst) != 1 {
		t.Fatalf("ListByChild: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Sessions().ListByChildAndDay(ctx, childID, 3); err != nil || len(lst) != 1 {
		t.Fatalf("ListByChildAndDay(3): n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Sessions().ListByChildAndDay(ctx, childID, 4); err != nil || len(lst) != 0 {
		t.Fatalf("ListByChildAndDay(4): n=%d err=%v", len(lst), err)
	}

	date := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	moved, err := s.Sessions().UpdateSchedule(ctx, childID, sess.SessionID, 1, "10:00", "10:45", &date)
	if err != nil {
		t.Fatalf("UpdateSchedule: %v", err)
	}
	if moved.ScheduledDay != 1 || moved.StartTime != "10:00" || moved.Status != model.StatusScheduled {
		t.Fatalf("UpdateSchedule: unexpected session %+v", moved)
	}
	if moved.ScheduledDate == nil || !moved.ScheduledDate.Equal(date) {
		t.Fatalf("UpdateSchedule: date not persisted: %v", moved.ScheduledDate)
	}
	if _, err := s.Sessions().UpdateSchedule(ctx, childID, "missing", 1, "10:00", "10:45", nil); !model.IsNotFoundError(err) {
		t.Fatalf("UpdateSchedule missing: want NotFoundError, got %v", err)
	}

	// Time blocks
	blk, err := s.TimeBlocks().Create(ctx, &model.TimeBlock{
		ChildID:    childID,
		Weekday:    2,
		StartTime:  "13:00",
		EndTime:    "14:00",
		Label:      "Swim practice",
		Imported:   true,
		Commitment: model.CommitmentFixed,
		SourceID:   "cal-evt-1",
	})
	if err != nil {
		t.Fatalf("CreateTimeBlock: %v", err)
	}
	if blk.BlockID == "" {
		t.Fatal("CreateTimeBlock: empty block id")
	}
	if lst, err := s.TimeBlocks().ListByChild(ctx, childID); err != nil || len(lst) != 1 {
		t.Fatalf("ListTimeBlocks: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.TimeBlocks().ListBySource(ctx, childID, "cal-evt-1"); err != nil || len(lst) != 1 || !lst[0].Imported {
		t.Fatalf("ListBySource: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.TimeBlocks().ListBySource(ctx, childID, "cal-evt-2"); err != nil || len(lst) != 0 {
		t.Fatalf("ListBySource other: n=%d err=%v", len(lst), err)
	}

	// Catch-ups
	missed := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	late, err := s.CatchUps().Create(ctx, &model.CatchUpSession{
		SessionID:        sess.SessionID,
		ChildID:          childID,
		Title:            "Fractions",
		EstimatedMinutes: 45,
		MissedDate:       missed,
		Priority:         3,
	})
	if err != nil {
		t.Fatalf("CreateCatchUp: %v", err)
	}
	urgent, err := s.CatchUps().Create(ctx, &model.CatchUpSession{
		SessionID:        sess.SessionID,
		ChildID:          childID,
		Title:            "Spelling",
		EstimatedMinutes: 30,
		MissedDate:       missed,
		Priority:         1,
	})
	if err != nil {
		t.Fatalf("CreateCatchUp: %v", err)
	}
	if late.Status != model.CatchUpPending || late.ReassignedTo != nil {
		t.Fatalf("CreateCatchUp: want pending with no reassignment, got %+v", late)
	}

	pending, err := s.CatchUps().ListPending(ctx, childID)
	if err != nil || len(pending) != 2 {
		t.Fatalf("ListPending: n=%d err=%v", len(pending), err)
	}
	if pending[0].CatchUpID != urgent.CatchUpID {
		t.Fatalf("ListPending: want priority order, got %s first", pending[0].Title)
	}

	if err := s.CatchUps().MarkReassigned(ctx, childID, urgent.CatchUpID, "new-session"); err != nil {
		t.Fatalf("MarkReassigned: %v", err)
	}
	got, err := s.CatchUps().Get(ctx, childID, urgent.CatchUpID)
	if err != nil || got.Status != model.CatchUpReassigned || got.ReassignedTo == nil || *got.ReassignedTo != "new-session" {
		t.Fatalf("Get after reassign: got=%+v err=%v", got, err)
	}
	// reassigned is terminal: second transition must fail
	if err := s.CatchUps().MarkReassigned(ctx, childID, urgent.CatchUpID, "other"); !model.IsNotFoundError(err) {
		t.Fatalf("MarkReassigned twice: want NotFoundError, got %v", err)
	}
	if pending, err = s.CatchUps().ListPending(ctx, childID); err != nil || len(pending) != 1 {
		t.Fatalf("ListPending after reassign: n=%d err=%v", len(pending), err)
	}
}
