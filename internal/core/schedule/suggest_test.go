package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/hearthside/planner/internal/model"
)

// refMonday anchors the suggestion tests; 2024-04-01 is a Monday.
var refMonday = time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)

func TestSuggestSlots_EmptyWeek(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore()
	svc := NewService(fs)

	child, _ := fs.Children().Create(ctx, &model.Child{Name: "Ada"})
	sess := &model.Session{ChildID: child.ChildID, EstimatedMinutes: 30, Commitment: model.CommitmentFlexible}

	got, err := svc.SuggestSlots(ctx, sess, refMonday, refMonday)
	if err != nil {
		t.Fatalf("SuggestSlots: %v", err)
	}
	if len(got) != maxSuggestions {
		t.Fatalf("want %d suggestions, got %d", maxSuggestions, len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Difficulty < got[i-1].Difficulty {
			t.Fatalf("difficulty not non-decreasing at %d: %d < %d", i, got[i].Difficulty, got[i-1].Difficulty)
		}
	}

	top := got[0]
	wantDate := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	if !top.Date.Equal(wantDate) || top.Weekday != 2 {
		t.Fatalf("want first slot on Tue Apr 2, got %v weekday %d", top.Date, top.Weekday)
	}
	if top.StartTime != "09:00" || top.EndTime != "09:30" {
		t.Fatalf("want 09:00-09:30, got %s-%s", top.StartTime, top.EndTime)
	}
	// one day out, flexible commitment, no capacity pressure
	if top.Difficulty != 2 {
		t.Fatalf("want difficulty 2, got %d", top.Difficulty)
	}
	if !top.Recommended {
		t.Fatal("empty day should be recommended")
	}
}

func TestSuggestSlots_FullDayYieldsNothingThere(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore()
	svc := NewService(fs)

	child, _ := fs.Children().Create(ctx, &model.Child{Name: "Ada"})
	// Wednesdays carry 300 minutes; a 90-minute session no longer fits.
	mustCreateSession(t, fs, child.ChildID, model.CommitmentFixed, 300, 3)
	sess := &model.Session{ChildID: child.ChildID, EstimatedMinutes: 90, Commitment: model.CommitmentFlexible}

	got, err := svc.SuggestSlots(ctx, sess, refMonday, refMonday)
	if err != nil {
		t.Fatalf("SuggestSlots: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("other weekdays should still qualify")
	}
	for _, sug := range got {
		if sug.Weekday == 3 {
			t.Fatalf("Wednesday has only 60 minutes left, must not host a 90-minute session: %+v", sug)
		}
	}
}

func TestSuggestSlots_FixedCostsMoreThanFlexible(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore()
	svc := NewService(fs)
	child, _ := fs.Children().Create(ctx, &model.Child{Name: "Ada"})

	flexible := &model.Session{ChildID: child.ChildID, EstimatedMinutes: 30, Commitment: model.CommitmentFlexible}
	fixed := &model.Session{ChildID: child.ChildID, EstimatedMinutes: 30, Commitment: model.CommitmentFixed}

	flexGot, err := svc.SuggestSlots(ctx, flexible, refMonday, refMonday)
	if err != nil {
		t.Fatalf("SuggestSlots flexible: %v", err)
	}
	fixedGot, err := svc.SuggestSlots(ctx, fixed, refMonday, refMonday)
	if err != nil {
		t.Fatalf("SuggestSlots fixed: %v", err)
	}

	// stable ordering puts the same earliest slot first in both lists
	if !flexGot[0].Date.Equal(fixedGot[0].Date) || flexGot[0].StartTime != fixedGot[0].StartTime {
		t.Fatalf("top slots diverge: %+v vs %+v", flexGot[0], fixedGot[0])
	}
	if delta := fixedGot[0].Difficulty - flexGot[0].Difficulty; delta != 9 {
		t.Fatalf("want fixed to cost 9 more than flexible, got %d", delta)
	}
}

func TestSuggestSlots_BusyDayRanksBelowFreeDay(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore()
	svc := NewService(fs)

	child, _ := fs.Children().Create(ctx, &model.Child{Name: "Ada"})
	// Tuesday sits at 240 minutes; adding 30 pushes it past the 70% penalty
	// threshold, so the empty Wednesday should outrank it despite being a
	// day further out.
	mustCreateSession(t, fs, child.ChildID, model.CommitmentFixed, 240, 2)
	sess := &model.Session{ChildID: child.ChildID, EstimatedMinutes: 30, Commitment: model.CommitmentFlexible}

	got, err := svc.SuggestSlots(ctx, sess, refMonday, refMonday)
	if err != nil {
		t.Fatalf("SuggestSlots: %v", err)
	}
	if got[0].Weekday != 3 {
		t.Fatalf("want Wednesday first, got weekday %d (difficulty %d)", got[0].Weekday, got[0].Difficulty)
	}
	if got[0].Difficulty != 3 {
		t.Fatalf("want difficulty 3 for the free Wednesday, got %d", got[0].Difficulty)
	}
}

func TestSuggestSlots_Validation(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	if _, err := svc.SuggestSlots(ctx, nil, refMonday, refMonday); !model.IsValidationError(err) {
		t.Fatalf("nil session: want validation error, got %v", err)
	}
	sess := &model.Session{ChildID: "c1", EstimatedMinutes: 0}
	if _, err := svc.SuggestSlots(ctx, sess, refMonday, refMonday); !model.IsValidationError(err) {
		t.Fatalf("zero minutes: want validation error, got %v", err)
	}
}
