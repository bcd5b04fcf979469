package model

import "time"

// CommitmentKind says how movable a scheduled item is. Fixed items are the
// hardest to move, flexible items the easiest; the scheduling engine weighs
// this when scoring reschedule candidates.
type CommitmentKind string

const (
	CommitmentFixed     CommitmentKind = "fixed"
	CommitmentPreferred CommitmentKind = "preferred"
	CommitmentFlexible  CommitmentKind = "flexible"
)

// Valid reports whether k is one of the known commitment kinds.
func (k CommitmentKind) Valid() bool {
	switch k {
	case CommitmentFixed, CommitmentPreferred, CommitmentFlexible:
		return true
	}
	return false
}

// SessionStatus is the lifecycle state of a study session.
type SessionStatus string

const (
	StatusBacklog   SessionStatus = "backlog"
	StatusPlanned   SessionStatus = "planned"
	StatusScheduled SessionStatus = "scheduled"
	StatusDone      SessionStatus = "done"
)

// Valid reports whether s is one of the known session statuses.
func (s SessionStatus) Valid() bool {
	switch s {
	case StatusBacklog, StatusPlanned, StatusScheduled, StatusDone:
		return true
	}
	return false
}

// CatchUpStatus is the lifecycle state of a catch-up record.
// pending -> reassigned is the only transition; reassigned is terminal.
type CatchUpStatus string

const (
	CatchUpPending    CatchUpStatus = "pending"
	CatchUpReassigned CatchUpStatus = "reassigned"
)

// Child is a learner whose sessions, time blocks and catch-ups we manage.
type Child struct {
	ChildID      string    `json:"childId"`
	Name         string    `json:"name"`
	TimeZone     string    `json:"timeZone"`
	CreationTime time.Time `json:"creationTime"`
}

// Session is a unit of study owned by a child. Day-of-week uses ISO numbering
// (1=Monday .. 7=Sunday); zero means not placed yet. Times of day are "HH:MM"
// strings in the child's resolved timezone.
type Session struct {
	SessionID        string         `json:"sessionId"`
	ChildID          string         `json:"childId"`
	TopicID          string         `json:"topicId,omitempty"`
	Title            string         `json:"title"`
	EstimatedMinutes int            `json:"estimatedMinutes"`
	Status           SessionStatus  `json:"status"`
	Commitment       CommitmentKind `json:"commitment"`
	ScheduledDay     int            `json:"scheduledDay,omitempty"`
	ScheduledDate    *time.Time     `json:"scheduledDate,omitempty"`
	StartTime        string         `json:"startTime,omitempty"`
	EndTime          string         `json:"endTime,omitempty"`
	CreationTime     time.Time      `json:"creationTime"`
}

// CanBeRescheduled reports whether the session may be moved by the automatic
// workflows. Done and backlog sessions stay where they are; a session must
// already have a day assigned to be moved off it.
func (s *Session) CanBeRescheduled() bool {
	if s.Status != StatusPlanned && s.Status != StatusScheduled {
		return false
	}
	return s.ScheduledDay >= 1 && s.ScheduledDay <= 7
}

// TimeBlock is a committed slice of a child's week, typically created from an
// imported calendar occurrence.
type TimeBlock struct {
	BlockID      string         `json:"blockId"`
	ChildID      string         `json:"childId"`
	Weekday      int            `json:"weekday"`
	StartTime    string         `json:"startTime"`
	EndTime      string         `json:"endTime"`
	Label        string         `json:"label"`
	Imported     bool           `json:"imported"`
	Commitment   CommitmentKind `json:"commitment"`
	SourceID     string         `json:"sourceId,omitempty"`
	CreationTime time.Time      `json:"creationTime"`
}

// CatchUpSession records a missed session awaiting a new placement.
// Lower priority values are more urgent. ReassignedTo holds the id of the
// replacement session once one has been created.
type CatchUpSession struct {
	CatchUpID        string        `json:"catchUpId"`
	SessionID        string        `json:"sessionId"`
	ChildID          string        `json:"childId"`
	TopicID          string        `json:"topicId,omitempty"`
	Title            string        `json:"title"`
	EstimatedMinutes int           `json:"estimatedMinutes"`
	MissedDate       time.Time     `json:"missedDate"`
	Priority         int           `json:"priority"`
	Status           CatchUpStatus `json:"status"`
	ReassignedTo     *string       `json:"reassignedTo,omitempty"`
	CreationTime     time.Time     `json:"creationTime"`
}
