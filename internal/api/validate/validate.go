package validate

import (
	"fmt"
	"regexp"
	"time"

	"github.com/hearthside/planner/internal/model"
)

// nameRx allows letters, digits, single spaces, hyphen and apostrophe.
var nameRx = regexp.MustCompile(`^[A-Za-z0-9' -]+$`)

var timeOfDayRx = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Name validates a child's display name:
// - 1-80 bytes
// - letters, digits, space, hyphen, apostrophe only
func Name(v string) error {
	if v == "" {
		return fmt.Errorf("name is required")
	}
	if len(v) > 80 {
		return fmt.Errorf("name exceeds 80 characters")
	}
	if !nameRx.MatchString(v) {
		return fmt.Errorf("name contains invalid characters; allowed letters, digits, space, hyphen, apostrophe")
	}
	return nil
}

// TimeZone checks the value resolves as an IANA zone name.
func TimeZone(v string) error {
	if v == "" {
		return nil // store falls back to UTC
	}
	if _, err := time.LoadLocation(v); err != nil {
		return fmt.Errorf("unknown time zone %q", v)
	}
	return nil
}

// Weekday accepts ISO weekday numbers, 1 for Monday through 7 for Sunday.
func Weekday(v int) error {
	if v < 1 || v > 7 {
		return fmt.Errorf("weekday must be between 1 and 7")
	}
	return nil
}

// TimeOfDay accepts 24-hour "HH:MM" strings.
func TimeOfDay(field, v string) error {
	if !timeOfDayRx.MatchString(v) {
		return fmt.Errorf("%s must be HH:MM, got %q", field, v)
	}
	return nil
}

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// -------- Request specific helpers ----------

// CreateSession validates input for creating a study session.
func CreateSession(title string, estimatedMinutes int, commitment model.CommitmentKind, status model.SessionStatus) error {
	if err := NonEmpty("title", title); err != nil {
		return err
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds 200 characters")
	}
	if estimatedMinutes <= 0 {
		return fmt.Errorf("estimatedMinutes must be positive")
	}
	if estimatedMinutes > 24*60 {
		return fmt.Errorf("estimatedMinutes exceeds a day")
	}
	if !commitment.Valid() {
		return fmt.Errorf("unknown commitment %q", commitment)
	}
	if !status.Valid() {
		return fmt.Errorf("unknown status %q", status)
	}
	return nil
}

// Placement validates an optional initial schedule placement. A zero weekday
// means the session starts unplaced and the time fields must be empty.
func Placement(weekday int, start, end string) error {
	if weekday == 0 {
		if start != "" || end != "" {
			return fmt.Errorf("start and end times require a weekday")
		}
		return nil
	}
	if err := Weekday(weekday); err != nil {
		return err
	}
	if err := TimeOfDay("startTime", start); err != nil {
		return err
	}
	if err := TimeOfDay("endTime", end); err != nil {
		return err
	}
	if end <= start {
		return fmt.Errorf("endTime must be after startTime")
	}
	return nil
}
