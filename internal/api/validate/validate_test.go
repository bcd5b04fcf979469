package validate

import (
	"strings"
	"testing"

	"github.com/hearthside/planner/internal/model"
)

func TestName(t *testing.T) {
	valid := []string{"Ada", "Mary-Lou", "O'Neill", "Kid 2"}
	for _, v := range valid {
		if err := Name(v); err != nil {
			t.Fatalf("Name(%q): %v", v, err)
		}
	}
	invalid := []string{"", strings.Repeat("a", 81), "tab\tname", "<script>"}
	for _, v := range invalid {
		if err := Name(v); err == nil {
			t.Fatalf("Name(%q): want error", v)
		}
	}
}

func TestTimeZone(t *testing.T) {
	if err := TimeZone(""); err != nil {
		t.Fatalf("empty zone should pass: %v", err)
	}
	if err := TimeZone("UTC"); err != nil {
		t.Fatalf("UTC: %v", err)
	}
	if err := TimeZone("Mars/Olympus"); err == nil {
		t.Fatal("want error for unknown zone")
	}
}

func TestTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, v := range valid {
		if err := TimeOfDay("startTime", v); err != nil {
			t.Fatalf("TimeOfDay(%q): %v", v, err)
		}
	}
	invalid := []string{"", "24:00", "9:30", "09:60", "noon"}
	for _, v := range invalid {
		if err := TimeOfDay("startTime", v); err == nil {
			t.Fatalf("TimeOfDay(%q): want error", v)
		}
	}
}

func TestCreateSession(t *testing.T) {
	if err := CreateSession("Math", 45, model.CommitmentFlexible, model.StatusPlanned); err != nil {
		t.Fatalf("valid session rejected: %v", err)
	}

	cases := []struct {
		title      string
		minutes    int
		commitment model.CommitmentKind
		status     model.SessionStatus
	}{
		{"", 45, model.CommitmentFlexible, model.StatusPlanned},
		{"Math", 0, model.CommitmentFlexible, model.StatusPlanned},
		{"Math", 25 * 60, model.CommitmentFlexible, model.StatusPlanned},
		{"Math", 45, "sometimes", model.StatusPlanned},
		{"Math", 45, model.CommitmentFlexible, "paused"},
	}
	for i, tc := range cases {
		if err := CreateSession(tc.title, tc.minutes, tc.commitment, tc.status); err == nil {
			t.Fatalf("case %d: want error", i)
		}
	}
}

func TestPlacement(t *testing.T) {
	if err := Placement(0, "", ""); err != nil {
		t.Fatalf("unplaced session rejected: %v", err)
	}
	if err := Placement(3, "09:00", "10:30"); err != nil {
		t.Fatalf("valid placement rejected: %v", err)
	}

	cases := []struct {
		weekday    int
		start, end string
	}{
		{0, "09:00", ""},
		{8, "09:00", "10:00"},
		{3, "9am", "10:00"},
		{3, "10:00", "09:00"},
		{3, "10:00", "10:00"},
	}
	for i, tc := range cases {
		if err := Placement(tc.weekday, tc.start, tc.end); err == nil {
			t.Fatalf("case %d: want error", i)
		}
	}
}
