package config

import (
	"os"
	"testing"
)

func unsetPlannerEnv() {
	_ = os.Unsetenv("PLANNER_HTTP_PORT")
	_ = os.Unsetenv("PLANNER_DB_DRIVER")
	_ = os.Unsetenv("PLANNER_SQLITE_PATH")
	_ = os.Unsetenv("PLANNER_POSTGRES_DSN")
	_ = os.Unsetenv("PLANNER_MAX_CALENDAR_BYTES")
}

func TestConfigLoad_Defaults(t *testing.T) {
	unsetPlannerEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.HTTPPort != 8080 || cfg.SQLitePath != "planner.db" || cfg.MaxCalendarBytes != 524288 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestResolveDefaults_AutoPicksSQLite(t *testing.T) {
	unsetPlannerEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("want sqlite without a DSN, got %s", cfg.DBDriver)
	}
}

func TestResolveDefaults_AutoPicksPostgresWithDSN(t *testing.T) {
	unsetPlannerEnv()
	_ = os.Setenv("PLANNER_POSTGRES_DSN", "postgres://localhost:5432/planner")
	defer unsetPlannerEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("want postgres when a DSN is set, got %s", cfg.DBDriver)
	}
}

func TestResolveDefaults_ExplicitDriverOverride(t *testing.T) {
	unsetPlannerEnv()
	_ = os.Setenv("PLANNER_DB_DRIVER", "sqlite")
	_ = os.Setenv("PLANNER_POSTGRES_DSN", "postgres://localhost:5432/planner")
	defer unsetPlannerEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("override failed, got %s", cfg.DBDriver)
	}
}

func TestResolveDefaults_RejectsUnknownDriver(t *testing.T) {
	unsetPlannerEnv()
	_ = os.Setenv("PLANNER_DB_DRIVER", "spanner")
	defer unsetPlannerEnv()

	if _, err := New(); err == nil {
		t.Fatal("want error for unsupported driver")
	}
}

func TestResolveDefaults_PostgresNeedsDSN(t *testing.T) {
	unsetPlannerEnv()
	_ = os.Setenv("PLANNER_DB_DRIVER", "postgres")
	defer unsetPlannerEnv()

	if _, err := New(); err == nil {
		t.Fatal("want error when postgres has no DSN")
	}
}
