package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/models"
)

func TestGetEnvString(t *testing.T) {
	key := "TEST_ENV_STRING"
	val := "test_value"
	t.Setenv(key, val)

	if got := getEnvString(key, "default"); got != val {
		t.Errorf("getEnvString() = %q, want %q", got, val)
	}

	if got := getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_ENV_DURATION"

	tests := []struct {
		name       string
		envVal     string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "1m", time.Second, time.Minute},
		{"ValidSeconds", "60", time.Second, 60 * time.Second},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key, tt.envVal)
			if got := getEnvDuration(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_ENV_INT"

	tests := []struct {
		name   string
		envVal string
		want   int
	}{
		{"Valid", "42", 42},
		{"Padded", " 7 ", 7},
		{"Negative", "-3", -3},
		{"Invalid", "seven", 10},
		{"Empty", "", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key, tt.envVal)
			if got := getEnvInt(key, 10); got != tt.want {
				t.Errorf("getEnvInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_ENV_BOOL"

	tests := []struct {
		envVal     string
		defaultVal bool
		want       bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"ON", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"off", true, false},
		{"maybe", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.envVal, func(t *testing.T) {
			t.Setenv(key, tt.envVal)
			if got := getEnvBool(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvBool(%q) = %v, want %v", tt.envVal, got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	if err := ensureDir(path); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}

	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

func TestGetDefaultPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Skipping test because user home dir cannot be found")
	}

	dbPath := getDefaultDatabasePath()
	expectedDb := filepath.Join(home, ".config", "activity-insights", "insights.db")
	if dbPath != expectedDb {
		t.Errorf("getDefaultDatabasePath() = %q, want %q", dbPath, expectedDb)
	}

	logPath := getDefaultLogPath()
	expectedLog := filepath.Join(home, ".config", "activity-insights", "ait.log")
	if logPath != expectedLog {
		t.Errorf("getDefaultLogPath() = %q, want %q", logPath, expectedLog)
	}
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	if len(paths) == 0 {
		t.Fatal("getEnvPaths() returned empty list")
	}

	cwd, _ := os.Getwd()
	if paths[0] != filepath.Join(cwd, ".env") {
		t.Errorf("getEnvPaths()[0] = %q, want current directory .env", paths[0])
	}
}

// isolate points HOME and the working directory at an empty temp dir so no
// stray .env file leaks into Load.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, key := range []string{
		"ACTIVITY_LOG_PATH", "DATABASE_PATH", "LOG_FILE", "LOG_LEVEL", "WATCH_DEBOUNCE",
		"NOTIFICATIONS", "SESSION_GAP", "MIN_TRANSITION_DURATION", "MIN_TRANSITIONS",
		"SEQUENCE_LENGTH", "DAY_FILTER", "RANGE_DAYS",
	} {
		t.Setenv(key, "")
	}
	return tmpDir
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ActivityLogPath != "" {
		t.Errorf("ActivityLogPath = %q, want empty", cfg.ActivityLogPath)
	}
	if cfg.SessionGap != defaultSessionGap {
		t.Errorf("SessionGap = %v, want %v", cfg.SessionGap, defaultSessionGap)
	}
	if cfg.SequenceLength != defaultSequenceLength {
		t.Errorf("SequenceLength = %d, want %d", cfg.SequenceLength, defaultSequenceLength)
	}
	if cfg.DayFilter != models.DayFilterAll {
		t.Errorf("DayFilter = %q, want all", cfg.DayFilter)
	}
	if !cfg.Notifications {
		t.Error("Notifications should default to true")
	}
	if cfg.TimeRange() != models.TimeRange30Days {
		t.Errorf("TimeRange() = %v, want 30 Days", cfg.TimeRange())
	}
	if _, err := os.Stat(filepath.Join(tmpDir, ".config", "activity-insights")); err != nil {
		t.Errorf("config dir was not created: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv("ACTIVITY_LOG_PATH", "/data/log.csv")
	t.Setenv("DATABASE_PATH", filepath.Join(tmpDir, "db", "store.sqlite"))
	t.Setenv("NOTIFICATIONS", "off")
	t.Setenv("SESSION_GAP", "15m")
	t.Setenv("MIN_TRANSITIONS", "4")
	t.Setenv("SEQUENCE_LENGTH", "3")
	t.Setenv("DAY_FILTER", "Weekend")
	t.Setenv("RANGE_DAYS", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ActivityLogPath != "/data/log.csv" {
		t.Errorf("ActivityLogPath = %q", cfg.ActivityLogPath)
	}
	if cfg.Notifications {
		t.Error("Notifications should be disabled")
	}
	if cfg.SessionGap != 15*time.Minute {
		t.Errorf("SessionGap = %v, want 15m", cfg.SessionGap)
	}
	if cfg.MinTransitions != 4 || cfg.SequenceLength != 3 {
		t.Errorf("MinTransitions/SequenceLength = %d/%d, want 4/3", cfg.MinTransitions, cfg.SequenceLength)
	}
	if cfg.DayFilter != models.DayFilterWeekend {
		t.Errorf("DayFilter = %q, want weekend", cfg.DayFilter)
	}
	if cfg.TimeRange() != models.TimeRange7Days {
		t.Errorf("TimeRange() = %v, want 7 Days", cfg.TimeRange())
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "db")); err != nil {
		t.Errorf("database dir was not created: %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"DayFilter", "DAY_FILTER", "fortnight"},
		{"SequenceTooShort", "SEQUENCE_LENGTH", "1"},
		{"SequenceTooLong", "SEQUENCE_LENGTH", "6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("Load() should fail for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestLoad_WithEnvFile(t *testing.T) {
	tmpDir := isolate(t)
	content := "ACTIVITY_LOG_PATH=/from/env/file.json\nRANGE_DAYS=90\n"
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	// godotenv.Load never overrides variables that are already set.
	os.Unsetenv("ACTIVITY_LOG_PATH")
	os.Unsetenv("RANGE_DAYS")
	t.Cleanup(func() {
		os.Unsetenv("ACTIVITY_LOG_PATH")
		os.Unsetenv("RANGE_DAYS")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ActivityLogPath != "/from/env/file.json" {
		t.Errorf("ActivityLogPath = %q, want /from/env/file.json", cfg.ActivityLogPath)
	}
	if cfg.RangeDays != 90 {
		t.Errorf("RangeDays = %d, want 90", cfg.RangeDays)
	}
}
