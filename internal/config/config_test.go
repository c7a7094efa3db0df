package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FPLBaseURL != "https://fantasy.premierleague.com/api" {
		t.Fatalf("unexpected FPLBaseURL: %q", cfg.FPLBaseURL)
	}
	if cfg.FPLEntryPause != 100*time.Millisecond {
		t.Fatalf("unexpected FPLEntryPause: %s", cfg.FPLEntryPause)
	}
	if cfg.FPLMaxAttempts != 3 || cfg.FPLTimeout != 10*time.Second || cfg.FPLLargeTimeout != 15*time.Second {
		t.Fatalf("unexpected upstream defaults: %+v", cfg)
	}
	if cfg.CollectorWorkers != 4 {
		t.Fatalf("unexpected CollectorWorkers: %d", cfg.CollectorWorkers)
	}
	if cfg.SchedulerEnabled {
		t.Fatalf("expected scheduler disabled by default")
	}
	if cfg.LogLevel.String() != "info" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoad_Telemetry(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name:    "uptrace without dsn",
			env:     map[string]string{"UPTRACE_ENABLED": "true", "UPTRACE_DSN": "", "OTEL_EXPORTER_OTLP_HEADERS": ""},
			wantErr: true,
		},
		{
			name: "uptrace dsn read from otlp headers",
			env: map[string]string{
				"UPTRACE_ENABLED":            "true",
				"UPTRACE_DSN":                "",
				"OTEL_EXPORTER_OTLP_HEADERS": `uptrace-dsn="https://token@api.uptrace.dev/1"`,
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
					t.Fatalf("UptraceDSN=%q", cfg.UptraceDSN)
				}
			},
		},
		{
			name: "blank pprof addr falls back",
			env:  map[string]string{"PPROF_ENABLED": "true", "PPROF_ADDR": "  "},
			check: func(t *testing.T, cfg Config) {
				if cfg.PprofAddr != ":6060" {
					t.Fatalf("PprofAddr=%q", cfg.PprofAddr)
				}
			},
		},
		{
			name:    "pyroscope without server",
			env:     map[string]string{"PYROSCOPE_ENABLED": "true", "PYROSCOPE_SERVER_ADDRESS": ""},
			wantErr: true,
		},
		{
			name: "pyroscope app name follows service name",
			env: map[string]string{
				"APP_SERVICE_NAME":         "fpl-league-sync-test",
				"PYROSCOPE_ENABLED":        "true",
				"PYROSCOPE_SERVER_ADDRESS": "http://localhost:4040",
				"PYROSCOPE_APP_NAME":       "",
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.PyroscopeAppName != "fpl-league-sync-test" {
					t.Fatalf("PyroscopeAppName=%q", cfg.PyroscopeAppName)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v", tt.env)
				}
				return
			}
			if err != nil {
				t.Fatalf("load config: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoad_FPLBaseURLValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("rejects non http scheme", func(t *testing.T) {
		t.Setenv("FPL_BASE_URL", "ftp://fantasy.premierleague.com/api")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for ftp scheme")
		}
	})

	t.Run("trims trailing slash", func(t *testing.T) {
		t.Setenv("FPL_BASE_URL", "http://localhost:9000/api/")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.FPLBaseURL != "http://localhost:9000/api" {
			t.Fatalf("unexpected FPLBaseURL: %q", cfg.FPLBaseURL)
		}
	})
}

func TestLoad_NumericValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cases := map[string]string{
		"COLLECTOR_WORKERS":     "0",
		"FPL_MAX_ATTEMPTS":      "-1",
		"FPL_ENTRY_PAUSE":       "-5ms",
		"FPL_TIMEOUT":           "soon",
		"CACHE_TTL":             "0s",
		"DB_MAX_IDLE_CONNS":     "50",
		"SCHEDULER_CONCURRENCY": "x",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoad_EntryPauseMayBeZero(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FPL_ENTRY_PAUSE", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FPLEntryPause != 0 {
		t.Fatalf("expected zero pause, got %s", cfg.FPLEntryPause)
	}
}

func TestLoad_SchedulerConfig(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SCHEDULER_ENABLED", "true")

	t.Run("requires league ids", func(t *testing.T) {
		t.Setenv("SCHEDULER_LEAGUE_IDS", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error without SCHEDULER_LEAGUE_IDS")
		}
	})

	t.Run("rejects bad cron", func(t *testing.T) {
		t.Setenv("SCHEDULER_LEAGUE_IDS", "314")
		t.Setenv("SCHEDULER_CRON", "every now and then")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid SCHEDULER_CRON")
		}
	})

	t.Run("parses and dedupes ids", func(t *testing.T) {
		t.Setenv("SCHEDULER_LEAGUE_IDS", " 314, 1592 ,314,")
		t.Setenv("SCHEDULER_CRON", "*/30 * * * *")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.SchedulerLeagueIDs) != 2 || cfg.SchedulerLeagueIDs[0] != 314 || cfg.SchedulerLeagueIDs[1] != 1592 {
			t.Fatalf("unexpected league ids: %+v", cfg.SchedulerLeagueIDs)
		}
	})

	t.Run("rejects non positive id", func(t *testing.T) {
		t.Setenv("SCHEDULER_LEAGUE_IDS", "314,-2")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative league id")
		}
	})
}

func TestLoad_ProdRequiresJobToken(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("INTERNAL_JOB_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when INTERNAL_JOB_TOKEN is missing in prod")
	}

	t.Setenv("INTERNAL_JOB_TOKEN", "secret")
	if _, err := Load(); err != nil {
		t.Fatalf("load config: %v", err)
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("COLLECTOR_WORKERS", "")
	if err := os.Unsetenv("COLLECTOR_WORKERS"); err != nil {
		t.Fatalf("unset env: %v", err)
	}
	t.Setenv("SCHEDULER_CONCURRENCY", "3")

	path := filepath.Join(t.TempDir(), "test.env")
	content := "COLLECTOR_WORKERS=7\nSCHEDULER_CONCURRENCY=9\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CollectorWorkers != 7 {
		t.Fatalf("expected CollectorWorkers from env file, got %d", cfg.CollectorWorkers)
	}
	if cfg.SchedulerConcurrency != 3 {
		t.Fatalf("expected process env to win, got %d", cfg.SchedulerConcurrency)
	}
	_ = os.Unsetenv("COLLECTOR_WORKERS")
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))

	if _, err := Load(); err != nil {
		t.Fatalf("load config: %v", err)
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://a.example" || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected CORSOrigins: %v", cfg.CORSOrigins)
	}
}
