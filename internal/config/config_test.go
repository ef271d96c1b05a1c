package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(databaseDSNEnv, "")
	t.Setenv(scorerURLEnv, "")
	t.Setenv(scorerAPIKeyEnv, "")
	t.Setenv(telegramTokenEnv, "")
	t.Setenv(telegramChatEnv, "")

	cfg := Load()

	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.Logging.Level)
	}
	if cfg.Scraper.Timeout.Std() != 20*time.Second {
		t.Fatalf("unexpected default scraper timeout: %v", cfg.Scraper.Timeout.Std())
	}
	if len(cfg.Sources) != 5 {
		t.Fatalf("expected 5 default sources, got %d", len(cfg.Sources))
	}

	kinds := map[string]int{}
	for _, src := range cfg.Sources {
		kinds[src.Kind]++
	}
	if kinds[KindStatic] != 3 || kinds[KindFeed] != 1 || kinds[KindBrowser] != 1 {
		t.Fatalf("unexpected default source kinds: %v", kinds)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	raw := `
logging:
  level: debug
database:
  dsn: postgres://test@db/test
scorer:
  inferenceUrl: http://scorer.test:9000
  timeout: 30s
sources:
  - name: only-source
    kind: static
    url: https://only.test/news
    baseUrl: https://only.test
    selectors:
      - link: a.headline
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(databaseDSNEnv, "")
	t.Setenv(scorerURLEnv, "")
	t.Setenv(scorerAPIKeyEnv, "")
	t.Setenv(telegramTokenEnv, "")
	t.Setenv(telegramChatEnv, "")

	cfg := Load()

	if cfg.Logging.Level != "debug" {
		t.Fatalf("file log level not applied: %q", cfg.Logging.Level)
	}
	if cfg.Database.DSN != "postgres://test@db/test" {
		t.Fatalf("file dsn not applied: %q", cfg.Database.DSN)
	}
	if cfg.Scorer.Timeout.Std() != 30*time.Second {
		t.Fatalf("file scorer timeout not applied: %v", cfg.Scorer.Timeout.Std())
	}
	if cfg.Scraper.Timeout.Std() != 20*time.Second {
		t.Fatalf("unset scraper timeout should keep the default: %v", cfg.Scraper.Timeout.Std())
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].Name != "only-source" {
		t.Fatalf("file sources should replace defaults wholesale: %+v", cfg.Sources)
	}
}

func TestLoadEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	raw := `
database:
  dsn: postgres://file@db/file
scorer:
  inferenceUrl: http://file.test
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(databaseDSNEnv, "postgres://env@db/env")
	t.Setenv(scorerURLEnv, "http://env.test")
	t.Setenv(scorerAPIKeyEnv, "secret")
	t.Setenv(telegramTokenEnv, "tok")
	t.Setenv(telegramChatEnv, "chat")

	cfg := Load()

	if cfg.Database.DSN != "postgres://env@db/env" {
		t.Fatalf("env dsn should win: %q", cfg.Database.DSN)
	}
	if cfg.Scorer.InferenceURL != "http://env.test" {
		t.Fatalf("env scorer url should win: %q", cfg.Scorer.InferenceURL)
	}
	if cfg.Scorer.APIKey != "secret" {
		t.Fatalf("env api key not applied: %q", cfg.Scorer.APIKey)
	}
	if cfg.Notifications.Telegram.BotToken != "tok" || cfg.Notifications.Telegram.ChatID != "chat" {
		t.Fatalf("env telegram settings not applied: %+v", cfg.Notifications.Telegram)
	}
}

func TestLoadUnreadableFileFallsBack(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv(databaseDSNEnv, "")
	t.Setenv(scorerURLEnv, "")
	t.Setenv(scorerAPIKeyEnv, "")
	t.Setenv(telegramTokenEnv, "")
	t.Setenv(telegramChatEnv, "")

	cfg := Load()

	if cfg.Logging.Level != "info" || len(cfg.Sources) != 5 {
		t.Fatalf("missing file should leave defaults intact")
	}
}

func TestDurationUnmarshal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		yaml    string
		want    time.Duration
		wantErr bool
	}{
		{name: "duration string", yaml: "90s", want: 90 * time.Second},
		{name: "compound string", yaml: "1m30s", want: 90 * time.Second},
		{name: "bare seconds", yaml: "45", want: 45 * time.Second},
		{name: "garbage", yaml: "soon", wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var d Duration
			err := yaml.Unmarshal([]byte(tc.yaml), &d)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.yaml)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %q: %v", tc.yaml, err)
			}
			if d.Std() != tc.want {
				t.Fatalf("got %v, want %v", d.Std(), tc.want)
			}
		})
	}
}
