package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testConfig = `
app:
  name: "usof-test"
  mode: "test"
  port: 9090
database:
  driver: "sqlite"
  dsn: "file::memory:"
  password: "from-file"
feed:
  concurrency: 3
`

func TestInitReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("USOF_DATABASE_PASSWORD", "from-env")

	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if Conf.App.Name != "usof-test" || Conf.App.Port != 9090 {
		t.Fatalf("app section not loaded: %+v", Conf.App)
	}
	if Conf.Database.Driver != "sqlite" {
		t.Fatalf("driver = %q", Conf.Database.Driver)
	}
	if Conf.Database.Password != "from-env" {
		t.Fatalf("env override not applied, password = %q", Conf.Database.Password)
	}
	if Conf.Feed.Concurrency != 3 {
		t.Fatalf("feed concurrency = %d", Conf.Feed.Concurrency)
	}
	// 文件里没有的区块取默认值
	if Conf.Redis == nil || Conf.Redis.Port != 6379 {
		t.Fatalf("redis defaults missing: %+v", Conf.Redis)
	}
	if Conf.Mail.TokenTTL != "1h" {
		t.Fatalf("mail token ttl = %q", Conf.Mail.TokenTTL)
	}
}

func TestInitMissingFile(t *testing.T) {
	if err := Init(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestParseDuration(t *testing.T) {
	def := time.Minute
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"", def},
		{"10s", 10 * time.Second},
		{"7d", 7 * 24 * time.Hour},
		{"0d", def},
		{"xd", def},
		{"garbage", def},
		{"-5s", def},
	}
	for _, c := range cases {
		if got := ParseDuration(c.in, def); got != c.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
