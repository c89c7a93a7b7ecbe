package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{"APP_PORT", "MYSQL_HOST", "REDIS_DB", "IDEMPOTENCY_TTL_SECONDS", "NOTIFIER"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.AppPort != "8080" || c.MySQLHost != "mysql" || c.IdempTTLSecs != 300 || c.Notifier != "log" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_PASSWORD", "s3cret")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "nope")
	c := Load()
	if c.AppPort != "9090" || c.RedisDB != 3 || c.RedisPass != "s3cret" {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.IdempTTLSecs != 300 {
		t.Fatalf("bad int should keep default, got %d", c.IdempTTLSecs)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("MYSQL_DB", "")
	os.Unsetenv("MYSQL_DB") // .env never overrides a variable that is set, even to ""
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MYSQL_DB=fromfile\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := Load().MySQLDB; got != "fromfile" {
		t.Fatalf("MySQLDB = %q, want fromfile", got)
	}
}

func TestValidate(t *testing.T) {
	c := &Config{AppPort: "8080", MySQLHost: "h", MySQLPort: "3306", MySQLDB: "d", MySQLUser: "u", Notifier: "log"}
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected: %v", err)
	}

	bad := *c
	bad.MySQLPort = "not-a-port"
	if err := bad.Validate(); err == nil {
		t.Fatal("want port error")
	}

	bad = *c
	bad.Notifier = "emailjs"
	if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "EmailJS") {
		t.Fatalf("want emailjs error, got %v", err)
	}

	bad = *c
	bad.Notifier = "pigeon"
	if err := bad.Validate(); err == nil {
		t.Fatal("want notifier error")
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLHost: "db", MySQLPort: "3306", MySQLDB: "gv", MySQLUser: "u", MySQLPass: "p"}
	want := "u:p@tcp(db:3306)/gv?parseTime=true&charset=utf8mb4,utf8"
	if got := c.MySQLDSN(); got != want {
		t.Fatalf("DSN = %q", got)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
