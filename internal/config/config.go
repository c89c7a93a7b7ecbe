package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort  string
	LogLevel string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisPass string
	RedisDB   int

	IdempTTLSecs int

	// Notifier is "emailjs" or "log".
	Notifier          string
	EmailJSBaseURL    string
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string
	NotifyTimeoutSecs int
	NotifyPerMinute   int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:  getenv("APP_PORT", "8080"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "grynvault"),
		MySQLUser: getenv("MYSQL_USER", "grynvault"),
		MySQLPass: getenv("MYSQL_PASS", "grynvault"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisPass: getenv("REDIS_PASSWORD", ""),
		RedisDB:   getenvInt("REDIS_DB", 0),

		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		Notifier:          getenv("NOTIFIER", "log"),
		EmailJSBaseURL:    getenv("EMAILJS_BASE_URL", "https://api.emailjs.com"),
		EmailJSServiceID:  getenv("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateID: getenv("EMAILJS_TEMPLATE_ID", ""),
		EmailJSPublicKey:  getenv("EMAILJS_PUBLIC_KEY", ""),
		EmailJSPrivateKey: getenv("EMAILJS_PRIVATE_KEY", ""),
		NotifyTimeoutSecs: getenvInt("NOTIFY_TIMEOUT_SECONDS", 10),
		NotifyPerMinute:   getenvInt("NOTIFY_PER_MINUTE", 60),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.Notifier {
	case "log":
	case "emailjs":
		if c.EmailJSServiceID == "" || c.EmailJSTemplateID == "" || c.EmailJSPublicKey == "" {
			return errors.New("missing EmailJS config (EMAILJS_SERVICE_ID/TEMPLATE_ID/PUBLIC_KEY)")
		}
	default:
		return fmt.Errorf("unknown NOTIFIER %q (want emailjs or log)", c.Notifier)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
