package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strings" // strings normalizes driver names
	"time"    // time parses durations such as the shutdown timeout

	"github.com/joho/godotenv" // godotenv fills unset variables from a local .env file
)

// Supported values for DB_DRIVER.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database credentials are only required when the
// MySQL driver is selected; the SQLite driver only needs a file path.
type Config struct {
	Env             string        // application environment (e.g. "dev", "prod")
	Port            string        // HTTP port to listen on
	DBDriver        string        // "mysql" or "sqlite"
	DBUser          string        // database username
	DBPass          string        // database password (optional)
	DBHost          string        // database host address
	DBPort          string        // database port number
	DBName          string        // database name
	DBPath          string        // SQLite file path (or ":memory:")
	BodyLimit       string        // maximum accepted request body, e.g. "1M"
	ShutdownTimeout time.Duration // grace period for in-flight requests on shutdown
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file in the working directory is loaded first when present;
// variables already set in the environment win.  Missing required values
// cause the program to exit with a fatal log message.
func Load() Config {
	_ = godotenv.Load() // absence of .env is normal outside local development

	cfg := Config{
		Env:             envStr("APP_ENV", "dev"),
		Port:            envStr("APP_PORT", "3000"),
		DBDriver:        strings.ToLower(envStr("DB_DRIVER", DriverMySQL)),
		DBPath:          envStr("DB_PATH", "clients.db"),
		BodyLimit:       envStr("BODY_LIMIT", "1M"),
		ShutdownTimeout: envDur("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
	switch cfg.DBDriver {
	case DriverMySQL:
		cfg.DBUser = must("DB_USER")      // database user
		cfg.DBPass = os.Getenv("DB_PASS") // database password (empty allowed)
		cfg.DBHost = must("DB_HOST")      // database host
		cfg.DBPort = envStr("DB_PORT", "3306")
		cfg.DBName = must("DB_NAME") // database name
	case DriverSQLite:
	default:
		log.Fatalf("unsupported DB_DRIVER: %q", cfg.DBDriver)
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
