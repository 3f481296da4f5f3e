package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The signing secret is read once here and handed
// to the token issuer at construction; no package ever reads it from a
// global afterwards.
type Config struct {
	Env               string // application environment (e.g. "dev", "prod")
	Port              string // HTTP port to listen on
	DBUser            string // database username
	DBPass            string // database password (optional)
	DBHost            string // database host address
	DBPort            string // database port number
	DBName            string // database name
	JWTSecret         string // secret used to sign session and reset tokens
	AccessTTLMin      int    // session token time-to-live in minutes
	ResetTTLMin       int    // reset token time-to-live in minutes (default 60)
	BcryptCost        int    // bcrypt cost for password hashing
	PublicUserListing bool   // when true, user listing needs no privileged role
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:               must("APP_ENV"),
		Port:              must("APP_PORT"),
		DBUser:            must("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"), // empty allowed
		DBHost:            must("DB_HOST"),
		DBPort:            must("DB_PORT"),
		DBName:            must("DB_NAME"),
		JWTSecret:         must("JWT_SECRET"),
		AccessTTLMin:      mustInt("ACCESS_TOKEN_TTL_MIN"),
		ResetTTLMin:       atoi(getenv("RESET_TOKEN_TTL_MIN", "60")),
		BcryptCost:        mustInt("BCRYPT_COST"),
		PublicUserListing: getenv("POLICY_PUBLIC_USER_LISTING", "false") == "true",
	}
}

// MailConfig holds SMTP settings for outgoing password-reset mail. All
// values are optional: with an empty host the delivery consumer only
// logs the mail instead of sending it, which keeps local development
// working without an SMTP account.
type MailConfig struct {
	Host     string // SMTP server hostname
	Port     string // SMTP server port
	User     string // SMTP auth username
	Password string // SMTP auth password
	From     string // From header on outgoing mail
}

// LoadMail reads the EMAIL_* variables into a MailConfig.
func LoadMail() MailConfig {
	return MailConfig{
		Host:     os.Getenv("EMAIL_HOST"),
		Port:     getenv("EMAIL_PORT", "465"),
		User:     os.Getenv("EMAIL_USER"),
		Password: os.Getenv("EMAIL_PASSWORD"),
		From:     getenv("EMAIL_FROM", "SecureAdmin <no-reply@localhost>"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
