package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// parseEnv overlays configuration from environment variables. Unset
// variables leave the corresponding Config values untouched, matching the
// partial-overlay behavior of the JSON file. Env values override the JSON
// file and are in turn overridden by command-line flags.
//
// Recognized variables:
//
//	ADDRESS                    HTTP bind address
//	DATABASE_DSN               PostgreSQL DSN
//	SECRET_KEY                 session token HMAC secret key
//	SESSION_VALIDITY_DURATION  Go duration string, e.g. "24h"
//	SECURE_COOKIES             boolean, e.g. "true"
//	BOOTSTRAP_ADMIN_NAME       seeded admin display name
//	BOOTSTRAP_ADMIN_EMAIL      seeded admin email
//	BOOTSTRAP_ADMIN_PASSWORD   seeded admin password
func parseEnv(config *Config) error {
	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("SESSION_VALIDITY_DURATION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_VALIDITY_DURATION parse error: %w", err)
		}
		config.SessionValidityDuration = d
	}
	if v := os.Getenv("SECURE_COOKIES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SECURE_COOKIES parse error: %w", err)
		}
		config.SecureCookies = b
	}
	if v := os.Getenv("BOOTSTRAP_ADMIN_NAME"); v != "" {
		config.BootstrapAdminName = v
	}
	if v := os.Getenv("BOOTSTRAP_ADMIN_EMAIL"); v != "" {
		config.BootstrapAdminEmail = v
	}
	if v := os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"); v != "" {
		config.BootstrapAdminPassword = v
	}

	return nil
}
