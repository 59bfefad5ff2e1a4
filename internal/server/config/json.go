package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dsantanna/quizdeck/internal/flagx"
	"github.com/dsantanna/quizdeck/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "24h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	SecureCookies           bool           `json:"secure_cookies"`
	BootstrapAdminName      string         `json:"bootstrap_admin_name"`
	BootstrapAdminEmail     string         `json:"bootstrap_admin_email"`
	BootstrapAdminPassword  string         `json:"bootstrap_admin_password"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The lookup order for the JSON file path is the -c or -config
// command-line flags; if neither is set, no JSON file is loaded. Empty
// fields in the file leave the corresponding Config values untouched, so
// a partial overlay is fine.
func parseJson(config *Config) error {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("config file read error: %w", err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("config file parse error: %w", err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionValidityDuration.Duration != 0 {
		config.SessionValidityDuration = time.Duration(c.SessionValidityDuration.Duration)
	}
	if c.SecureCookies {
		config.SecureCookies = true
	}
	if c.BootstrapAdminName != "" {
		config.BootstrapAdminName = c.BootstrapAdminName
	}
	if c.BootstrapAdminEmail != "" {
		config.BootstrapAdminEmail = c.BootstrapAdminEmail
	}
	if c.BootstrapAdminPassword != "" {
		config.BootstrapAdminPassword = c.BootstrapAdminPassword
	}

	return nil
}
