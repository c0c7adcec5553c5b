package config

import (
	"encoding/json"
	"os"

	"github.com/amitEt25/aiven-auth-assigment/internal/flagx"
	"github.com/amitEt25/aiven-auth-assigment/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "24h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its set fields are copied into the runtime
// Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	ObservabilityAddr           string         `json:"observability_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	ScryptN                     int            `json:"scrypt_n"`
	ScryptR                     int            `json:"scrypt_r"`
	ScryptP                     int            `json:"scrypt_p"`
	ScryptSaltLen               int            `json:"scrypt_salt_len"`
	ScryptKeyLen                int            `json:"scrypt_key_len"`
	RateLimitWindow             timex.Duration `json:"rate_limit_window"`
	RateLimitMax                int            `json:"rate_limit_max"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. Only fields present (non-zero)
// in the file override the current values, so a partial file can adjust a
// single setting. If the file cannot be read or contains invalid JSON, the
// function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.ObservabilityAddr != "" {
		config.ObservabilityAddr = c.ObservabilityAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.ScryptN != 0 {
		config.ScryptN = c.ScryptN
	}
	if c.ScryptR != 0 {
		config.ScryptR = c.ScryptR
	}
	if c.ScryptP != 0 {
		config.ScryptP = c.ScryptP
	}
	if c.ScryptSaltLen != 0 {
		config.ScryptSaltLen = c.ScryptSaltLen
	}
	if c.ScryptKeyLen != 0 {
		config.ScryptKeyLen = c.ScryptKeyLen
	}
	if c.RateLimitWindow.Duration != 0 {
		config.RateLimitWindow = c.RateLimitWindow.Duration
	}
	if c.RateLimitMax != 0 {
		config.RateLimitMax = c.RateLimitMax
	}
}
