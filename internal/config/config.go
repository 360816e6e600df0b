// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// roomseal client. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: the holder identity, the
	// authorization domain, and the application version.
	App App `envPrefix:"APP_"`

	// Mirrors holds the blob-store mirror registry and fetch timeouts.
	Mirrors Mirrors `envPrefix:"MIRRORS_"`

	// KeyServers holds the key-server cluster endpoints and the response
	// threshold.
	KeyServers KeyServers `envPrefix:"KEYSERVERS_"`

	// Storage holds the persistence settings for the client-local
	// credential cache.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for background worker processes, such
	// as the room polling interval.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Holder is the identity credentials are minted for. Credentials are
	// never honored across holders.
	// Env: APP_HOLDER
	Holder string `env:"HOLDER"`

	// Domain is the authorization domain (deployed policy module id) all
	// key requests are scoped to.
	// Env: APP_DOMAIN
	Domain string `env:"DOMAIN"`

	// CredentialTTL specifies how long a freshly minted session
	// credential remains valid (e.g. "30m", "1h").
	// Env: APP_CREDENTIAL_TTL
	CredentialTTL time.Duration `env:"CREDENTIAL_TTL"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Mirrors holds the blob-store mirror registry. The list is caller
// configuration, never hardcoded: any subset of mirrors serves the same
// content-addressed store.
type Mirrors struct {
	// URLs are the mirror base URLs, in preference order.
	// Env: MIRRORS_URLS (comma separated)
	URLs []string `env:"URLS" envSeparator:","`

	// AttemptTimeout bounds each single-mirror fetch attempt. The fetch
	// as a whole is bounded by len(URLs) × AttemptTimeout.
	// Env: MIRRORS_ATTEMPT_TIMEOUT
	AttemptTimeout time.Duration `env:"ATTEMPT_TIMEOUT"`
}

// KeyServers holds the key-server cluster configuration.
type KeyServers struct {
	// URLs are the key server base URLs. All of them receive every batch
	// request.
	// Env: KEYSERVERS_URLS (comma separated)
	URLs []string `env:"URLS" envSeparator:","`

	// Threshold is the minimum number of agreeing server responses
	// required before key material is usable. Fewer is Unavailable.
	// Env: KEYSERVERS_THRESHOLD
	Threshold int `env:"THRESHOLD"`

	// RequestTimeout bounds one share request to one server.
	// Env: KEYSERVERS_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups persistence settings for the credential cache.
type Storage struct {
	// Credentials holds the SQLite settings of the credential cache.
	Credentials CredentialDB `envPrefix:"CREDENTIALS_"`
}

// CredentialDB contains local database connection settings for the
// persisted credential cache.
type CredentialDB struct {
	// DSN is the SQLite file path (or ":memory:" for tests).
	// Env: STORAGE_CREDENTIALS_DSN
	DSN string `env:"DSN"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// PollInterval defines how often the room poller re-runs the
	// non-interactive recover path.
	// Env: WORKERS_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
