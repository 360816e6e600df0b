// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Defaults applied by validate when optional settings are left unset.
const (
	defaultCredentialTTL  = 30 * time.Minute
	defaultAttemptTimeout = 10 * time.Second
	defaultPollInterval   = 30 * time.Second
)

// validate checks that the final merged [StructuredConfig] satisfies all
// client invariants before it is used at startup, applying defaults for
// optional durations first.
//
// Returns nil if the configuration is valid, or a matching sentinel error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.CredentialTTL == 0 {
		cfg.App.CredentialTTL = defaultCredentialTTL
	}
	if cfg.Mirrors.AttemptTimeout == 0 {
		cfg.Mirrors.AttemptTimeout = defaultAttemptTimeout
	}
	if cfg.KeyServers.RequestTimeout == 0 {
		cfg.KeyServers.RequestTimeout = cfg.Mirrors.AttemptTimeout
	}
	if cfg.Workers.PollInterval == 0 {
		cfg.Workers.PollInterval = defaultPollInterval
	}

	if cfg.App.Holder == "" || cfg.App.Domain == "" {
		return ErrInvalidAppConfigs
	}

	if len(cfg.Mirrors.URLs) == 0 {
		return ErrInvalidMirrorConfigs
	}

	if len(cfg.KeyServers.URLs) == 0 ||
		cfg.KeyServers.Threshold < 1 ||
		cfg.KeyServers.Threshold > len(cfg.KeyServers.URLs) {
		return ErrInvalidKeyServerConfigs
	}

	if cfg.Storage.Credentials.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
