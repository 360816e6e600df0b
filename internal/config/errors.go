package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing holder identity or authorization domain).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidMirrorConfigs indicates invalid mirror registry settings
	// (for example, an empty mirror list or zero attempt timeout).
	ErrInvalidMirrorConfigs = errors.New("invalid mirror configuration")
	// ErrInvalidKeyServerConfigs indicates invalid key-server cluster
	// settings (for example, a threshold larger than the server count).
	ErrInvalidKeyServerConfigs = errors.New("invalid key server configuration")
	// ErrInvalidStorageConfigs indicates invalid credential cache storage
	// settings (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a zero poll interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
