package config

import (
	"flag"
	"strings"
	"time"
)

// URLList holds a comma-separated list of base URLs.
// It implements the flag.Value interface.
type URLList []string

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-holder holder identity
//	-domain authorization domain
//	-mirrors comma-separated mirror base URLs
//	-attempt-timeout per-mirror attempt timeout (e.g., "10s")
//	-key-servers comma-separated key server base URLs
//	-threshold minimum agreeing key-server responses
//	-dsn credential cache SQLite path
//	-credential-ttl session credential lifetime (e.g., "30m")
//	-poll-interval room poll interval (e.g., "30s")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var mirrors, keyServers URLList
	var holder string
	var domain string
	var dsn string
	var jsonConfigPath string
	var threshold int
	var attemptTimeout time.Duration
	var credentialTTL time.Duration
	var pollInterval time.Duration

	flag.StringVar(&holder, "holder", "", "Holder identity")
	flag.StringVar(&domain, "domain", "", "Authorization domain")
	flag.Var(&mirrors, "mirrors", "Comma-separated mirror base URLs")
	flag.DurationVar(&attemptTimeout, "attempt-timeout", 0, "Per-mirror attempt timeout (e.g., 10s)")
	flag.Var(&keyServers, "key-servers", "Comma-separated key server base URLs")
	flag.IntVar(&threshold, "threshold", 0, "Minimum agreeing key-server responses")
	flag.StringVar(&dsn, "dsn", "", "Credential cache SQLite path")
	flag.DurationVar(&credentialTTL, "credential-ttl", 0, "Session credential lifetime (e.g., 30m)")
	flag.DurationVar(&pollInterval, "poll-interval", 0, "Room poll interval (e.g., 30s)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Holder:        holder,
			Domain:        domain,
			CredentialTTL: credentialTTL,
		},
		Mirrors: Mirrors{
			URLs:           mirrors,
			AttemptTimeout: attemptTimeout,
		},
		KeyServers: KeyServers{
			URLs:      keyServers,
			Threshold: threshold,
		},
		Storage: Storage{
			Credentials: CredentialDB{
				DSN: dsn,
			},
		},
		Workers: Workers{
			PollInterval: pollInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns the canonical comma-separated form of the list.
func (l *URLList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

// Set parses a comma-separated list of URLs, dropping empty entries.
func (l *URLList) Set(s string) error {
	*l = (*l)[:0]
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}
