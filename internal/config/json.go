package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Holder        string   `json:"holder"`
		Domain        string   `json:"domain"`
		CredentialTTL Duration `json:"credential_ttl"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Mirrors struct {
		URLs           []string `json:"urls"`
		AttemptTimeout Duration `json:"attempt_timeout"`
	} `json:"mirrors,omitempty"`

	KeyServers struct {
		URLs           []string `json:"urls"`
		Threshold      int      `json:"threshold"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"key_servers,omitempty"`

	Storage struct {
		Credentials struct {
			DSN string `json:"dsn"`
		} `json:"credentials,omitempty"`
	} `json:"storage,omitempty"`

	Workers struct {
		PollInterval Duration `json:"poll_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Holder:        jsonCfg.App.Holder,
			Domain:        jsonCfg.App.Domain,
			CredentialTTL: time.Duration(jsonCfg.App.CredentialTTL),
			Version:       jsonCfg.App.Version,
		},
		Mirrors: Mirrors{
			URLs:           jsonCfg.Mirrors.URLs,
			AttemptTimeout: time.Duration(jsonCfg.Mirrors.AttemptTimeout),
		},
		KeyServers: KeyServers{
			URLs:           jsonCfg.KeyServers.URLs,
			Threshold:      jsonCfg.KeyServers.Threshold,
			RequestTimeout: time.Duration(jsonCfg.KeyServers.RequestTimeout),
		},
		Storage: Storage{
			Credentials: CredentialDB{
				DSN: jsonCfg.Storage.Credentials.DSN,
			},
		},
		Workers: Workers{
			PollInterval: time.Duration(jsonCfg.Workers.PollInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
