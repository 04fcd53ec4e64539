// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
type StructuredJSONConfig struct {
	App struct {
		SiteURL            string `json:"site_url"`
		SupportEmail       string `json:"support_email"`
		TempPasswordLength int    `json:"temp_password_length"`
		Version            string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		CookieSecure   bool     `json:"cookie_secure"`
	} `json:"server,omitempty"`

	Identity struct {
		URL        string   `json:"url"`
		AnonKey    string   `json:"anon_key"`
		ServiceKey string   `json:"service_key"`
		JWTSecret  string   `json:"jwt_secret"`
		Timeout    Duration `json:"timeout"`
	} `json:"identity,omitempty"`

	Mailer struct {
		URL        string   `json:"url"`
		APIKey     string   `json:"api_key"`
		AudienceID string   `json:"audience_id"`
		From       string   `json:"from"`
		Timeout    Duration `json:"timeout"`
	} `json:"mailer,omitempty"`

	Workers struct {
		NotificationWorkers int `json:"notification_workers"`
		QueueSize           int `json:"queue_size"`
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

	return &StructuredConfig{
		App: App{
			SiteURL:            jsonCfg.App.SiteURL,
			SupportEmail:       jsonCfg.App.SupportEmail,
			TempPasswordLength: jsonCfg.App.TempPasswordLength,
			Version:            jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			CookieSecure:   jsonCfg.Server.CookieSecure,
		},
		Identity: Identity{
			URL:        jsonCfg.Identity.URL,
			AnonKey:    jsonCfg.Identity.AnonKey,
			ServiceKey: jsonCfg.Identity.ServiceKey,
			JWTSecret:  jsonCfg.Identity.JWTSecret,
			Timeout:    time.Duration(jsonCfg.Identity.Timeout),
		},
		Mailer: Mailer{
			URL:        jsonCfg.Mailer.URL,
			APIKey:     jsonCfg.Mailer.APIKey,
			AudienceID: jsonCfg.Mailer.AudienceID,
			From:       jsonCfg.Mailer.From,
			Timeout:    time.Duration(jsonCfg.Mailer.Timeout),
		},
		Workers: Workers{
			NotificationWorkers: jsonCfg.Workers.NotificationWorkers,
			QueueSize:           jsonCfg.Workers.QueueSize,
		},
	}, nil
}

// Duration is a wrapper around time.Duration that supports JSON
// unmarshaling from strings like "1h", "30s" as well as nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
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
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
