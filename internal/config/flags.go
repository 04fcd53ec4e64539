// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the server flags from args (usually os.Args[1:]).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-site-url public web application URL
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-identity-url identity provider base URL
//	-identity-anon-key identity provider public key
//	-identity-service-key identity provider service-role key
//	-jwt-secret access token verification secret
//	-mailer-url email service base URL
//	-mailer-key email service API key
//	-audience-id contacts audience id
//	-mail-from sender address
//	-workers notification worker count
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("erp-accounts", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress NetAddress
	var databaseDSN, jsonConfigPath, siteURL string
	var identityURL, anonKey, serviceKey, jwtSecret string
	var mailerURL, mailerKey, audienceID, mailFrom string
	var requestTimeout time.Duration
	var workers int

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&siteURL, "site-url", "", "Public web application URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&identityURL, "identity-url", "", "Identity provider URL")
	fs.StringVar(&anonKey, "identity-anon-key", "", "Identity provider anon key")
	fs.StringVar(&serviceKey, "identity-service-key", "", "Identity provider service-role key")
	fs.StringVar(&jwtSecret, "jwt-secret", "", "Access token verification secret")
	fs.StringVar(&mailerURL, "mailer-url", "", "Email service URL")
	fs.StringVar(&mailerKey, "mailer-key", "", "Email service API key")
	fs.StringVar(&audienceID, "audience-id", "", "Contacts audience id")
	fs.StringVar(&mailFrom, "mail-from", "", "Sender address")
	fs.IntVar(&workers, "workers", 0, "Notification worker count")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{SiteURL: siteURL},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Identity: Identity{
			URL:        identityURL,
			AnonKey:    anonKey,
			ServiceKey: serviceKey,
			JWTSecret:  jwtSecret,
		},
		Mailer: Mailer{
			URL:        mailerURL,
			APIKey:     mailerKey,
			AudienceID: audienceID,
			From:       mailFrom,
		},
		Workers:      Workers{NotificationWorkers: workers},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost", and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	host, portStr, ok := strings.Cut(s, ":")
	if !ok || strings.Contains(portStr, ":") {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		if net.ParseIP(host) == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
