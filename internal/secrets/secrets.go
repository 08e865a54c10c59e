// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads the ADS API token. Tokens live in a directory of
// plain-text files (filename is the key, trimmed contents the value), in a
// .env file, or in the process environment.
//
// Supported key files: ads-api-token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultDir is the secrets directory relative to the working directory.
	DefaultDir = ".secrets"

	// TokenKey is the secrets file holding the ADS token.
	TokenKey = "ads-api-token"

	// TokenEnv is the environment variable holding the ADS token.
	TokenEnv = "ADS_API_TOKEN"
)

// Source names where a token was found.
type Source string

const (
	SourceNone   Source = ""
	SourceFlag   Source = "flag"
	SourceEnv    Source = "env"
	SourceFile   Source = "file"
	SourceConfig Source = "config"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn().Err(err).Str("secret", name).Msg("could not read secret")
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadDotEnv merges a .env file into the process environment. Variables
// already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Resolver picks the ADS token from, in order: an explicit flag value, the
// ADS_API_TOKEN environment variable, the secrets directory, and the config
// file value.
type Resolver struct {
	Flag    string
	Secrets map[string]string
	Config  string

	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Token returns the first non-empty token and where it came from. It
// returns SourceNone and an empty string when nothing is configured.
func (r Resolver) Token() (string, Source) {
	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(r.Flag); v != "" {
		return v, SourceFlag
	}
	if v := strings.TrimSpace(getenv(TokenEnv)); v != "" {
		return v, SourceEnv
	}
	if v := strings.TrimSpace(r.Secrets[TokenKey]); v != "" {
		return v, SourceFile
	}
	if v := strings.TrimSpace(r.Config); v != "" {
		return v, SourceConfig
	}
	return "", SourceNone
}
