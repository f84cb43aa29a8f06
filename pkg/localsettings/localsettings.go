// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package localsettings reads and updates the local.settings.json file that
// holds an Azure Functions project's local runtime settings, including
// connection strings.
package localsettings

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/azure/funcbind/pkg/osutil"
	"github.com/gofrs/flock"
	"github.com/tidwall/gjson"
)

// FileName is the settings file name, always directly inside the functions
// project directory.
const FileName = "local.settings.json"

// ErrEncrypted is returned when the settings file has IsEncrypted set. An
// encrypted file can only be edited after `func settings decrypt`.
var ErrEncrypted = errors.New("local.settings.json is encrypted and cannot be edited")

// Store reads and writes one project's local.settings.json.
type Store struct {
	path string
}

// NewStore returns a Store for the functions project at projectDir.
func NewStore(projectDir string) *Store {
	return &Store{path: filepath.Join(projectDir, FileName)}
}

func (s *Store) Path() string {
	return s.path
}

// GetValue reads a single entry of the Values section. ok is false when the
// file or the key is absent.
func (s *Store) GetValue(key string) (value string, ok bool, err error) {
	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("reading %s: %w", s.path, err)
	}

	result := gjson.GetBytes(data, "Values."+key)
	if !result.Exists() {
		return "", false, nil
	}

	return result.String(), true, nil
}

// IsEncrypted reports whether the settings file has IsEncrypted set. A
// missing file counts as not encrypted.
func (s *Store) IsEncrypted() (bool, error) {
	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("reading %s: %w", s.path, err)
	}

	return gjson.GetBytes(data, "IsEncrypted").Bool(), nil
}

// SetValue upserts key in the Values section, creating the file with a
// default skeleton when it does not exist. Top-level members this package
// does not model (Host, ConnectionStrings, ...) are preserved. Concurrent
// writers are serialized with a sibling lock file.
func (s *Store) SetValue(key string, value string) error {
	lockPath := s.path + ".lock"

	fl := flock.New(lockPath)
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("locking file %s: %w", lockPath, err)
	}
	defer func() {
		if err := fl.Unlock(); err != nil {
			log.Printf("failed to release file lock: %v", err)
		}
	}()

	doc := map[string]json.RawMessage{}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		doc["IsEncrypted"] = json.RawMessage("false")
	case err != nil:
		return fmt.Errorf("reading %s: %w", s.path, err)
	default:
		if gjson.GetBytes(data, "IsEncrypted").Bool() {
			return fmt.Errorf("%s: %w", s.path, ErrEncrypted)
		}

		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("deserializing %s: %w", s.path, err)
		}
	}

	values := map[string]string{}
	if raw, has := doc["Values"]; has {
		if err := json.Unmarshal(raw, &values); err != nil {
			return fmt.Errorf("deserializing %s values: %w", s.path, err)
		}
	}

	values[key] = value

	rawValues, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("serializing values: %w", err)
	}
	doc["Values"] = rawValues

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing %s: %w", s.path, err)
	}

	// Values may carry connection strings, so files we create are owner-only.
	// An existing file keeps whatever mode the functions tooling gave it.
	return os.WriteFile(s.path, append(out, '\n'), osutil.PermissionFileOwnerOnly)
}
