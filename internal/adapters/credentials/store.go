// Package credentials persists the single credential record as a JSON
// file in the user's config directory.
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ntncli/ntn/internal/domain"
	"github.com/ntncli/ntn/internal/ports"
)

const (
	credentialsDirMode  = 0o700
	credentialsFileMode = 0o600
	tempFilePattern     = ".credentials-*.json.tmp"
)

type Store struct {
	path string
}

var _ ports.CredentialStore = (*Store)(nil)

// NewStore places the credential file under $HOME/.config/ntn.
func NewStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	return NewStoreAt(filepath.Join(homeDir, ".config", "ntn", "credentials.json")), nil
}

func NewStoreAt(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

func (s *Store) Path() string {
	return s.path
}

// Load never fails: any read or parse problem reads as "no record".
func (s *Store) Load(ctx context.Context) (domain.Record, bool) {
	if err := ctx.Err(); err != nil {
		return domain.Record{}, false
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Record{}, false
	}

	var record domain.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return domain.Record{}, false
	}

	return record, true
}

func (s *Store) Save(ctx context.Context, record domain.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), credentialsDirMode); err != nil {
		return fmt.Errorf("create credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	data = append(data, '\n')

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp credentials file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp credentials file: %w", err)
	}

	if err := tempFile.Chmod(credentialsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp credentials file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp credentials file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace credentials file: %w", err)
	}

	cleanup = false

	return nil
}

func (s *Store) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete credentials file: %w", err)
	}

	return nil
}

func (s *Store) RequireToken(ctx context.Context) (string, error) {
	record, ok := s.Load(ctx)
	if !ok || !record.HasToken() {
		return "", domain.ErrNotAuthenticated
	}

	return record.Token, nil
}
