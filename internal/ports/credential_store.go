package ports

import (
	"context"

	"github.com/ntncli/ntn/internal/domain"
)

type CredentialStore interface {
	// Load returns the stored record, or false when no usable record
	// exists. Read and parse failures are treated as absence.
	Load(ctx context.Context) (domain.Record, bool)
	Save(ctx context.Context, record domain.Record) error
	// Delete removes the stored record; deleting an absent record is not
	// an error.
	Delete(ctx context.Context) error
	// RequireToken returns the stored token or domain.ErrNotAuthenticated.
	RequireToken(ctx context.Context) (string, error)
}
