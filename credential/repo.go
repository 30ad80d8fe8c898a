package credential

import "context"

// Repo persists the single credential record.
// Load returns errors.ErrNotFound when no record exists.
type Repo interface {
	Load(ctx context.Context) (*Credential, error)
	Save(ctx context.Context, c *Credential) error
	Delete(ctx context.Context) error
}
