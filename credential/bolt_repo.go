package credential

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/eduflow/internal/errors"
	"go.etcd.io/bbolt"
)

const (
	credentialBucket = "credential"
	credentialKey    = "current"
)

// BoltRepo stores the credential under a fixed key in a BoltDB file.
type BoltRepo struct {
	db *bbolt.DB
}

var _ Repo = (*BoltRepo)(nil)

// OpenBoltRepo opens (or creates) the BoltDB file at path.
func OpenBoltRepo(path string) (*BoltRepo, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("credential path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open credential db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(credentialBucket)); err != nil {
			return fmt.Errorf("create credential bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltRepo{db: db}, nil
}

func (r *BoltRepo) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *BoltRepo) Load(ctx context.Context) (*Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var c Credential
	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(credentialBucket))
		if bucket == nil {
			return fmt.Errorf("credential bucket is missing")
		}
		payload := bucket.Get([]byte(credentialKey))
		if payload == nil {
			return apperrors.ErrNotFound
		}
		if err := json.Unmarshal(payload, &c); err != nil {
			return fmt.Errorf("decode credential: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *BoltRepo) Save(ctx context.Context, c *Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("credential is required")
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(credentialBucket))
		if bucket == nil {
			return fmt.Errorf("credential bucket is missing")
		}
		return bucket.Put([]byte(credentialKey), payload)
	})
}

func (r *BoltRepo) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(credentialBucket))
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(credentialKey))
	})
}
