// Package storage abstracts where the blob half of a file lives. The
// document half always lives in the BaaS; blobs can live in the BaaS
// bucket or in S3-compatible object storage, chosen by config.
package storage

import (
	"context"
	"fmt"

	"storeit/appwrite"
	"storeit/config"
)

// Object is the stored blob's metadata as reported by the backend.
type Object struct {
	ID   string
	Name string
	Size int64
}

// Store writes and removes blobs. Both operations are single-shot;
// there is no chunked transfer.
type Store interface {
	Put(ctx context.Context, id, name string, data []byte) (*Object, error)
	Delete(ctx context.Context, id string) error

	// FileURL derives the public URL of a blob from its id alone
	FileURL(id string) string
}

// New picks the blob backend from config.
func New(cfg *config.Config, admin *appwrite.Client) (Store, error) {
	switch cfg.StorageType {
	case "s3":
		return NewS3(cfg.S3)
	case "appwrite":
		return NewBucket(cfg.Appwrite, admin), nil
	default:
		return nil, fmt.Errorf("invalid storage type %q", cfg.StorageType)
	}
}
