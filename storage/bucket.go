package storage

import (
	"context"
	"fmt"

	"storeit/appwrite"
	"storeit/config"
)

// Bucket stores blobs in the BaaS object-storage bucket through the
// privileged client.
type Bucket struct {
	client   *appwrite.Client
	endpoint string
	project  string
	bucketID string
}

func NewBucket(cfg config.Appwrite, admin *appwrite.Client) *Bucket {
	return &Bucket{
		client:   admin,
		endpoint: cfg.Endpoint,
		project:  cfg.ProjectID,
		bucketID: cfg.BucketID,
	}
}

func (b *Bucket) Put(ctx context.Context, id, name string, data []byte) (*Object, error) {
	f, err := b.client.CreateFile(ctx, b.bucketID, id, name, data)
	if err != nil {
		return nil, err
	}

	return &Object{
		ID:   f.ID,
		Name: f.Name,
		Size: f.SizeOriginal,
	}, nil
}

func (b *Bucket) Delete(ctx context.Context, id string) error {
	return b.client.DeleteFile(ctx, b.bucketID, id)
}

func (b *Bucket) FileURL(id string) string {
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/view?project=%s", b.endpoint, b.bucketID, id, b.project)
}
