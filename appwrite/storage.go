package appwrite

import (
	"context"
	"fmt"
	"net/http"
)

// BucketFile is the metadata of a blob held in Appwrite object storage.
type BucketFile struct {
	ID           string `json:"$id"`
	Name         string `json:"name"`
	SizeOriginal int64  `json:"sizeOriginal"`
	MimeType     string `json:"mimeType"`
}

// CreateFile writes a blob to the bucket in one shot.
func (c *Client) CreateFile(ctx context.Context, bucketID, fileID, name string, data []byte) (*BucketFile, error) {
	var f BucketFile
	path := fmt.Sprintf("/storage/buckets/%s/files", bucketID)
	if err := c.upload(ctx, path, fileID, name, data, &f); err != nil {
		return nil, err
	}

	return &f, nil
}

// DeleteFile removes a blob from the bucket.
func (c *Client) DeleteFile(ctx context.Context, bucketID, fileID string) error {
	path := fmt.Sprintf("/storage/buckets/%s/files/%s", bucketID, fileID)
	return c.call(ctx, http.MethodDelete, path, nil, nil)
}
