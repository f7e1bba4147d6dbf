package appwrite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// DocumentList is the envelope of a list-documents call. Documents stay
// raw so each caller unmarshals into its own model type.
type DocumentList struct {
	Total     int64             `json:"total"`
	Documents []json.RawMessage `json:"documents"`
}

func (c *Client) documentsPath(databaseID, collectionID string) string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents", databaseID, collectionID)
}

// CreateDocument writes a new document with the given id and returns
// the stored document as the BaaS sees it.
func (c *Client) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (json.RawMessage, error) {
	var doc json.RawMessage
	err := c.call(ctx, http.MethodPost, c.documentsPath(databaseID, collectionID), map[string]any{
		"documentId": documentID,
		"data":       data,
	}, &doc)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ListDocuments returns documents matching all given queries.
func (c *Client) ListDocuments(ctx context.Context, databaseID, collectionID string, queries ...Query) (*DocumentList, error) {
	params := url.Values{}
	for _, q := range queries {
		params.Add("queries[]", q.String())
	}

	path := c.documentsPath(databaseID, collectionID)
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var list DocumentList
	if err := c.call(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}

	return &list, nil
}

// UpdateDocument overwrites the given attributes of a document and
// returns the updated document.
func (c *Client) UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (json.RawMessage, error) {
	var doc json.RawMessage
	err := c.call(ctx, http.MethodPatch, c.documentsPath(databaseID, collectionID)+"/"+documentID, map[string]any{
		"data": data,
	}, &doc)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// DeleteDocument removes a document.
func (c *Client) DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error {
	return c.call(ctx, http.MethodDelete, c.documentsPath(databaseID, collectionID)+"/"+documentID, nil, nil)
}
