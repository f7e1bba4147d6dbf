package model

import "time"

// FileType is the closed category a file falls into, derived from its
// extension at upload time.
type FileType string

const (
	TypeImage    FileType = "image"
	TypeDocument FileType = "document"
	TypeVideo    FileType = "video"
	TypeAudio    FileType = "audio"
	TypeOther    FileType = "other"
)

// FileTypes lists every category in the order usage summaries report them.
var FileTypes = []FileType{TypeImage, TypeDocument, TypeVideo, TypeAudio, TypeOther}

// File mirrors a document in the files collection. The document and the
// blob it references through BucketFileID are two halves of one logical
// entity and are kept in lockstep by the upload/delete ordering rules.
type File struct {
	ID        string   `json:"$id"`
	Type      FileType `json:"type"`
	Name      string   `json:"name"`
	URL       string   `json:"url"`
	Extension string   `json:"extension"`
	Size      int64    `json:"size"`
	Owner     string   `json:"owner"`
	AccountID string   `json:"accountId"`

	// Emails granted access, distinct from ownership. Replaced
	// wholesale by the share action
	Users []string `json:"users"`

	BucketFileID string    `json:"bucketFileId"`
	CreatedAt    time.Time `json:"$createdAt"`
	UpdatedAt    time.Time `json:"$updatedAt"`
}
