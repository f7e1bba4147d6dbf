// Package model defines the document shapes stored in the BaaS and the
// derived aggregates built from them
package model

import "time"

// User mirrors a document in the users collection. AccountID links the
// document to the BaaS account/session subsystem; the document itself is
// never mutated after creation.
type User struct {
	ID        string    `json:"$id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	AccountID string    `json:"accountId"`
	CreatedAt time.Time `json:"$createdAt"`
	UpdatedAt time.Time `json:"$updatedAt"`
}
