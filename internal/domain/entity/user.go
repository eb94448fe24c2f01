// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the canonical identity record. A row may be reachable through a local
// email/password credential, an external identity provider subject, or both.
type User struct {
	ID              uuid.UUID  // Generated at creation, never changes.
	Email           string     // Unique across all rows; secondary lookup key.
	Name            string     // Display name, provider-derived or self-set.
	Phone           *string    // Optional contact number.
	PasswordHash    string     // Empty when the row was provisioned by the external provider.
	ExternalID      *string    // External provider subject id; unique when present.
	Role            Role       // MERCHANT on every self-service path.
	IsActive        bool       // False marks the row as soft-deleted.
	WalletAddress   *string    // Set by the wallet issuance flow.
	WalletCreatedAt *time.Time // Set together with WalletAddress.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasLocalCredential reports whether the user can sign in with a password.
func (u *User) HasLocalCredential() bool {
	return u.PasswordHash != ""
}

// IsLinked reports whether the user is linked to an external identity.
func (u *User) IsLinked() bool {
	return u.ExternalID != nil && *u.ExternalID != ""
}

// LinkExternal sets the external subject id on the user.
func (u *User) LinkExternal(subjectID string) {
	id := subjectID
	u.ExternalID = &id
}
