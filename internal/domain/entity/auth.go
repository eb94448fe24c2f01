package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// LocalClaims is the payload of a locally issued credential.
type LocalClaims struct {
	UserID    uuid.UUID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ExternalIdentity is what the external provider asserts about a session token.
type ExternalIdentity struct {
	SubjectID string
	SessionID string
}

// ExternalEmailAddress is one address attached to an external profile.
type ExternalEmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// ExternalProfile is the provider-side user object. It is attached to the request
// on the external authentication path and carried by provider webhook events.
type ExternalProfile struct {
	ID                    string                 `json:"id"`
	EmailAddresses        []ExternalEmailAddress `json:"email_addresses"`
	PrimaryEmailAddressID string                 `json:"primary_email_address_id,omitempty"`
	FirstName             string                 `json:"first_name,omitempty"`
	LastName              string                 `json:"last_name,omitempty"`
	Username              string                 `json:"username,omitempty"`
	ImageURL              string                 `json:"image_url,omitempty"`
}

// placeholderEmailDomain keeps provider accounts without an address unique on email.
const placeholderEmailDomain = "clerk.local"

// PrimaryEmail returns the primary address, falling back to the first one. Empty when none.
func (p *ExternalProfile) PrimaryEmail() string {
	if p == nil || len(p.EmailAddresses) == 0 {
		return ""
	}

	if p.PrimaryEmailAddressID != "" {
		for _, addr := range p.EmailAddresses {
			if addr.ID == p.PrimaryEmailAddressID && addr.EmailAddress != "" {
				return addr.EmailAddress
			}
		}
	}

	return p.EmailAddresses[0].EmailAddress
}

// CandidateEmail returns the email used for reconciliation: the primary address or
// a placeholder derived from the subject id.
func (p *ExternalProfile) CandidateEmail(subjectID string) string {
	if email := NormalizeEmail(p.PrimaryEmail()); email != "" {
		return email
	}

	return "user-" + subjectID + "@" + placeholderEmailDomain
}

// MaxNameLength is the width of the stored display name, in characters.
const MaxNameLength = 100

// DisplayName prefers "First Last", then the username, then the email local part,
// then fallback. Provider-derived names are cut to MaxNameLength.
func (p *ExternalProfile) DisplayName(email, fallback string) string {
	if p != nil {
		first := strings.TrimSpace(p.FirstName)
		last := strings.TrimSpace(p.LastName)
		if first != "" && last != "" {
			return truncateName(first + " " + last)
		}
		if username := strings.TrimSpace(p.Username); username != "" {
			return truncateName(username)
		}
	}

	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return truncateName(local)
	}

	return fallback
}

func truncateName(name string) string {
	if utf8.RuneCountInString(name) <= MaxNameLength {
		return name
	}

	return strings.TrimSpace(string([]rune(name)[:MaxNameLength]))
}

// NormalizeEmail lower-cases and trims an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
