package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExternalProfile_CandidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		profile *ExternalProfile
		want    string
	}{
		{
			name:    "no addresses falls back to placeholder",
			profile: &ExternalProfile{ID: "user_1"},
			want:    "user-user_1@clerk.local",
		},
		{
			name: "first address when no primary id",
			profile: &ExternalProfile{EmailAddresses: []ExternalEmailAddress{
				{ID: "e1", EmailAddress: "A@B.com"},
				{ID: "e2", EmailAddress: "c@d.com"},
			}},
			want: "a@b.com",
		},
		{
			name: "primary id wins",
			profile: &ExternalProfile{
				PrimaryEmailAddressID: "e2",
				EmailAddresses: []ExternalEmailAddress{
					{ID: "e1", EmailAddress: "a@b.com"},
					{ID: "e2", EmailAddress: "c@d.com"},
				},
			},
			want: "c@d.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.CandidateEmail("user_1"))
		})
	}
}

func TestExternalProfile_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		profile  *ExternalProfile
		email    string
		fallback string
		want     string
	}{
		{"first and last", &ExternalProfile{FirstName: "A", LastName: "B", Username: "ab"}, "x@y.com", "", "A B"},
		{"only first uses username", &ExternalProfile{FirstName: "A", Username: "ab"}, "x@y.com", "", "ab"},
		{"email local part", &ExternalProfile{}, "merchant@shop.com", "", "merchant"},
		{"fallback", &ExternalProfile{}, "", "Existing", "Existing"},
		{"nil profile", nil, "n@m.com", "", "n"},
		{"long name is cut", &ExternalProfile{FirstName: strings.Repeat("á", 90), LastName: strings.Repeat("b", 30)}, "", "", strings.Repeat("á", 90) + " " + strings.Repeat("b", 9)},
		{"long username is cut", &ExternalProfile{Username: strings.Repeat("u", 150)}, "", "", strings.Repeat("u", MaxNameLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.DisplayName(tt.email, tt.fallback))
		})
	}
}

func TestUser_LinkExternal(t *testing.T) {
	user := &User{}
	assert.False(t, user.IsLinked())

	user.LinkExternal("user_42")
	assert.True(t, user.IsLinked())
	assert.Equal(t, "user_42", *user.ExternalID)
	assert.False(t, user.HasLocalCredential())
}
