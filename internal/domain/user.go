package domain

import "time"

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	AvatarURL    string `json:"avatar_url"`
	// Organizations is the user-side half of the membership edge.
	// Organization IDs are unique within the slice, and CurrentOrganization,
	// when set, must be one of them.
	Organizations       []OrgMembership `json:"organizations"`
	CurrentOrganization *string         `json:"current_organization,omitempty"`
	// Version is bumped on every document write; writes carry the version
	// they read and fail on mismatch.
	Version   int64     `json:"-"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// OrgMembership is one entry of User.Organizations.
type OrgMembership struct {
	OrganizationID string     `json:"organization_id"`
	Role           MemberRole `json:"role"`
	JoinedAt       time.Time  `json:"joined_at"`
}

// HasOrganization reports whether the user-side edge to orgID exists.
func (u *User) HasOrganization(orgID string) bool {
	for _, m := range u.Organizations {
		if m.OrganizationID == orgID {
			return true
		}
	}
	return false
}
