package domain

import "time"

type Organization struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// JoinCode is stored normalized (uppercase) and is unique across
	// organizations, compared case-insensitively.
	JoinCode string `json:"join_code"`
	// Members is the organization-side half of the membership edge.
	// User IDs are unique within the slice.
	Members   []Member  `json:"members"`
	Version   int64     `json:"-"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

type MemberRole string

const (
	MemberRoleAdmin     MemberRole = "ADMIN"
	MemberRoleModerator MemberRole = "MODERATOR"
	MemberRoleMember    MemberRole = "MEMBER"
)

// Member is one entry of Organization.Members.
type Member struct {
	UserID   string     `json:"user_id"`
	Role     MemberRole `json:"role"`
	JoinedAt time.Time  `json:"joined_at"`
	IsActive bool       `json:"is_active"`
}

// HasMember reports whether the org-side edge to userID exists.
func (o *Organization) HasMember(userID string) bool {
	for _, m := range o.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// MemberRoleOf returns the role recorded for userID, or "" if absent.
func (o *Organization) MemberRoleOf(userID string) MemberRole {
	for _, m := range o.Members {
		if m.UserID == userID {
			return m.Role
		}
	}
	return ""
}
