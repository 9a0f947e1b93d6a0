package domain

// OrgStats is the aggregate dashboard view for one organization.
type OrgStats struct {
	OrganizationID string  `json:"organization_id"`
	MemberCount    int32   `json:"member_count"`
	TotalHours     float64 `json:"total_hours"`
	ApprovedHours  float64 `json:"approved_hours"`
	ActiveProjects int32   `json:"active_projects"`
	UpcomingEvents int32   `json:"upcoming_events"`
}

// UserStats is the aggregate view for one user within one organization.
type UserStats struct {
	UserID         string  `json:"user_id"`
	OrganizationID string  `json:"organization_id"`
	TotalHours     float64 `json:"total_hours"`
	ApprovedHours  float64 `json:"approved_hours"`
	LogCount       int32   `json:"log_count"`
}
