package domain

import "time"

// JoinOutcome distinguishes a first join from an idempotent retry.
type JoinOutcome string

const (
	JoinOutcomeJoined        JoinOutcome = "JOINED"
	JoinOutcomeAlreadyMember JoinOutcome = "ALREADY_MEMBER"
)

// RepairReport describes what a reconcile pass found and fixed for one
// organization. A fully consistent organization yields an empty report.
type RepairReport struct {
	OrganizationID string    `json:"organization_id"`
	CheckedAt      time.Time `json:"checked_at"`
	// MissingOnUser lists user IDs that appeared in Organization.Members but
	// lacked the user-side entry; the user side was written to restore the edge.
	MissingOnUser []string `json:"missing_on_user"`
	// MissingOnOrganization lists user IDs whose documents referenced the
	// organization while Organization.Members lacked them; the org side was
	// written to restore the edge.
	MissingOnOrganization []string `json:"missing_on_organization"`
}

// Repaired reports the number of one-sided edges the pass fixed.
func (r *RepairReport) Repaired() int {
	return len(r.MissingOnUser) + len(r.MissingOnOrganization)
}
