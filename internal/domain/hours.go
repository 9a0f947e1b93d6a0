package domain

import "time"

type HourLogStatus string

const (
	HourLogStatusPending  HourLogStatus = "PENDING"
	HourLogStatusApproved HourLogStatus = "APPROVED"
	HourLogStatusRejected HourLogStatus = "REJECTED"
)

type HourLog struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	OrganizationID string        `json:"organization_id"`
	ProjectID      *string       `json:"project_id,omitempty"`
	Activity       string        `json:"activity"`
	Description    string        `json:"description"`
	Hours          float64       `json:"hours"`
	Date           time.Time     `json:"date"`
	Status         HourLogStatus `json:"status"`
	ReviewedBy     *string       `json:"reviewed_by,omitempty"`
	CreatedOn      time.Time     `json:"created_on"`
}
