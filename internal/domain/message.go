package domain

import "time"

// Message is an entry on an organization's message board. Delivery is plain
// request/response; there is no real-time channel.
type Message struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	AuthorID       string    `json:"author_id"`
	Body           string    `json:"body"`
	CreatedOn      time.Time `json:"created_on"`
}
