package domain

import "time"

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// DistributionRequest is a distributor application. UniqueID is the
// unguessable token embedded in the emailed accept/decline links.
type DistributionRequest struct {
	ID           int64      `json:"id"`
	UniqueID     string     `json:"uniqueId"`
	BusinessName string     `json:"businessName"`
	FullName     string     `json:"fullName"`
	EmailAddress string     `json:"emailAddress"`
	Territory    string     `json:"territory"`
	City         string     `json:"city,omitempty"`
	State        string     `json:"state,omitempty"`
	Status       string     `json:"status"`
	RespondedAt  *time.Time `json:"respondedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Distributor is materialized from an accepted request.
type Distributor struct {
	ID           int64     `json:"id"`
	BusinessName string    `json:"businessName"`
	ContactName  string    `json:"contactName"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

type SubmitInput struct {
	BusinessName string
	FullName     string
	EmailAddress string
	Territory    string
	City         string
	State        string
}
