package models

import "time"

// NotifyRequest is the inbound request to build and deliver an alert for a
// batch of matched events.
type NotifyRequest struct {
	Rule    string  `json:"rule"`
	Matches []Match `json:"matches"`
}

// NotifyResponse reports the outcome of a delivered alert.
type NotifyResponse struct {
	RuleName      string `json:"rule_name"`
	SourceRef     string `json:"source_ref"`
	ArtifactCount int    `json:"artifact_count"`
	TagCount      int    `json:"tag_count"`
}

// Delivery status constants
const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)

// DeliveryRecord is one journaled delivery attempt.
type DeliveryRecord struct {
	ID            string    `json:"id"`
	RuleName      string    `json:"rule_name"`
	SourceRef     string    `json:"source_ref"`
	Status        string    `json:"status"` // sent, failed
	Error         string    `json:"error,omitempty"`
	ArtifactCount int       `json:"artifact_count"`
	TagCount      int       `json:"tag_count"`
	DeliveredAt   time.Time `json:"delivered_at"`
}

// ListDeliveriesRequest represents query parameters for listing deliveries.
type ListDeliveriesRequest struct {
	Page     int
	Limit    int
	RuleName string
	Status   string
}

// ListDeliveriesResponse represents the response for listing deliveries.
type ListDeliveriesResponse struct {
	Deliveries []*DeliveryRecord `json:"deliveries"`
	Pagination Pagination        `json:"pagination"`
}

// Pagination metadata for list responses
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
