package domain

import "time"

// AuditLog represents an audit event. AccountID is empty when the caller could not be identified.
type AuditLog struct {
	ID        string
	AccountID string
	Action    string
	Resource  string
	IP        string
	Metadata  string
	CreatedAt time.Time
}
