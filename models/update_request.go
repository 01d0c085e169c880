package models

import (
	"encoding/json"
	"time"
)

// Update request statuses. A request leaves pending exactly once.
const (
	UpdateStatusPending  = "pending"
	UpdateStatusApproved = "approved"
	UpdateStatusRejected = "rejected"
)

// UpdateRequest represents the update_requests table: a partner-proposed
// replacement payload for an existing project, held until a reviewer decides.
type UpdateRequest struct {
	RequestID uint            `gorm:"primaryKey;column:request_id" json:"request_id"`
	OrgID     string          `gorm:"column:org_id" json:"org_id"`
	ProjectID uint            `gorm:"column:project_id" json:"project_id"`
	Payload   json.RawMessage `gorm:"column:payload" json:"payload,omitempty"`
	Status    string          `gorm:"column:status" json:"status"`
	CreatedAt time.Time       `gorm:"column:created_at" json:"created_at"`
	DecidedAt *time.Time      `gorm:"column:decided_at" json:"decided_at,omitempty"`
}

// TableName overrides the table name for UpdateRequest
func (UpdateRequest) TableName() string {
	return "update_requests"
}

// PayloadInput decodes the stored payload back into project-input shape.
func (r *UpdateRequest) PayloadInput() (ProjectInput, error) {
	var input ProjectInput
	err := json.Unmarshal(r.Payload, &input)
	return input, err
}
