package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Organization represents the organizations table. Partner accounts are never
// physically deleted; deactivation keeps project ownership history intact.
type Organization struct {
	OrgID        string    `gorm:"primaryKey;column:org_id" json:"org_id"`
	OrgName      string    `gorm:"column:org_name;unique" json:"org_name"`
	OrgNameFull  string    `gorm:"column:org_name_full" json:"org_name_full"`
	OrgType      string    `gorm:"column:org_type" json:"org_type"`
	ContactName  *string   `gorm:"column:contact_name" json:"contact_name,omitempty"`
	ContactEmail string    `gorm:"column:contact_email" json:"contact_email"`
	ContactPhone *string   `gorm:"column:contact_phone" json:"contact_phone,omitempty"`
	Password     *string   `gorm:"column:password" json:"-"`
	IsActivated  bool      `gorm:"column:is_activated" json:"is_activated"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides
func (Organization) TableName() string {
	return "organizations"
}

// HasCredential reports whether the account has been claimed. An organization
// without a credential hash cannot authenticate.
func (o *Organization) HasCredential() bool {
	return o.Password != nil && *o.Password != ""
}

// NewOrgID generates a stable external identifier, e.g. "ORG-A1B2C3D4".
func NewOrgID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORG-" + strings.ToUpper(raw[:8])
}
