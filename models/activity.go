package models

import "time"

// Activity represents the activities table: one field event under a project.
// org_id is denormalized from the owning project so ownership checks stay a
// single equality match.
type Activity struct {
	ActivityID         uint      `gorm:"primaryKey;column:activity_id" json:"activity_id"`
	ProjectID          uint      `gorm:"column:project_id" json:"project_id"`
	OrgID              string    `gorm:"column:org_id" json:"org_id"`
	Title              string    `gorm:"column:title" json:"title"`
	Date               *string   `gorm:"column:date" json:"date,omitempty"`
	Location           *string   `gorm:"column:location" json:"location,omitempty"`
	Status             *string   `gorm:"column:status" json:"status,omitempty"`
	Description        *string   `gorm:"column:description" json:"description,omitempty"`
	BeneficiariesCount int       `gorm:"column:beneficiaries_count" json:"beneficiaries_count"`
	DaysCount          *int      `gorm:"column:days_count" json:"days_count,omitempty"`
	EndDate            *string   `gorm:"column:end_date" json:"end_date,omitempty"`
	ImageURL           *string   `gorm:"column:image_url" json:"image_url,omitempty"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name for Activity
func (Activity) TableName() string {
	return "activities"
}

// ActivityInput is the partner-submitted shape for creating an activity.
// BeneficiariesCount is deliberately lenient: bad input becomes zero.
type ActivityInput struct {
	ProjectID          uint         `json:"project_id" binding:"required"`
	Title              string       `json:"title" binding:"required"`
	Date               *string      `json:"date,omitempty"`
	Location           *string      `json:"location,omitempty"`
	Status             *string      `json:"status,omitempty"`
	Description        *string      `json:"description,omitempty"`
	BeneficiariesCount LenientCount `json:"beneficiaries_count,omitempty"`
	DaysCount          *int         `json:"days_count,omitempty"`
	EndDate            *string      `json:"end_date,omitempty"`
	ImageURL           *string      `json:"image_url,omitempty"`
}
