package models

import "time"

// Project represents the projects table. Each project is owned by exactly one
// organization; org_id is immutable after creation.
type Project struct {
	ProjectID          uint       `gorm:"primaryKey;column:project_id" json:"project_id"`
	OrgID              string     `gorm:"column:org_id" json:"org_id"`
	Bailleur           string     `gorm:"column:bailleur" json:"bailleur"`
	StartDate          string     `gorm:"column:start_date" json:"start_date"`
	EndDate            string     `gorm:"column:end_date" json:"end_date"`
	ProjectType        string     `gorm:"column:project_type" json:"project_type"`
	Sector             string     `gorm:"column:sector" json:"sector"`
	Location           string     `gorm:"column:location" json:"location"`
	ProjectName        *string    `gorm:"column:project_name" json:"project_name,omitempty"`
	ProjectDescription *string    `gorm:"column:project_description" json:"project_description,omitempty"`
	BeneficiariesCount int        `gorm:"column:beneficiaries_count" json:"beneficiaries_count"`
	ActivitiesCount    int        `gorm:"column:activities_count" json:"activities_count"`
	ManagerName        *string    `gorm:"column:manager_name" json:"manager_name,omitempty"`
	ManagerEmail       *string    `gorm:"column:manager_email" json:"manager_email,omitempty"`
	ManagerPhone       *string    `gorm:"column:manager_phone" json:"manager_phone,omitempty"`
	Password           *string    `gorm:"column:password" json:"-"`
	CreatedAt          time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`

	Organization *Organization `gorm:"foreignKey:OrgID;references:OrgID" json:"organization,omitempty"`
}

// TableName overrides the table name for Project
func (Project) TableName() string {
	return "projects"
}

// ProjectInput is the partner-submitted shape for creating or replacing a
// project. The same shape is held verbatim as an update-request payload.
type ProjectInput struct {
	Bailleur           string       `json:"bailleur" binding:"required"`
	StartDate          string       `json:"start_date" binding:"required"`
	EndDate            string       `json:"end_date" binding:"required"`
	ProjectType        string       `json:"project_type" binding:"required"`
	Sector             string       `json:"sector" binding:"required"`
	Location           string       `json:"location" binding:"required"`
	ProjectName        *string      `json:"project_name,omitempty"`
	ProjectDescription *string      `json:"project_description,omitempty"`
	BeneficiariesCount LenientCount `json:"beneficiaries_count,omitempty"`
	ActivitiesCount    LenientCount `json:"activities_count,omitempty"`
	ManagerName        *string      `json:"manager_name,omitempty"`
	ManagerEmail       *string      `json:"manager_email,omitempty"`
	ManagerPhone       *string      `json:"manager_phone,omitempty"`
}

// Normalized returns a copy with project type and sector mapped to their
// canonical values.
func (in ProjectInput) Normalized() (ProjectInput, error) {
	projectType, err := NormalizeProjectType(in.ProjectType)
	if err != nil {
		return ProjectInput{}, err
	}
	sector, err := NormalizeSector(in.Sector)
	if err != nil {
		return ProjectInput{}, err
	}
	out := in
	out.ProjectType = projectType
	out.Sector = sector
	return out, nil
}

// ApplyInput overwrites the mutable fields of the project. Identity fields
// (project_id, org_id), the project credential and created_at are preserved.
func (p *Project) ApplyInput(in ProjectInput) {
	p.Bailleur = in.Bailleur
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
	p.ProjectType = in.ProjectType
	p.Sector = in.Sector
	p.Location = in.Location
	p.ProjectName = in.ProjectName
	p.ProjectDescription = in.ProjectDescription
	p.BeneficiariesCount = in.BeneficiariesCount.Int()
	p.ActivitiesCount = in.ActivitiesCount.Int()
	p.ManagerName = in.ManagerName
	p.ManagerEmail = in.ManagerEmail
	p.ManagerPhone = in.ManagerPhone
}
