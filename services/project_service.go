package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"partner-portal-api/models"

	"gorm.io/gorm"
)

type projectRepository interface {
	OrgExists(orgID string) (bool, error)
	Create(project *models.Project) error
	FindByID(id uint) (*models.Project, error)
	FindOwned(id uint, orgID string) (*models.Project, error)
	Save(project *models.Project) error
	DeleteCascade(id uint, orgID string) (bool, error)
	ListByOrg(orgID string) ([]models.Project, error)
	Search(filter ProjectSearchFilter) ([]models.Project, int64, error)
	CreateActivity(activity *models.Activity) error
	DeleteActivity(id uint, orgID string) (bool, error)
	ListActivities(projectID uint, orgID string) ([]models.Activity, error)
}

// ProjectService is the organization-scoped project and activity store. Every
// write is filtered on (id, org_id); that equality match is the whole access
// control for these rows.
type ProjectService struct {
	repo projectRepository
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{repo: &gormProjectRepository{db: db}}
}

// ProjectSearchFilter drives the reviewer-side paginated listing. Query is
// matched as a case-insensitive substring across organization name, project
// id/name, funder, sector, type and location; the remaining filters are
// AND-combined on top.
type ProjectSearchFilter struct {
	Query       string
	Sector      string
	ProjectType string
	Location    string
	Page        int
	Limit       int
}

// CreateProject validates the owner and the closed-set fields, then persists.
// The owning organization only needs to exist; its activation state is not
// checked here.
func (s *ProjectService) CreateProject(orgID string, input models.ProjectInput) (*models.Project, error) {
	exists, err := s.repo.OrgExists(orgID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: organization %s", ErrNotFound, orgID)
	}

	normalized, err := input.Normalized()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	project := &models.Project{
		OrgID:     orgID,
		CreatedAt: time.Now(),
	}
	project.ApplyInput(normalized)
	if err := s.repo.Create(project); err != nil {
		return nil, err
	}
	return project, nil
}

// UpdateProject replaces the mutable fields of an owned project.
func (s *ProjectService) UpdateProject(orgID string, id uint, input models.ProjectInput) (*models.Project, error) {
	project, err := s.repo.FindOwned(id, orgID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %d", ErrNotFound, id)
	}

	normalized, err := input.Normalized()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	project.ApplyInput(normalized)
	now := time.Now()
	project.UpdatedAt = &now
	if err := s.repo.Save(project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes an owned project and all of its activities.
func (s *ProjectService) DeleteProject(orgID string, id uint) error {
	deleted, err := s.repo.DeleteCascade(id, orgID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: project %d", ErrNotFound, id)
	}
	return nil
}

func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	project, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %d", ErrNotFound, id)
	}
	return project, nil
}

func (s *ProjectService) ListByOrg(orgID string) ([]models.Project, error) {
	return s.repo.ListByOrg(orgID)
}

// Search returns one reviewer page plus the total match count.
func (s *ProjectService) Search(filter ProjectSearchFilter) ([]models.Project, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.repo.Search(filter)
}

// CreateActivity records a field event under an owned project. The
// beneficiaries count has already been coerced to a non-negative value at the
// decoding boundary.
func (s *ProjectService) CreateActivity(orgID string, input models.ActivityInput) (*models.Activity, error) {
	project, err := s.repo.FindOwned(input.ProjectID, orgID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %d", ErrNotFound, input.ProjectID)
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: activity title is required", ErrInvalidInput)
	}

	activity := &models.Activity{
		ProjectID:          input.ProjectID,
		OrgID:              orgID,
		Title:              input.Title,
		Date:               input.Date,
		Location:           input.Location,
		Status:             input.Status,
		Description:        input.Description,
		BeneficiariesCount: input.BeneficiariesCount.Int(),
		DaysCount:          input.DaysCount,
		EndDate:            input.EndDate,
		ImageURL:           input.ImageURL,
		CreatedAt:          time.Now(),
	}
	if err := s.repo.CreateActivity(activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *ProjectService) DeleteActivity(orgID string, id uint) error {
	deleted, err := s.repo.DeleteActivity(id, orgID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: activity %d", ErrNotFound, id)
	}
	return nil
}

func (s *ProjectService) ListActivities(orgID string, projectID uint) ([]models.Activity, error) {
	return s.repo.ListActivities(projectID, orgID)
}

type gormProjectRepository struct {
	db *gorm.DB
}

func (r *gormProjectRepository) OrgExists(orgID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Organization{}).Where("org_id = ?", orgID).Count(&count).Error
	return count > 0, err
}

func (r *gormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *gormProjectRepository) FindByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.Preload("Organization").Where("project_id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *gormProjectRepository) FindOwned(id uint, orgID string) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("project_id = ? AND org_id = ?", id, orgID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *gormProjectRepository) Save(project *models.Project) error {
	return r.db.Save(project).Error
}

func (r *gormProjectRepository) DeleteCascade(id uint, orgID string) (bool, error) {
	deleted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("project_id = ? AND org_id = ?", id, orgID).Delete(&models.Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func (r *gormProjectRepository) ListByOrg(orgID string) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("org_id = ?", orgID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *gormProjectRepository) Search(filter ProjectSearchFilter) ([]models.Project, int64, error) {
	q := r.db.Model(&models.Project{}).
		Joins("LEFT JOIN organizations ON organizations.org_id = projects.org_id")

	if filter.Query != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(filter.Query)) + "%"
		q = q.Where(
			`LOWER(organizations.org_name) LIKE ?
				OR LOWER(organizations.org_name_full) LIKE ?
				OR CAST(projects.project_id AS CHAR) LIKE ?
				OR LOWER(COALESCE(projects.project_name, '')) LIKE ?
				OR LOWER(projects.bailleur) LIKE ?
				OR LOWER(projects.sector) LIKE ?
				OR LOWER(projects.project_type) LIKE ?
				OR LOWER(projects.location) LIKE ?`,
			like, like, like, like, like, like, like, like,
		)
	}
	if filter.Sector != "" {
		q = q.Where("projects.sector = ?", filter.Sector)
	}
	if filter.ProjectType != "" {
		q = q.Where("projects.project_type = ?", filter.ProjectType)
	}
	if filter.Location != "" {
		q = q.Where("LOWER(projects.location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := q.Preload("Organization").
		Order("projects.created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&projects).Error
	return projects, total, err
}

func (r *gormProjectRepository) CreateActivity(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

func (r *gormProjectRepository) DeleteActivity(id uint, orgID string) (bool, error) {
	res := r.db.Where("activity_id = ? AND org_id = ?", id, orgID).Delete(&models.Activity{})
	return res.RowsAffected > 0, res.Error
}

func (r *gormProjectRepository) ListActivities(projectID uint, orgID string) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.Where("project_id = ? AND org_id = ?", projectID, orgID).
		Order("created_at DESC").
		Find(&activities).Error
	return activities, err
}
