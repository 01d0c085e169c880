package services

import (
	"errors"
	"strings"
	"testing"

	"partner-portal-api/models"
)

type fakeProjectRepo struct {
	orgs       map[string]bool
	projects   map[uint]*models.Project
	activities map[uint]*models.Activity
	nextID     uint
	lastFilter ProjectSearchFilter
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{
		orgs:       make(map[string]bool),
		projects:   make(map[uint]*models.Project),
		activities: make(map[uint]*models.Activity),
	}
}

func (r *fakeProjectRepo) OrgExists(orgID string) (bool, error) {
	return r.orgs[orgID], nil
}

func (r *fakeProjectRepo) Create(project *models.Project) error {
	r.nextID++
	project.ProjectID = r.nextID
	copied := *project
	r.projects[project.ProjectID] = &copied
	return nil
}

func (r *fakeProjectRepo) FindByID(id uint) (*models.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	copied := *project
	return &copied, nil
}

func (r *fakeProjectRepo) FindOwned(id uint, orgID string) (*models.Project, error) {
	project, ok := r.projects[id]
	if !ok || project.OrgID != orgID {
		return nil, nil
	}
	copied := *project
	return &copied, nil
}

func (r *fakeProjectRepo) Save(project *models.Project) error {
	copied := *project
	r.projects[project.ProjectID] = &copied
	return nil
}

func (r *fakeProjectRepo) DeleteCascade(id uint, orgID string) (bool, error) {
	project, ok := r.projects[id]
	if !ok || project.OrgID != orgID {
		return false, nil
	}
	delete(r.projects, id)
	for actID, act := range r.activities {
		if act.ProjectID == id {
			delete(r.activities, actID)
		}
	}
	return true, nil
}

func (r *fakeProjectRepo) ListByOrg(orgID string) ([]models.Project, error) {
	var out []models.Project
	for _, project := range r.projects {
		if project.OrgID == orgID {
			out = append(out, *project)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) Search(filter ProjectSearchFilter) ([]models.Project, int64, error) {
	r.lastFilter = filter
	var out []models.Project
	for _, project := range r.projects {
		if filter.Query != "" &&
			!strings.Contains(strings.ToLower(project.Bailleur), strings.ToLower(filter.Query)) {
			continue
		}
		if filter.Sector != "" && project.Sector != filter.Sector {
			continue
		}
		out = append(out, *project)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProjectRepo) CreateActivity(activity *models.Activity) error {
	r.nextID++
	activity.ActivityID = r.nextID
	copied := *activity
	r.activities[activity.ActivityID] = &copied
	return nil
}

func (r *fakeProjectRepo) DeleteActivity(id uint, orgID string) (bool, error) {
	act, ok := r.activities[id]
	if !ok || act.OrgID != orgID {
		return false, nil
	}
	delete(r.activities, id)
	return true, nil
}

func (r *fakeProjectRepo) ListActivities(projectID uint, orgID string) ([]models.Activity, error) {
	var out []models.Activity
	for _, act := range r.activities {
		if act.ProjectID == projectID && act.OrgID == orgID {
			out = append(out, *act)
		}
	}
	return out, nil
}

func newProjectService(repo projectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func validProjectInput() models.ProjectInput {
	return models.ProjectInput{
		Bailleur:    "ECHO",
		StartDate:   "2024-01-01",
		EndDate:     "2024-12-31",
		ProjectType: "Humanitarian",
		Sector:      "Protection",
		Location:    "Goma",
	}
}

func TestCreateProjectRequiresExistingOrganization(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := newProjectService(repo)

	if _, err := svc.CreateProject("ORG-MISSING0", validProjectInput()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestCreateProjectNormalizesClosedSetFields(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.orgs["ORG-OWNER001"] = true
	svc := newProjectService(repo)

	input := validProjectInput()
	input.Sector = "Sant"
	input.ProjectType = "humanitaire"

	project, err := svc.CreateProject("ORG-OWNER001", input)
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}
	if project.Sector != "Santé" {
		t.Errorf("sector = %q, want %q", project.Sector, "Santé")
	}
	if project.ProjectType != models.TypeHumanitarian {
		t.Errorf("type = %q, want %q", project.ProjectType, models.TypeHumanitarian)
	}
	if project.OrgID != "ORG-OWNER001" {
		t.Errorf("org id = %q, want the caller's", project.OrgID)
	}
}

func TestCreateProjectRejectsUnknownSector(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.orgs["ORG-OWNER001"] = true
	svc := newProjectService(repo)

	input := validProjectInput()
	input.Sector = "Logistics"
	if _, err := svc.CreateProject("ORG-OWNER001", input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestUpdateProjectScopedToOwner(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.orgs["ORG-OWNER001"] = true
	svc := newProjectService(repo)

	project, err := svc.CreateProject("ORG-OWNER001", validProjectInput())
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if _, err := svc.UpdateProject("ORG-OTHER001", project.ProjectID, validProjectInput()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign update: error = %v, want ErrNotFound", err)
	}

	input := validProjectInput()
	input.Location = "Bukavu"
	updated, err := svc.UpdateProject("ORG-OWNER001", project.ProjectID, input)
	if err != nil {
		t.Fatalf("UpdateProject returned error: %v", err)
	}
	if updated.Location != "Bukavu" {
		t.Errorf("location = %q, want Bukavu", updated.Location)
	}
	if updated.UpdatedAt == nil {
		t.Error("updated_at should be stamped on edit")
	}
	if updated.ProjectID != project.ProjectID || updated.OrgID != project.OrgID {
		t.Error("identity fields must survive an update")
	}
}

func TestDeleteProjectCascadesActivities(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.orgs["ORG-OWNER001"] = true
	svc := newProjectService(repo)

	project, err := svc.CreateProject("ORG-OWNER001", validProjectInput())
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if _, err := svc.CreateActivity("ORG-OWNER001", models.ActivityInput{
		ProjectID: project.ProjectID,
		Title:     "Distribution",
	}); err != nil {
		t.Fatalf("CreateActivity: %v", err)
	}

	if err := svc.DeleteProject("ORG-OTHER001", project.ProjectID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete: error = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteProject("ORG-OWNER001", project.ProjectID); err != nil {
		t.Fatalf("DeleteProject returned error: %v", err)
	}
	if len(repo.projects) != 0 || len(repo.activities) != 0 {
		t.Fatalf("expected project and activities gone, have %d/%d",
			len(repo.projects), len(repo.activities))
	}
}

func TestCreateActivityRequiresOwnedProjectAndTitle(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.orgs["ORG-OWNER001"] = true
	svc := newProjectService(repo)

	project, err := svc.CreateProject("ORG-OWNER001", validProjectInput())
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if _, err := svc.CreateActivity("ORG-OTHER001", models.ActivityInput{
		ProjectID: project.ProjectID,
		Title:     "Distribution",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign project: error = %v, want ErrNotFound", err)
	}

	if _, err := svc.CreateActivity("ORG-OWNER001", models.ActivityInput{
		ProjectID: project.ProjectID,
		Title:     "   ",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank title: error = %v, want ErrInvalidInput", err)
	}

	activity, err := svc.CreateActivity("ORG-OWNER001", models.ActivityInput{
		ProjectID: project.ProjectID,
		Title:     "Distribution",
	})
	if err != nil {
		t.Fatalf("CreateActivity returned error: %v", err)
	}
	if activity.OrgID != "ORG-OWNER001" {
		t.Errorf("activity org = %q, want the caller's", activity.OrgID)
	}
	if activity.CreatedAt.IsZero() {
		t.Error("created_at should be stamped")
	}
}

func TestSearchAppliesPagingDefaults(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := newProjectService(repo)

	if _, _, err := svc.Search(ProjectSearchFilter{}); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.Limit != 20 {
		t.Errorf("defaults = page %d limit %d, want 1/20",
			repo.lastFilter.Page, repo.lastFilter.Limit)
	}

	if _, _, err := svc.Search(ProjectSearchFilter{Page: 3, Limit: 500}); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if repo.lastFilter.Page != 3 || repo.lastFilter.Limit != 100 {
		t.Errorf("capped = page %d limit %d, want 3/100",
			repo.lastFilter.Page, repo.lastFilter.Limit)
	}
}

func TestGetByIDReportsMissingProjects(t *testing.T) {
	svc := newProjectService(newFakeProjectRepo())
	if _, err := svc.GetByID(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
