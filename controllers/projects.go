package controllers

import (
	"net/http"
	"strconv"

	"partner-portal-api/models"
	"partner-portal-api/services"

	"github.com/gin-gonic/gin"
)

// ProjectController exposes the partner-scoped project and activity routes.
type ProjectController struct {
	projects *services.ProjectService
}

func NewProjectController(projects *services.ProjectService) *ProjectController {
	return &ProjectController{projects: projects}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id64), true
}

// Create registers a new project owned by the authenticated organization.
func (ctl *ProjectController) Create(c *gin.Context) {
	var input models.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := ctl.projects.CreateProject(c.GetString("orgID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": project})
}

// Update replaces an owned project directly, without the review queue.
func (ctl *ProjectController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := ctl.projects.UpdateProject(c.GetString("orgID"), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

// Delete removes an owned project and its activities.
func (ctl *ProjectController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctl.projects.DeleteProject(c.GetString("orgID"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// List returns the authenticated organization's projects.
func (ctl *ProjectController) List(c *gin.Context) {
	projects, err := ctl.projects.ListByOrg(c.GetString("orgID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// Get returns one owned project.
func (ctl *ProjectController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	project, err := ctl.projects.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if project.OrgID != c.GetString("orgID") {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

// CreateActivity records a field event under an owned project.
func (ctl *ProjectController) CreateActivity(c *gin.Context) {
	var input models.ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity, err := ctl.projects.CreateActivity(c.GetString("orgID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"activity": activity})
}

// DeleteActivity removes an owned activity.
func (ctl *ProjectController) DeleteActivity(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctl.projects.DeleteActivity(c.GetString("orgID"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Activity deleted"})
}

// ListActivities returns the activities of one owned project.
func (ctl *ProjectController) ListActivities(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	activities, err := ctl.projects.ListActivities(c.GetString("orgID"), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// Search is the reviewer-side paginated listing across all organizations.
func (ctl *ProjectController) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := services.ProjectSearchFilter{
		Query:       c.Query("q"),
		Sector:      c.Query("sector"),
		ProjectType: c.Query("type"),
		Location:    c.Query("location"),
		Page:        page,
		Limit:       limit,
	}

	projects, total, err := ctl.projects.Search(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"total":    total,
		"page":     filter.Page,
		"limit":    filter.Limit,
	})
}
