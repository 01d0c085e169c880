package controllers

import (
	"net/http"

	"partner-portal-api/models"
	"partner-portal-api/services"

	"github.com/gin-gonic/gin"
)

// UpdateRequestController exposes the pending-change queue: partners submit,
// the reviewer lists and decides.
type UpdateRequestController struct {
	updates *services.UpdateRequestService
}

func NewUpdateRequestController(updates *services.UpdateRequestService) *UpdateRequestController {
	return &UpdateRequestController{updates: updates}
}

// Submit queues a replacement payload for one of the caller's projects.
func (ctl *UpdateRequestController) Submit(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload models.ProjectInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := ctl.updates.Submit(c.GetString("orgID"), projectID, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"update_request": req})
}

// ListPending returns undecided requests, oldest first.
func (ctl *UpdateRequestController) ListPending(c *gin.Context) {
	reqs, err := ctl.updates.ListPending()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"update_requests": reqs})
}

// Approve applies the stored payload to the target project.
func (ctl *UpdateRequestController) Approve(c *gin.Context) {
	ctl.decide(c, models.UpdateStatusApproved)
}

// Reject settles the request without touching the project.
func (ctl *UpdateRequestController) Reject(c *gin.Context) {
	ctl.decide(c, models.UpdateStatusRejected)
}

func (ctl *UpdateRequestController) decide(c *gin.Context, outcome string) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, err := ctl.updates.Decide(id, outcome)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"update_request": req})
}
