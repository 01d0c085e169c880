package controllers

import (
	"net/http"

	"partner-portal-api/services"

	"github.com/gin-gonic/gin"
)

// OrganizationController exposes the reviewer-side account operations.
type OrganizationController struct {
	accounts *services.AccountService
}

func NewOrganizationController(accounts *services.AccountService) *OrganizationController {
	return &OrganizationController{accounts: accounts}
}

// CreateManaged creates a partner account with a generated credential. The
// plaintext is returned once, here, and mailed to the contact address.
func (ctl *OrganizationController) CreateManaged(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, plaintext, err := ctl.accounts.CreateManaged(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"organization": org,
		"password":     plaintext,
		"message":      "Organization created",
	})
}

// List returns all partner accounts.
func (ctl *OrganizationController) List(c *gin.Context) {
	orgs, err := ctl.accounts.ListOrganizations()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organizations": orgs})
}

// Activate enables a partner account.
func (ctl *OrganizationController) Activate(c *gin.Context) {
	ctl.setActivation(c, true)
}

// Deactivate disables a partner account. Accounts are never deleted; this is
// the deletion substitute so project ownership history survives.
func (ctl *OrganizationController) Deactivate(c *gin.Context) {
	ctl.setActivation(c, false)
}

func (ctl *OrganizationController) setActivation(c *gin.Context, active bool) {
	if err := ctl.accounts.SetActivation(c.Param("id"), active); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Activation state updated"})
}

// ResetCredential issues a fresh random credential for a partner account.
func (ctl *OrganizationController) ResetCredential(c *gin.Context) {
	plaintext, err := ctl.accounts.ResetCredential(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"password": plaintext,
		"message":  "Credential reset, notification sent",
	})
}
