package controllers

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"partner-portal-api/middleware"
	"partner-portal-api/models"
	"partner-portal-api/services"
	"partner-portal-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthController struct {
	accounts *services.AccountService
}

func NewAuthController(accounts *services.AccountService) *AuthController {
	return &AuthController{accounts: accounts}
}

type RegisterRequest struct {
	services.RegisterInput
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	OrgID    string `json:"org_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token        string              `json:"token"`
	Organization models.Organization `json:"organization"`
	Message      string              `json:"message"`
}

// Register handles partner self-registration, claiming a pre-created account
// when the organization name matches one without a credential.
func (ctl *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, err := ctl.accounts.Register(req.RegisterInput, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := generateToken(org.OrgID, org.OrgName, middleware.RolePartner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, LoginResponse{
		Token:        token,
		Organization: *org,
		Message:      "Registration successful",
	})
}

// Login handles partner authentication
func (ctl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, err := ctl.accounts.Authenticate(req.OrgID, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := generateToken(org.OrgID, org.OrgName, middleware.RolePartner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:        token,
		Organization: *org,
		Message:      "Login successful",
	})
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin authenticates the back-office reviewer against ADMIN_EMAIL and
// ADMIN_PASSWORD_HASH. The failure message matches the partner login so the
// endpoint leaks nothing about which field was wrong.
func (ctl *AuthController) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminEmail == "" || adminHash == "" ||
		req.Email != adminEmail || !utils.CheckPasswordHash(req.Password, adminHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := generateToken("", "", middleware.RoleAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "message": "Login successful"})
}

// GetProfile returns the authenticated organization
func (ctl *AuthController) GetProfile(c *gin.Context) {
	orgID := c.GetString("orgID")

	org, err := ctl.accounts.Get(orgID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organization": org})
}

// ChangePassword handles password change
func (ctl *AuthController) ChangePassword(c *gin.Context) {
	type PasswordChangeRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}

	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orgID := c.GetString("orgID")
	if err := ctl.accounts.ChangePassword(orgID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// generateToken creates JWT token
func generateToken(orgID, orgName, role string) (string, error) {
	// Get expiration hours from env
	expireHours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS"))
	if err != nil {
		expireHours = 24 // default 24 hours
	}

	claims := middleware.Claims{
		OrgID:   orgID,
		OrgName: orgName,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
